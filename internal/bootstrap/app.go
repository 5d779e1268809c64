// Package bootstrap handles application initialization and lifecycle
// management for the City Insight API.
package bootstrap

import (
	"fmt"

	infralogger "github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/database"
	"github.com/Arhamsiaf65/CityInsights/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Start initializes and runs the API until SIGINT or SIGTERM.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting City Insight API",
		infralogger.String("name", cfg.Service.Name),
		infralogger.String("version", cfg.Service.Version),
		infralogger.Int("port", cfg.Service.Port),
	)

	// Phase 2: Setup database
	db, err := SetupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database connection", infralogger.Error(closeErr))
		}
	}()
	log.Info("Database connection established")
	repo := database.NewRepository(db)

	// Phase 3: Setup Redis sessions (optional)
	sessions, redisClient := SetupSessions(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Phase 4: Telemetry, oracle and chatbot
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tel := telemetry.NewProvider(registry)

	oracle := SetupOracle(cfg, tel, log)
	chat := SetupChatbot(cfg, repo, oracle, tel, log)

	// Phase 5: Setup and run HTTP server
	done := make(chan struct{})
	defer close(done)

	server := SetupHTTPServer(cfg, ServerDeps{
		Repo:      repo,
		Chat:      chat,
		Sessions:  sessions,
		Redis:     redisClient,
		Telemetry: tel,
		Done:      done,
	}, log)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", infralogger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("City Insight API stopped")
	return nil
}
