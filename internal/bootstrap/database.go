package bootstrap

import (
	"context"
	"fmt"

	"github.com/Arhamsiaf65/CityInsights/internal/config"
	"github.com/Arhamsiaf65/CityInsights/internal/database"
	"github.com/jmoiron/sqlx"
)

// DatabaseConfig maps service configuration onto the store's settings.
func DatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}
}

// SetupDatabase creates a database connection.
func SetupDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.NewPostgresConnection(context.Background(), DatabaseConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	return db, nil
}
