package bootstrap

import (
	"context"

	infralogger "github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	infraredis "github.com/Arhamsiaf65/CityInsights/infrastructure/redis"
	"github.com/Arhamsiaf65/CityInsights/internal/config"
	"github.com/Arhamsiaf65/CityInsights/internal/handlers"
	"github.com/Arhamsiaf65/CityInsights/internal/session"
	"github.com/redis/go-redis/v9"
)

// SetupSessions connects the conversation store. Chat keeps working without
// history when Redis is disabled or unreachable, so failures only warn.
func SetupSessions(cfg *config.Config, log infralogger.Logger) (handlers.Sessions, *redis.Client) {
	if !cfg.Redis.Enabled {
		log.Info("Redis disabled, chat sessions off")
		return nil, nil
	}

	client, err := infraredis.NewClient(context.Background(), infraredis.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, chat sessions off",
			infralogger.String("address", cfg.Redis.Address),
			infralogger.Error(err),
		)
		return nil, nil
	}

	log.Info("Redis connected", infralogger.String("address", cfg.Redis.Address))
	return session.NewStore(client, cfg.Chat.SessionTurns, cfg.Chat.SessionTTL), client
}
