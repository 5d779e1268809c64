package bootstrap

import (
	"context"

	infragin "github.com/Arhamsiaf65/CityInsights/infrastructure/gin"
	infrajwt "github.com/Arhamsiaf65/CityInsights/infrastructure/jwt"
	infralogger "github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/api"
	"github.com/Arhamsiaf65/CityInsights/internal/config"
	"github.com/Arhamsiaf65/CityInsights/internal/database"
	"github.com/Arhamsiaf65/CityInsights/internal/handlers"
	"github.com/Arhamsiaf65/CityInsights/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

var _ handlers.Store = (*database.Repository)(nil)

// ServerDeps are the components built in earlier phases.
type ServerDeps struct {
	Repo      *database.Repository
	Chat      handlers.Replier
	Sessions  handlers.Sessions
	Redis     *redis.Client
	Telemetry *telemetry.Provider
	Done      <-chan struct{}
}

// SetupHTTPServer creates and configures the HTTP server.
func SetupHTTPServer(cfg *config.Config, deps ServerDeps, log infralogger.Logger) *infragin.Server {
	tokens := infrajwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	h := handlers.New(deps.Repo, deps.Chat, deps.Sessions, tokens, log)

	apiDeps := api.Dependencies{
		Handlers: h,
		Routes: api.RouteConfig{
			Tokens:         tokens,
			ChatRateLimit:  cfg.Chat.RateLimit,
			ChatRateWindow: cfg.Chat.RateWindow,
			Done:           deps.Done,
		},
		Telemetry: deps.Telemetry,
		DBPing:    deps.Repo.Ping,
	}
	if deps.Redis != nil {
		client := deps.Redis
		apiDeps.RedisPing = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	return api.NewServer(apiDeps, cfg, log)
}
