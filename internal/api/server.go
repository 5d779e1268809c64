package api

import (
	"context"
	"time"

	infragin "github.com/Arhamsiaf65/CityInsights/infrastructure/gin"
	infralogger "github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/config"
	"github.com/Arhamsiaf65/CityInsights/internal/handlers"
	"github.com/Arhamsiaf65/CityInsights/internal/telemetry"
	"github.com/gin-gonic/gin"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	healthCheckTimeout  = 2 * time.Second
)

// Pinger reports dependency health.
type Pinger func(ctx context.Context) error

// Dependencies are the collaborators of the HTTP server. RedisPing is nil
// when sessions are disabled.
type Dependencies struct {
	Handlers  *handlers.Handlers
	Routes    RouteConfig
	Telemetry *telemetry.Provider
	DBPing    Pinger
	RedisPing Pinger
}

// NewServer creates the HTTP server.
func NewServer(deps Dependencies, cfg *config.Config, log infralogger.Logger) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithCORS(infragin.CORSConfig{
			Enabled:          true,
			AllowedOrigins:   cfg.Service.AllowedOrigins,
			AllowCredentials: len(cfg.Service.AllowedOrigins) > 0,
		}).
		WithDatabaseHealthCheck(withTimeout(deps.DBPing))

	if deps.RedisPing != nil {
		builder = builder.WithRedisHealthCheck(withTimeout(deps.RedisPing))
	}
	if deps.Telemetry != nil {
		builder = builder.
			WithMetrics(deps.Telemetry.Handler()).
			WithMiddleware(deps.Telemetry.GinMiddleware())
	}

	return builder.
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, deps.Handlers, deps.Routes)
		}).
		Build()
}

func withTimeout(ping Pinger) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return ping(ctx)
	}
}
