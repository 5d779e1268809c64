package bootstrap_test

import (
	"testing"
	"time"

	infralogger "github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/bootstrap"
	"github.com/Arhamsiaf65/CityInsights/internal/config"
	"github.com/Arhamsiaf65/CityInsights/internal/oracle"
	"github.com/Arhamsiaf65/CityInsights/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Database: config.DatabaseConfig{
		Host:     "db",
		Port:     "6543",
		User:     "city",
		Password: "secret",
		Database: "insight",
		SSLMode:  "require",
	}}

	dbCfg := bootstrap.DatabaseConfig(cfg)
	assert.Equal(t, "insight", dbCfg.DBName)
	assert.Equal(t, "postgres://city:secret@db:6543/insight?sslmode=require", dbCfg.URL())
}

func TestSetupOracle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		provider  string
		apiKey    string
		wantGuard bool
	}{
		{name: "missing key falls back to static", provider: oracle.ProviderAnthropic},
		{name: "static provider", provider: oracle.ProviderStatic, apiKey: "key"},
		{name: "anthropic", provider: oracle.ProviderAnthropic, apiKey: "key", wantGuard: true},
		{name: "openai", provider: oracle.ProviderOpenAI, apiKey: "key", wantGuard: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{Oracle: config.OracleConfig{
				Provider:         tt.provider,
				APIKey:           tt.apiKey,
				Timeout:          time.Second,
				MaxAttempts:      1,
				BreakerThreshold: 3,
				BreakerCooldown:  time.Second,
			}}
			tel := telemetry.NewProvider(prometheus.NewRegistry())

			got := bootstrap.SetupOracle(cfg, tel, infralogger.NewNop())
			require.NotNil(t, got)
			if tt.wantGuard {
				assert.IsType(t, &oracle.Guard{}, got)
				return
			}
			assert.Equal(t, oracle.Static{}, got)
		})
	}
}
