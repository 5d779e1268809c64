// Package config holds the City Insight API configuration.
package config

import (
	"time"

	infraconfig "github.com/Arhamsiaf65/CityInsights/infrastructure/config"
	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
)

// Default configuration values.
const (
	defaultServiceName = "city-insight-api"
	defaultServicePort = 5000
	defaultVersion     = "1.0.0"
	defaultTimeZone    = "Asia/Karachi"

	defaultDBHost    = "localhost"
	defaultDBPort    = "5432"
	defaultDBName    = "city_insight"
	defaultDBUser    = "postgres"
	defaultDBSSLMode = "disable"

	defaultRedisAddress = "localhost:6379"

	defaultTokenExpiry = 7 * 24 * time.Hour
	minSecretLength    = 16

	defaultChatRateLimit  = 30
	defaultChatRateWindow = time.Minute
	defaultSessionTurns   = 12
	defaultSessionTTL     = 24 * time.Hour

	defaultOracleProvider    = "anthropic"
	defaultOracleTimeout     = 12 * time.Second
	defaultOracleAttempts    = 2
	defaultBreakerThreshold  = 5
	defaultBreakerCooldown   = 30 * time.Second
	defaultOracleMaxTokens   = 512
	defaultRetryInitialDelay = 200 * time.Millisecond
)

// Config holds the application configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Chat     ChatConfig     `yaml:"chat"`
	Oracle   OracleConfig   `yaml:"oracle"`
	Logging  logger.Config  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name           string   `yaml:"name"`
	Version        string   `yaml:"version"`
	Port           int      `env:"PORT"            yaml:"port"`
	Debug          bool     `env:"APP_DEBUG"       yaml:"debug"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	TimeZone       string   `env:"TZ_NAME"         yaml:"time_zone"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host         string `env:"POSTGRES_HOST"     yaml:"host"`
	Port         string `env:"POSTGRES_PORT"     yaml:"port"`
	User         string `env:"POSTGRES_USER"     yaml:"user"`
	Password     string `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database     string `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode      string `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// RedisConfig holds the session store connection. Sessions are off when
// Enabled is false.
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED"  yaml:"enabled"`
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET" yaml:"jwt_secret"`
	TokenExpiry time.Duration `yaml:"token_expiry"`
}

// ChatConfig tunes the chatbot and its endpoint.
type ChatConfig struct {
	ResultLimit    int           `yaml:"result_limit"`
	SnippetLength  int           `yaml:"snippet_length"`
	ExcerptLength  int           `yaml:"excerpt_length"`
	TopAuthors     int           `yaml:"top_authors"`
	HistoryTurns   int           `yaml:"history_turns"`
	StaticGreeting bool          `env:"CHAT_STATIC_GREETING" yaml:"static_greeting"`
	RateLimit      int           `yaml:"rate_limit"`
	RateWindow     time.Duration `yaml:"rate_window"`
	SessionTurns   int           `yaml:"session_turns"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
}

// OracleConfig selects and tunes the text-generation provider. An empty
// APIKey selects the static oracle.
type OracleConfig struct {
	Provider         string        `env:"ORACLE_PROVIDER" yaml:"provider"`
	APIKey           string        `env:"ORACLE_API_KEY"  yaml:"api_key"`
	BaseURL          string        `env:"ORACLE_BASE_URL" yaml:"base_url"`
	Model            string        `env:"ORACLE_MODEL"    yaml:"model"`
	MaxTokens        int64         `yaml:"max_tokens"`
	Timeout          time.Duration `yaml:"timeout"`
	MaxAttempts      int           `yaml:"max_attempts"`
	RetryDelay       time.Duration `yaml:"retry_delay"`
	BreakerThreshold int           `yaml:"breaker_threshold"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedisDefaults(&cfg.Redis)
	setAuthDefaults(&cfg.Auth)
	setChatDefaults(&cfg.Chat)
	setOracleDefaults(&cfg.Oracle)
	cfg.Logging.SetDefaults()
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.TimeZone == "" {
		svc.TimeZone = defaultTimeZone
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == "" {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.Address == "" {
		r.Address = defaultRedisAddress
	}
}

func setAuthDefaults(a *AuthConfig) {
	if a.TokenExpiry == 0 {
		a.TokenExpiry = defaultTokenExpiry
	}
}

func setChatDefaults(c *ChatConfig) {
	if c.RateLimit == 0 {
		c.RateLimit = defaultChatRateLimit
	}
	if c.RateWindow == 0 {
		c.RateWindow = defaultChatRateWindow
	}
	if c.SessionTurns == 0 {
		c.SessionTurns = defaultSessionTurns
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = defaultSessionTTL
	}
}

func setOracleDefaults(o *OracleConfig) {
	if o.Provider == "" {
		o.Provider = defaultOracleProvider
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = defaultOracleMaxTokens
	}
	if o.Timeout == 0 {
		o.Timeout = defaultOracleTimeout
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = defaultOracleAttempts
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = defaultRetryInitialDelay
	}
	if o.BreakerThreshold == 0 {
		o.BreakerThreshold = defaultBreakerThreshold
	}
	if o.BreakerCooldown == 0 {
		o.BreakerCooldown = defaultBreakerCooldown
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Service.TimeZone); err != nil {
		return &infraconfig.ValidationError{Field: "service.time_zone", Message: err.Error()}
	}
	if err := infraconfig.ValidateRequired("database.host", c.Database.Host); err != nil {
		return err
	}
	if len(c.Auth.JWTSecret) < minSecretLength {
		return &infraconfig.ValidationError{
			Field:   "auth.jwt_secret",
			Message: "must be at least 16 characters",
		}
	}
	if err := infraconfig.ValidateOneOf("oracle.provider", c.Oracle.Provider,
		"anthropic", "openai", "static"); err != nil {
		return err
	}
	if c.Chat.RateLimit < 0 {
		return &infraconfig.ValidationError{Field: "chat.rate_limit", Message: "must not be negative"}
	}
	return infraconfig.ValidateLogLevel("logging.level", c.Logging.Level)
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Service.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
