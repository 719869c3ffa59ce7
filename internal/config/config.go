// Package config manages environment-driven configuration.
//
// Variables are read from the process environment (optionally seeded from a
// `.env` file via godotenv autoload), mapped into structured Go types with
// koanf, and validated so the application fails fast on missing or malformed
// values.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the portal backend.
//
// Env vars use the PORTAL_ prefix and dot-delimited nesting, e.g.
// PORTAL_SERVER.PORT -> server.port -> Config.Server.Port.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Security      SecurityConfig       `koanf:"security"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// MaxBodySize caps request payloads, in the format echo's BodyLimit
	// middleware accepts (e.g. "1M", "512K").
	MaxBodySize string `koanf:"max_body_size"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores token signing configuration.
//
// SecretKey signs every identity token. Rotating it invalidates all
// outstanding tokens; tokens are stateless so there is no migration path.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`

	// TokenTTLHours is the fixed token lifetime. Defaults to 24.
	TokenTTLHours int `koanf:"token_ttl_hours"`
}

// SecurityConfig holds the API key allow-list for production deployments.
// The X-API-Key check is skipped entirely in development.
type SecurityConfig struct {
	APIKeys []string `koanf:"api_keys"`
}

// RateLimitConfig selects the bucket store backend.
//
// "memory" keeps counters in-process (single instance). "redis" shares
// counters across instances through the configured Redis.
type RateLimitConfig struct {
	Store string `koanf:"store" validate:"omitempty,oneof=memory redis"`
}

// IntegrationConfig stores credentials for external providers.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// Load reads configuration from environment variables, unmarshals it into
// Config, validates it, and applies defaults.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("PORTAL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PORTAL_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Auth.TokenTTLHours <= 0 {
		mainConfig.Auth.TokenTTLHours = 24
	}
	if mainConfig.RateLimit.Store == "" {
		mainConfig.RateLimit.Store = "memory"
	}
	if mainConfig.Server.MaxBodySize == "" {
		mainConfig.Server.MaxBodySize = "1M"
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry stays consistent
	// regardless of what the environment sets.
	mainConfig.Observability.ServiceName = "portal-platform"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// IsDevelopment reports whether the app runs in development mode.
// The API key check is bypassed there.
func (c *Config) IsDevelopment() bool {
	return c.Primary.Env == "development"
}
