// Package config provides application configuration management.
// Configuration is loaded from environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"3006"`

	// Token signing. The secret is shared by the issue endpoint and the bearer gate.
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"your-secret-key"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"8h"`
	TokenSubject string        `env:"TOKEN_SUBJECT" envDefault:"123"`

	// The single tenant accepted by this deployment.
	TenantID string `env:"TENANT_ID" envDefault:"test123"`

	// Value returned by the account store stub for every lookup.
	MockEmail string `env:"MOCK_EMAIL" envDefault:"user@example.com"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Cache (Redis). Empty disables rate limiting on the token endpoint.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Rate limiting for GET /generate-token (per client IP)
	RateLimitTokenRPS   int `env:"RATE_LIMIT_TOKEN_RPS" envDefault:"5"`
	RateLimitTokenBurst int `env:"RATE_LIMIT_TOKEN_BURST" envDefault:"10"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// RateLimitEnabled reports whether a Redis backend is configured.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisURL != ""
}

// Validate checks invariants that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.TenantID == "" {
		errs = append(errs, errors.New("TENANT_ID must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	if c.AppPort <= 0 || c.AppPort > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT out of range: %d", c.AppPort))
	}
	return errors.Join(errs...)
}

// Load reads an optional .env file, parses environment variables and returns a Config.
// Variables already present in the environment take precedence over .env values.
func Load() (*Config, error) {
	if err := loadDotenv(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDotenv seeds the environment from path. A missing file is not an error.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
