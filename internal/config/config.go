// Package config loads service configuration from defaults, an optional YAML
// file and JOBBOARD_ environment variables.
package config

import (
	"fmt"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	// Logging
	LogLevel string `koanf:"log_level"`

	// HTTP
	HTTPAddr            string        `koanf:"http_addr"`
	HTTPReadTimeout     time.Duration `koanf:"http_read_timeout"`
	HTTPWriteTimeout    time.Duration `koanf:"http_write_timeout"`
	HTTPShutdownTimeout time.Duration `koanf:"http_shutdown_timeout"`
	CORSOrigins         []string      `koanf:"cors_origins"`

	// Storage
	StorageDriver           string        `koanf:"storage_driver"`
	PostgresDSN             string        `koanf:"postgres_dsn"`
	PostgresMaxOpenConns    int           `koanf:"postgres_max_open_conns"`
	PostgresMaxIdleConns    int           `koanf:"postgres_max_idle_conns"`
	PostgresConnMaxLifetime time.Duration `koanf:"postgres_conn_max_lifetime"`

	// Redis
	RedisEnabled  bool          `koanf:"redis_enabled"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	CacheListTTL  time.Duration `koanf:"cache_list_ttl"`

	// RateLimitPerMinute caps requests per actor; 0 disables the limiter.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// Listing
	PageDefaultLimit int `koanf:"page_default_limit"`
	PageMaxLimit     int `koanf:"page_max_limit"`

	// PipelineEnforceOrder refuses backward status moves.
	PipelineEnforceOrder bool `koanf:"pipeline_enforce_order"`
}

func New() *Config {
	return &Config{
		LogLevel:                "info",
		HTTPAddr:                ":8080",
		HTTPReadTimeout:         10 * time.Second,
		HTTPWriteTimeout:        15 * time.Second,
		HTTPShutdownTimeout:     10 * time.Second,
		StorageDriver:           StorageDriverPostgres,
		PostgresMaxOpenConns:    25,
		PostgresMaxIdleConns:    5,
		PostgresConnMaxLifetime: 5 * time.Minute,
		RedisAddr:               "localhost:6379",
		CacheListTTL:            time.Minute,
		RateLimitPerMinute:      120,
		PageDefaultLimit:        20,
		PageMaxLimit:            100,
	}
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("%w: http addr is empty", ErrInvalidConfig)
	}

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres DSN is empty", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver: %s", ErrInvalidConfig, c.StorageDriver)
	}

	if c.RedisEnabled && c.RedisAddr == "" {
		return fmt.Errorf("%w: redis addr is empty", ErrInvalidConfig)
	}

	if c.PageDefaultLimit < 1 {
		return fmt.Errorf("%w: page default limit must be positive", ErrInvalidConfig)
	}

	if c.PageMaxLimit < c.PageDefaultLimit {
		return fmt.Errorf("%w: page max limit %d is below default %d", ErrInvalidConfig, c.PageMaxLimit, c.PageDefaultLimit)
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: invalid log level: %s", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}
