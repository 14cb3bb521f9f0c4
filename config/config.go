package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

const (
	ModeCLI  = "cli"
	ModeHTTP = "http"
)

// Config holds all application configuration
type Config struct {
	// Mode selects the interactive menu ("cli") or the JSON API ("http")
	Mode string `env:"LOAN_MODE" envDefault:"cli"`

	// HTTP API
	HTTPAddr   string        `env:"LOAN_HTTP_ADDR"   envDefault:":8080"`
	RateLimit  int           `env:"LOAN_RATE_LIMIT"  envDefault:"5"`
	RateWindow time.Duration `env:"LOAN_RATE_WINDOW" envDefault:"1m"`

	// Response cache; empty RedisAddr keeps the cache in memory
	RedisAddr string        `env:"LOAN_REDIS_ADDR"`
	CacheTTL  time.Duration `env:"LOAN_CACHE_TTL" envDefault:"10m"`

	// Logging; an empty level means "warn" in cli mode and "info" in http mode
	LogLevel  string `env:"LOAN_LOG_LEVEL"`
	LogFormat string `env:"LOAN_LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeCLI, ModeHTTP:
	default:
		return fmt.Errorf("LOAN_MODE must be %q or %q, got %q", ModeCLI, ModeHTTP, c.Mode)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("LOAN_RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("LOAN_RATE_WINDOW must be positive, got %s", c.RateWindow)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("LOAN_LOG_LEVEL: %w", err)
		}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOAN_LOG_FORMAT must be \"text\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}

// ConfigureLogging applies the logging settings to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level := log.InfoLevel
	if c.Mode == ModeCLI {
		level = log.WarnLevel
	}
	if parsed, err := log.ParseLevel(c.LogLevel); err == nil {
		level = parsed
	}
	log.SetLevel(level)

	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
