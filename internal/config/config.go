package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the dagukit CLI and client defaults.
type Config struct {
	// Engine endpoint
	BaseURL   string `env:"DAGUKIT_BASE_URL" envDefault:"http://localhost:8080/api/v2"`
	DagName   string `env:"DAGUKIT_DAG_NAME"`
	AuthToken string `env:"DAGUKIT_AUTH_TOKEN"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Transport
	HTTPTimeout time.Duration `env:"DAGUKIT_HTTP_TIMEOUT" envDefault:"30s"`

	// Run watching
	PollInterval time.Duration `env:"DAGUKIT_POLL_INTERVAL" envDefault:"2s"`
	PollTimeout  time.Duration `env:"DAGUKIT_POLL_TIMEOUT" envDefault:"10m"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive: %s", c.HTTPTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive: %s", c.PollInterval)
	}
	if c.PollTimeout < c.PollInterval {
		return fmt.Errorf("poll timeout %s must not be shorter than poll interval %s",
			c.PollTimeout, c.PollInterval)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
