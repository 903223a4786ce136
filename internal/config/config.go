package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the assistant.
// Environment variables are parsed from the NELFI_ prefix,
// e.g. NELFI_API_BASE_URL, NELFI_STATE_PATH.
type Config struct {
	// APIBaseURL is the base URL of the chat backend.
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8000"`

	// HTTPTimeout bounds a single backend request end to end.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// StatePath is the SQLite file holding the directory, the current
	// identity pointer and per-user transcripts.
	StatePath string `envconfig:"STATE_PATH" default:"nelfi-state.db"`

	// DefaultCountryCode is used when the caller supplies none. 234 is Nigeria.
	DefaultCountryCode string `envconfig:"DEFAULT_COUNTRY_CODE" default:"234"`

	// DevServerPort is where `nelfi serve` listens.
	DevServerPort int `envconfig:"DEV_SERVER_PORT" default:"8000"`
}

// New creates a Config by parsing NELFI_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("NELFI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("NELFI_HTTP_TIMEOUT must be > 0")
	}
	if cfg.DevServerPort <= 0 || cfg.DevServerPort > 65535 {
		return nil, fmt.Errorf("NELFI_DEV_SERVER_PORT out of range: %d", cfg.DevServerPort)
	}

	log.Info().
		Str("api_base_url", cfg.APIBaseURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("state_path", cfg.StatePath).
		Str("default_country_code", cfg.DefaultCountryCode).
		Int("dev_server_port", cfg.DevServerPort).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetDevServerAddr returns the dev server listen address.
func (c *Config) GetDevServerAddr() string {
	return fmt.Sprintf(":%d", c.DevServerPort)
}
