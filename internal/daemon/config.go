// Package daemon manages the extension backend's lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all daemon configuration, loaded from the TOML file in the
// data home with secrets layered on top from the environment.
type Config struct {
	API     APIConfig     `toml:"api"`
	Chaster ChasterConfig `toml:"chaster"`
	Reset   ResetConfig   `toml:"reset"`
	Journal JournalConfig `toml:"journal"`
	Metrics MetricsConfig `toml:"metrics"`

	Secrets Secrets `toml:"-"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// ChasterConfig controls the remote platform client.
type ChasterConfig struct {
	BaseURL       string `toml:"base_url"`
	ExtensionSlug string `toml:"extension_slug"`
}

// ResetConfig controls the daily quota reset.
type ResetConfig struct {
	Hour string `toml:"hour"` // "0".."23", server time
}

// JournalConfig controls the webhook delivery journal.
type JournalConfig struct {
	Enabled bool `toml:"enabled"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Secrets are credentials resolved once from the environment at startup and
// injected into the components that need them.
type Secrets struct {
	APIKey        string `env:"CHASTER_API_KEY"`
	ClientID      string `env:"CHASTER_CLIENT_ID"`
	BasicAuthUser string `env:"BASIC_AUTH_USERNAME"`
	BasicAuthPass string `env:"BASIC_AUTH_PASSWORD"`
	Port          int    `env:"PORT"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 3005,
		},
		Chaster: ChasterConfig{
			ExtensionSlug: "shared-links-modifier",
		},
		Reset: ResetConfig{
			Hour: "0",
		},
		Journal: JournalConfig{Enabled: true},
		Metrics: MetricsConfig{Enabled: false},
	}
}

// LoadConfig reads config from <home>/config.toml, falling back to defaults,
// then parses secrets from the environment. A PORT env var overrides the
// configured API port.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(Home(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg.Secrets); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Secrets.Port > 0 {
		cfg.API.Port = cfg.Secrets.Port
	}

	return cfg, nil
}

// ResetHour parses the configured reset hour, defaulting to midnight.
func (c Config) ResetHour() int {
	var hour int
	if _, err := fmt.Sscanf(c.Reset.Hour, "%d", &hour); err != nil || hour < 0 || hour > 23 {
		return 0
	}
	return hour
}

// Home returns the data directory.
func Home() string {
	if env := os.Getenv("LINKVOTE_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".linkvote")
}
