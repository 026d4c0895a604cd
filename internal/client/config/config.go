// Package config loads runtime settings for the CliniVault client.
// Sources are applied in order — defaults, environment, JSON file, flags —
// with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the CliniVault client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend API.
//   - CredentialsDSN: sqlite DSN of the local durable credential tier.
//   - RefreshCheckInterval: how often the token refresh watcher wakes up.
//   - RefreshAhead: how long before expiry a token is refreshed.
type Config struct {
	ServerBaseURL        string
	CredentialsDSN       string
	RefreshCheckInterval time.Duration
	RefreshAhead         time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.CredentialsDSN = "clinivault.db"
	c.RefreshCheckInterval = 30 * time.Second
	c.RefreshAhead = 2 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if present), and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
