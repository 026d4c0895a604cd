package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envOverlay is a DTO used exclusively for environment parsing. Zero values
// mean "not set" and leave the corresponding Config field untouched.
type envOverlay struct {
	ServerBaseURL        string        `env:"CLINIVAULT_SERVER_URL"`
	CredentialsDSN       string        `env:"CLINIVAULT_CREDENTIALS_DB"`
	RefreshCheckInterval time.Duration `env:"CLINIVAULT_REFRESH_INTERVAL"`
	RefreshAhead         time.Duration `env:"CLINIVAULT_REFRESH_AHEAD"`
}

func parseEnv(cfg *Config) {
	var e envOverlay
	if err := envconfig.Process(context.Background(), &e); err != nil {
		panic(err)
	}
	applyEnv(cfg, e)
}

func applyEnv(cfg *Config, e envOverlay) {
	if e.ServerBaseURL != "" {
		cfg.ServerBaseURL = e.ServerBaseURL
	}
	if e.CredentialsDSN != "" {
		cfg.CredentialsDSN = e.CredentialsDSN
	}
	if e.RefreshCheckInterval != 0 {
		cfg.RefreshCheckInterval = e.RefreshCheckInterval
	}
	if e.RefreshAhead != 0 {
		cfg.RefreshAhead = e.RefreshAhead
	}
}
