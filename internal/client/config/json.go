package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/clinivault/clinivault/internal/flagx"
	"github.com/clinivault/clinivault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify intervals either as strings like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL        string         `json:"server_base_url"`
	CredentialsDSN       string         `json:"credentials_dsn"`
	RefreshCheckInterval timex.Duration `json:"refresh_check_interval"`
	RefreshAhead         timex.Duration `json:"refresh_ahead"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is named, nothing happens. Read and
// unmarshal errors panic; the caller may recover if desired.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}
	applyJsonFile(cfg, jsonConfigFile)
}

func applyJsonFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.CredentialsDSN != "" {
		cfg.CredentialsDSN = jc.CredentialsDSN
	}
	if jc.RefreshCheckInterval.Duration != 0 {
		cfg.RefreshCheckInterval = time.Duration(jc.RefreshCheckInterval.Duration)
	}
	if jc.RefreshAhead.Duration != 0 {
		cfg.RefreshAhead = time.Duration(jc.RefreshAhead.Duration)
	}
}
