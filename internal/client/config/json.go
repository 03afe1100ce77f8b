package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/examhub/internal/flagx"
	"github.com/dmitrijs2005/examhub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-value fields that are absent in the file leave the defaults intact.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DevMode        *bool          `json:"dev_mode"`
	DatabasePath   string         `json:"database_path"`
	StoreSecret    string         `json:"store_secret"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read or decode errors
// panic; the caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DevMode != nil {
		cfg.DevMode = *jc.DevMode
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.StoreSecret != "" {
		cfg.StoreSecret = jc.StoreSecret
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
