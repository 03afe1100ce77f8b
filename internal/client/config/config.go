package config

import "time"

// Config holds runtime settings for the examhub CLI.
//
// Fields:
//   - BaseURL: backend API root, e.g. "http://127.0.0.1:3000/api/v1".
//   - RequestTimeout: per-attempt HTTP timeout.
//   - DevMode: verbose request logging and raw backend error messages.
//   - DatabasePath: SQLite file that keeps the encrypted session.
//   - StoreSecret: passphrase the session encryption key is derived from.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DevMode        bool
	DatabasePath   string
	StoreSecret    string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:3000/api/v1"
	c.RequestTimeout = 10 * time.Second
	c.DevMode = false
	c.DatabasePath = "examhub.db"
	c.StoreSecret = "examhub-local-secret"
	c.LogLevel = "info"
}

// EffectiveLogLevel returns LogLevel, except that dev mode always logs at
// debug so request traces are visible.
func (c *Config) EffectiveLogLevel() string {
	if c.DevMode {
		return "debug"
	}
	return c.LogLevel
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
