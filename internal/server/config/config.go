// Package config resolves dev server settings: defaults first, then an
// optional JSON file (-c/-config), then flags.
package config

import "time"

// Config holds runtime settings for the examhub dev server. The default
// DatabaseDSN is a shared in-memory SQLite database; a postgres:// URL
// switches the server to PostgreSQL. SecretKey signs HS256 access tokens.
type Config struct {
	EndpointAddr                 string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	Seed                         bool
	LogLevel                     string
}

// LoadDefaults sets local development values. The short access token
// lifetime makes the client's refresh path easy to observe.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DatabaseDSN = "file:examhub?mode=memory&cache=shared"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 1 * time.Minute
	c.RefreshTokenValidityDuration = 60 * time.Minute
	c.Seed = true
	c.LogLevel = "info"
}

// LoadConfig returns the effective configuration for this process.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
