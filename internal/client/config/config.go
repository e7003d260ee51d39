// Package config loads runtime settings for the AutoTrader terminal client.
//
// Sources are applied in order, later ones overriding earlier ones:
// built-in defaults, a JSON config file (-c/-config), command-line flags.
package config

import "time"

// Config holds runtime settings for the AutoTrader client.
//
// Fields:
//   - ServerBaseURL: base URL of the AutoTrader REST API (including /api prefix).
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path (or DSN) of the local SQLite state database.
//   - LogLevel: one of debug/info/warn/error.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "autotrader.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
