// Package config loads runtime settings for the PromptDesk terminal client:
// defaults, then an optional JSON file (-c/-config), then flags.
package config

import "time"

// Config holds runtime settings for the PromptDesk CLI.
//
// RequestTimeout bounds each API call; it must cover the slowest chat
// completion the server will wait for.
type Config struct {
	ServerURL      string
	SessionDSN     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3001"
	c.SessionDSN = "promptdesk-session.db"
	c.RequestTimeout = 150 * time.Second
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
