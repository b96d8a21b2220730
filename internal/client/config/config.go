package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/client"
)

// Config holds runtime settings for the bimod CLI.
//
// Fields:
//   - APIURL: explicit API base address; empty means "resolve" (see BaseURL).
//   - Origin: the address the client is deployed under, used for same-origin.
//   - DBPath: local SQLite file holding the persisted session token.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL              string
	Origin              string
	DBPath              string
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = ""
	c.Origin = ""
	c.DBPath = "session.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
}

// BaseURL is the API base address the HTTP client should use.
func (c *Config) BaseURL() string {
	return client.ResolveBaseURL(c.APIURL, c.Origin)
}

// LoadConfig applies defaults, then overlays the JSON file (if any), the
// environment, and finally command-line flags from args (without the
// program name). Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
