// Package config handles configuration for the development backend,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bimod/internal/common"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: bind address for the HTTP API.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use the default outside development.
//   - AccessTokenValidityDuration: access token lifetime.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr                        string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.SecretKey = "dev-secret-change-me"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
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
	// an explicitly empty secret gets a random one; tokens then die with the process
	if cfg.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		cfg.SecretKey = key
	}
	return cfg, nil
}
