package config

import (
	"os"
	"strings"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL   = "BIMOD_API_URL"
	EnvOrigin   = "BIMOD_ORIGIN"
	EnvDBPath   = "BIMOD_DB"
	EnvLogLevel = "BIMOD_LOG_LEVEL"
)

// parseEnv overlays cfg with non-blank environment values.
func parseEnv(cfg *Config) {
	set := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	set(EnvAPIURL, &cfg.APIURL)
	set(EnvOrigin, &cfg.Origin)
	set(EnvDBPath, &cfg.DBPath)
	set(EnvLogLevel, &cfg.LogLevel)
}
