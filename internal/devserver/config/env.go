package config

import (
	"os"
	"strings"
)

const (
	EnvAddr      = "BIMOD_DEVSERVER_ADDR"
	EnvSecretKey = "BIMOD_SECRET_KEY"
	EnvLogLevel  = "BIMOD_LOG_LEVEL"
)

func parseEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		cfg.SecretKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
}
