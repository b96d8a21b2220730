package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bimod/internal/flagx"
	"github.com/dmitrijs2005/bimod/internal/timex"
)

// ConfigEnvVar names the config file variable for the development backend.
const ConfigEnvVar = "BIMOD_DEVSERVER_CONFIG"

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. Durations may be strings such as "30m" or integer
// nanoseconds.
type JsonConfig struct {
	Addr                        string         `json:"addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config (or $BIMOD_DEVSERVER_CONFIG)
// and copies its non-empty values into cfg.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileEnv(args, ConfigEnvVar)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	return nil
}
