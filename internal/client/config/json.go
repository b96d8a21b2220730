package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bimod/internal/flagx"
	"github.com/dmitrijs2005/bimod/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// may be strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	APIURL              string         `json:"api_url"`
	Origin              string         `json:"origin"`
	DBPath              string         `json:"db_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the file named by
// -c/-config (or $BIMOD_CONFIG). No file means no changes.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIURL != "" {
		cfg.APIURL = jc.APIURL
	}
	if jc.Origin != "" {
		cfg.Origin = jc.Origin
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
