// Package config loads runtime configuration for the bimod CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or $BIMOD_CONFIG.
//  3. Environment: BIMOD_API_URL, BIMOD_ORIGIN, BIMOD_DB, BIMOD_LOG_LEVEL.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base address
//	-o string   origin the client is served from
//	-d string   local session database path
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_url": "http://localhost:5011",
//	  "origin": "",
//	  "db_path": "session.db",
//	  "online_check_interval": "3s",
//	  "log_level": "info"
//	}
//
// The API base address itself is resolved by (*Config).BaseURL: an explicit
// APIURL wins, a non-local Origin means same-origin, otherwise the local
// development backend.
package config
