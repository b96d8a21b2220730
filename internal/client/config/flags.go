package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/bimod/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   API base address
//	-o string   origin the client runs under (same-origin deployments)
//	-d string   path of the local session database
//	-i int      online check interval in seconds
//	-l string   log level
//
// Only these flags are looked at; anything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-o", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("bimod", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "API base address")
	fs.StringVar(&cfg.Origin, "o", cfg.Origin, "origin the client is served from")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local session database path")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
