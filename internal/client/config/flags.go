package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/aideasy/internal/flagx"
)

var flagNames = []string{"-a", "-i", "-d", "-tz", "-l", "-t", "-q", "-log-format"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string       base url of the API server
//	-i int          online check interval in seconds
//	-d string       session database path
//	-tz string      IANA timezone for calendar days
//	-l string       log level
//	-t duration     request timeout
//	-q int          refresh queue capacity
//	-log-format     text or json
//
// args is filtered with flagx.FilterArgs first, so flags owned by other
// components do not fail the parse.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, flagNames)

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base url of the API server")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database path")
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "timezone for calendar days")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.IntVar(&cfg.RefreshQueueCapacity, "q", cfg.RefreshQueueCapacity, "refresh queue capacity")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = secondsToDuration(*interval)
	return nil
}
