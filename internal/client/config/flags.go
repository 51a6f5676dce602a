package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/recipes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-d string   sqlite database path
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only these flags are taken from args; the rest belong to other parsers.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, "a", "d", "t", "l")

	fs := flag.NewFlagSet("recipes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
