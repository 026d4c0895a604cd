package config

import (
	"flag"
	"os"
	"time"

	"github.com/clinivault/clinivault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-d string   sqlite DSN of the local credential database
//	-i int      refresh check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.CredentialsDSN, "d", cfg.CredentialsDSN, "sqlite DSN of the credential database")
	refreshCheckInterval := fs.Int("i", int(cfg.RefreshCheckInterval.Seconds()), "refresh check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshCheckInterval = time.Duration(*refreshCheckInterval) * time.Second
}
