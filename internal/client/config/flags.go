package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/flagx"
)

// parseFlags overlays cfg with the client's command-line flags. Flags that
// belong to other components (-c) are filtered out first. Panics on bad
// values.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the alumni network API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "path of the local state database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	ping := fs.Int("i", int(cfg.PingInterval.Seconds()), "reachability check interval (in seconds)")

	if err := flagx.ParseOwn(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.PingInterval = time.Duration(*ping) * time.Second
}
