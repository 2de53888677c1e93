package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-i"}

// parseFlags applies -a (server URL), -t (request timeout) and -i (online
// check interval). Other arguments are ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.Func("i", "online check interval, a duration or whole seconds", func(s string) error {
		d, err := parseInterval(s)
		if err != nil {
			return err
		}
		cfg.OnlineCheckInterval = d
		return nil
	})

	return fs.Parse(args)
}

// parseInterval accepts "3s"-style durations and, as older scripts pass
// them, bare seconds.
func parseInterval(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", s)
	}
	return d, nil
}
