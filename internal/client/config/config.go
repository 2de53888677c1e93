package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the gophsocial CLI.
type Config struct {
	ServerURL           string        `env:"GOPHSOCIAL_SERVER_URL" env-description:"base URL of the gophsocial REST API"`
	RequestTimeout      time.Duration `env:"GOPHSOCIAL_REQUEST_TIMEOUT" env-description:"upper bound for a single API call"`
	OnlineCheckInterval time.Duration `env:"GOPHSOCIAL_ONLINE_CHECK_INTERVAL" env-description:"server reachability check interval, 0 checks once at start"`
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// Validate checks the loaded values and strips a trailing slash from
// ServerURL.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("server url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("server url %q: scheme must be http or https", c.ServerURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("server url %q: missing host", c.ServerURL))
	default:
		c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.OnlineCheckInterval < 0 {
		errs = append(errs, errors.New("online check interval must not be negative"))
	}

	return errors.Join(errs...)
}

// LoadConfig layers defaults, the JSON file named by -c/-config, GOPHSOCIAL_*
// environment variables and flags. Later sources win.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
