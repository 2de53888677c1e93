package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophsocial/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-t", "-m", "-n", "-d", "-s", "-e", "-b", "-r", "-l", "-w", "-i", "-v", "-x"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     REST API bind address (e.g., ":5000")
//	-g string     gRPC health bind address, empty disables it
//	-t string     storage backend: mongo, postgres or memory
//	-m string     MongoDB URI
//	-n string     MongoDB database name
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-e duration   token validity (e.g., "1h")
//	-b int        bcrypt cost
//	-r string     Redis address for rate limiting
//	-l int        auth requests allowed per window, 0 disables
//	-w duration   rate limit window
//	-i duration   store health check interval
//	-v string     log level
//	-x            trust X-Forwarded-For / X-Real-IP
//
// Only the flags listed above are considered; anything else on the command
// line is filtered out by flagx.FilterArgs first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run REST API")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port of gRPC health service")
	fs.StringVar(&config.Storage, "t", config.Storage, "storage backend")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenTTL, "e", config.TokenTTL, "token validity")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address")
	fs.IntVar(&config.RateLimit, "l", config.RateLimit, "rate limit")
	fs.DurationVar(&config.RateLimitWindow, "w", config.RateLimitWindow, "rate limit window")
	fs.DurationVar(&config.HealthCheckInterval, "i", config.HealthCheckInterval, "health check interval")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.BoolVar(&config.TrustProxy, "x", config.TrustProxy, "trust proxy headers")

	return fs.Parse(args)
}
