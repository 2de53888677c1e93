package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/flagx"
	"github.com/dmitrijs2005/gophsocial/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations use timex.Duration, which accepts both strings such as "1h" and
// integer nanoseconds. Fields left out of the file keep their current value.
type JsonConfig struct {
	HTTPAddr            *string         `json:"http_addr"`
	GRPCHealthAddr      *string         `json:"grpc_health_addr"`
	Storage             *string         `json:"storage"`
	MongoURI            *string         `json:"mongo_uri"`
	MongoDatabase       *string         `json:"mongo_database"`
	DatabaseDSN         *string         `json:"database_dsn"`
	SecretKey           *string         `json:"secret_key"`
	TokenTTL            *timex.Duration `json:"token_ttl"`
	BcryptCost          *int            `json:"bcrypt_cost"`
	RedisAddr           *string         `json:"redis_addr"`
	RateLimit           *int            `json:"rate_limit"`
	RateLimitWindow     *timex.Duration `json:"rate_limit_window"`
	TrustProxy          *bool           `json:"trust_proxy"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flag. Without either flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.Storage, c.Storage)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.TokenTTL, c.TokenTTL)
	setInt(&config.BcryptCost, c.BcryptCost)
	setString(&config.RedisAddr, c.RedisAddr)
	setInt(&config.RateLimit, c.RateLimit)
	setDuration(&config.RateLimitWindow, c.RateLimitWindow)
	if c.TrustProxy != nil {
		config.TrustProxy = *c.TrustProxy
	}
	setDuration(&config.HealthCheckInterval, c.HealthCheckInterval)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
