package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"http_addr":             "127.0.0.1:8080",
		"grpc_health_addr":      "",
		"storage":               "postgres",
		"mongo_uri":             "mongodb://db:27017",
		"mongo_database":        "social",
		"database_dsn":          "postgres://x",
		"secret_key":            "my_secret_key",
		"token_ttl":             "30m",
		"bcrypt_cost":           12,
		"redis_addr":            "redis:6379",
		"rate_limit":            5,
		"rate_limit_window":     int64(2 * time.Second),
		"trust_proxy":           true,
		"health_check_interval": "1s",
		"log_level":             "debug",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"secret_key": "only-this",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-config", full}))

		assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
		assert.Equal(t, "", cfg.GRPCHealthAddr)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
		assert.Equal(t, "social", cfg.MongoDatabase)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, 5, cfg.RateLimit)
		assert.Equal(t, 2*time.Second, cfg.RateLimitWindow)
		assert.True(t, cfg.TrustProxy)
		assert.Equal(t, time.Second, cfg.HealthCheckInterval)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", partial}))

		assert.Equal(t, "only-this", cfg.SecretKey)
		assert.Equal(t, ":5000", cfg.HTTPAddr)
		assert.Equal(t, time.Hour, cfg.TokenTTL)
	})

	t.Run("no flag means no file", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-a", ":1"}))
		assert.Equal(t, Config{}, *cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &Config{}
		assert.Error(t, parseJson(cfg, []string{"-c", filepath.Join(dir, "nope.json")}))
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

		cfg := &Config{}
		assert.Error(t, parseJson(cfg, []string{"-c", bad}))
	})
}
