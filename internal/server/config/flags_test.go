package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", ":6000", "-t", "memory",
				"-m", "mongodb://m", "-n", "db", "-d", "dsn", "-s", "secret",
				"-e", "2h", "-b", "4", "-r", "redis:6379", "-l", "3", "-w", "10s",
				"-i", "5s", "-v", "warn", "-x",
			},
			expected: &Config{
				HTTPAddr:            "127.0.0.1:9090",
				GRPCHealthAddr:      ":6000",
				Storage:             "memory",
				MongoURI:            "mongodb://m",
				MongoDatabase:       "db",
				DatabaseDSN:         "dsn",
				SecretKey:           "secret",
				TokenTTL:            2 * time.Hour,
				BcryptCost:          4,
				RedisAddr:           "redis:6379",
				RateLimit:           3,
				RateLimitWindow:     10 * time.Second,
				HealthCheckInterval: 5 * time.Second,
				LogLevel:            "warn",
				TrustProxy:          true,
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "cfg.json", "-z", "-s=abc"},
			expected: &Config{SecretKey: "abc"},
		},
		{
			name:      "bad duration",
			args:      []string{"-e", "soon"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)

			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
