package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := Config{ServerURL: "http://default", RequestTimeout: time.Second, OnlineCheckInterval: time.Second}

	tests := []struct {
		name    string
		args    []string
		want    Config
		wantErr bool
	}{
		{
			name: "all flags, interval in seconds",
			args: []string{"-a", "http://127.0.0.1:9090", "-t", "5s", "-i", "10"},
			want: Config{ServerURL: "http://127.0.0.1:9090", RequestTimeout: 5 * time.Second, OnlineCheckInterval: 10 * time.Second},
		},
		{
			name: "interval as duration",
			args: []string{"-i", "1500ms"},
			want: Config{ServerURL: "http://default", RequestTimeout: time.Second, OnlineCheckInterval: 1500 * time.Millisecond},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-v"},
			want: base,
		},
		{name: "bad interval", args: []string{"-i", "abc"}, wantErr: true},
		{name: "bad timeout", args: []string{"-t", "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			err := parseFlags(&cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	d, err := parseInterval("0")
	require.NoError(t, err)
	require.Zero(t, d)

	d, err = parseInterval("2m")
	require.NoError(t, err)
	require.Equal(t, 2*time.Minute, d)

	_, err = parseInterval("2 minutes")
	require.EqualError(t, err, `invalid interval "2 minutes"`)
}
