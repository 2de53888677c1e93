package ratelimit

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_Allow(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed, "4th request should be denied")

	allowed, _ = limiter.Allow(ctx, "5.6.7.8")
	assert.True(t, allowed, "other keys are independent")
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "k")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "k")
	assert.False(t, allowed)

	now = now.Add(time.Minute)
	allowed, _ = limiter.Allow(ctx, "k")
	assert.True(t, allowed, "new window")
}

func TestMemoryLimiter_SweepsExpired(t *testing.T) {
	limiter := NewMemoryLimiter(1, time.Second)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		_, _ = limiter.Allow(ctx, k)
	}

	now = now.Add(2 * time.Second)
	_, _ = limiter.Allow(ctx, "d")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.windows, 1)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	limiter := NewMemoryLimiter(10, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow(ctx, "k"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowedCount)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		want       string
	}{
		{"forwarded for, trusted", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:1", true, "10.0.0.1"},
		{"real ip, trusted", map[string]string{"X-Real-IP": "10.0.0.3"}, "1.1.1.1:1", true, "10.0.0.3"},
		{"forwarded for, untrusted", map[string]string{"X-Forwarded-For": "10.0.0.1"}, "1.1.1.1:1", false, "1.1.1.1"},
		{"real ip, untrusted", map[string]string{"X-Real-IP": "10.0.0.3"}, "1.1.1.1:1", false, "1.1.1.1"},
		{"remote addr", nil, "192.168.1.5:4321", true, "192.168.1.5"},
		{"ipv6 remote addr", nil, "[::1]:4321", false, "::1"},
		{"no port", nil, "192.168.1.5", false, "192.168.1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(r, tt.trustProxy))
		})
	}
}
