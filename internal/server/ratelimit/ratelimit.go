// Package ratelimit provides fixed-window request limiting keyed by client.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter decides whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// GetClientIP extracts the client IP from an HTTP request. With trustProxy,
// X-Forwarded-For (first hop) and X-Real-IP take precedence over RemoteAddr.
// Without it those headers are client-controlled and ignored.
func GetClientIP(r *http.Request, trustProxy bool) string {
	if !trustProxy {
		return remoteHost(r)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps counters in process memory. Expired windows are swept
// lazily, at most once per window length.
type MemoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	rate      int
	length    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(rate int, length time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		rate:    rate,
		length:  length,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(m.length)}
		m.windows[key] = w
	}

	if w.count >= m.rate {
		return false, nil
	}
	w.count++
	return true, nil
}

func (m *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.length {
		return
	}
	m.lastSweep = now
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
}

var _ Limiter = (*MemoryLimiter)(nil)
