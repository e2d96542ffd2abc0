package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/cache"
)

type stubLimiter struct {
	result *cache.RateLimitResult
	err    error
	calls  int
}

func (s *stubLimiter) CheckAuthRateLimit(ctx context.Context, ip string, rps, burst int) (*cache.RateLimitResult, error) {
	s.calls++
	return s.result, s.err
}

func rateLimitProbe(cfg RateLimitConfig) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	rec := httptest.NewRecorder()

	RateLimitAuth(cfg)(next).ServeHTTP(rec, req)
	return rec
}

func TestRateLimitAuthAllows(t *testing.T) {
	limiter := &stubLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 4}}
	rec := rateLimitProbe(RateLimitConfig{
		Logger: testLogger(), Limiter: limiter, Enabled: true, RPS: 5, Burst: 10,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRateLimitAuthBlocks(t *testing.T) {
	limiter := &stubLimiter{result: &cache.RateLimitResult{Allowed: false, RetryAfter: 12 * time.Second}}
	rec := rateLimitProbe(RateLimitConfig{
		Logger: testLogger(), Limiter: limiter, Enabled: true, RPS: 5, Burst: 10,
	})

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "12" {
		t.Errorf("Retry-After = %q", got)
	}
}

func TestRateLimitAuthFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	rec := rateLimitProbe(RateLimitConfig{
		Logger: testLogger(), Limiter: limiter, Enabled: true, RPS: 5, Burst: 10,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("limiter errors must not block logins, status = %d", rec.Code)
	}
}

func TestRateLimitAuthDisabled(t *testing.T) {
	limiter := &stubLimiter{result: &cache.RateLimitResult{Allowed: false}}
	rec := rateLimitProbe(RateLimitConfig{
		Logger: testLogger(), Limiter: limiter, Enabled: false,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if limiter.calls != 0 {
		t.Errorf("limiter consulted while disabled, calls = %d", limiter.calls)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"host_port", "203.0.113.9:51234", "203.0.113.9"},
		{"bare_host", "203.0.113.9", "203.0.113.9"},
		{"ipv6", "[2001:db8::1]:443", "2001:db8::1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = test.remoteAddr
			if got := clientIP(req); got != test.want {
				t.Fatalf("clientIP = %q, want %q", got, test.want)
			}
		})
	}
}
