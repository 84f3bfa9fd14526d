package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cdlmock/accountapi/internal/cache"
	"github.com/cdlmock/accountapi/internal/metrics"
)

type fakeLimiter struct {
	result *cache.RateLimitResult
	err    error
	lastIP string
}

func (f *fakeLimiter) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error) {
	f.lastIP = ip
	return f.result, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		enabled     bool
		limiter     *fakeLimiter
		wantStatus  int
		wantLimited uint64
	}{
		{
			name:       "disabled passes through",
			enabled:    false,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: false}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "allowed",
			enabled:    true,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 3}},
			wantStatus: http.StatusOK,
		},
		{
			name:        "denied",
			enabled:     true,
			limiter:     &fakeLimiter{result: &cache.RateLimitResult{Allowed: false, RetryAfter: 2 * time.Second}},
			wantStatus:  http.StatusTooManyRequests,
			wantLimited: 1,
		},
		{
			name:       "limiter error fails open",
			enabled:    true,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: true}, err: errors.New("redis down")},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := metrics.NewInMemory()
			h := RateLimitIP(RateLimitConfig{
				Logger:  discardLogger(),
				Limiter: tt.limiter,
				Metrics: rec,
				Enabled: tt.enabled,
				RPS:     5,
				Burst:   10,
			})(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/generate-token", nil)
			req.RemoteAddr = "203.0.113.7:5555"
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := rec.Snapshot().RateLimited; got != tt.wantLimited {
				t.Errorf("RateLimited = %d, want %d", got, tt.wantLimited)
			}
			if tt.wantStatus == http.StatusTooManyRequests && w.Header().Get("Retry-After") != "2" {
				t.Errorf("Retry-After = %q, want 2", w.Header().Get("Retry-After"))
			}
			if tt.enabled && tt.limiter.lastIP != "203.0.113.7" {
				t.Errorf("limiter saw ip %q, want 203.0.113.7", tt.limiter.lastIP)
			}
		})
	}
}
