package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthify/portal/internal/platform/auth"
)

func TestRateLimit_RequestsWithinLimit(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5}

	e := echo.New()
	handler := RateLimit(cfg)(okHandler)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			t.Fatalf("request %d: expected no error, got %v", i+1, err)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
			t.Errorf("request %d: expected X-RateLimit-Limit '10', got %q", i+1, got)
		}
	}
}

func TestRateLimit_ExceedsLimit(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}

	e := echo.New()
	handler := RateLimit(cfg)(okHandler)

	var lastErr error
	var rec *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec = httptest.NewRecorder()
		lastErr = handler(e.NewContext(req, rec))
	}
	he, ok := lastErr.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", lastErr)
	}
	if ra, err := strconv.Atoi(rec.Header().Get("Retry-After")); err != nil || ra < 1 {
		t.Errorf("expected positive Retry-After, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimit_KeysBySession(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1}
	e := echo.New()
	handler := RateLimit(cfg)(okHandler)

	for _, uid := range []string{"alice", "bob"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(auth.WithSession(req.Context(), &auth.Session{UserID: uid}))
		if err := handler(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Fatalf("%s: each user has an own bucket, got %v", uid, err)
		}
	}
}

func TestRateLimit_SkipsStatic(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1}
	e := echo.New()
	handler := RateLimit(cfg)(okHandler)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/static/tokens.css", nil)
		if err := handler(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Fatalf("static requests are not limited, got %v", err)
		}
	}
}

func TestLimiter_SweepsIdleBuckets(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1, IdleTTL: time.Minute})
	l.now = func() time.Time { return now }

	l.bucket("a")
	now = now.Add(2 * time.Minute)
	l.bucket("b")
	if _, ok := l.buckets["a"]; ok {
		t.Error("idle bucket should be swept")
	}
	if _, ok := l.buckets["b"]; !ok {
		t.Error("fresh bucket should remain")
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	start := time.Unix(0, 0)
	b := newTokenBucket(2, 1, start)
	if ok, _ := b.take(start); !ok {
		t.Fatal("first token should be available")
	}
	if ok, _ := b.take(start); ok {
		t.Fatal("bucket should be empty")
	}
	if ok, _ := b.take(start.Add(600 * time.Millisecond)); !ok {
		t.Error("bucket should refill at 2 tokens per second")
	}
}
