package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIPRateLimiter(t *testing.T) {
	t.Run("burst_then_block", func(t *testing.T) {
		l := newIPRateLimiter(3)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		for i := 0; i < 3; i++ {
			if !l.allow("10.0.0.1") {
				t.Fatalf("request %d unexpectedly limited", i+1)
			}
		}
		if l.allow("10.0.0.1") {
			t.Fatal("expected fourth request to be limited")
		}
		if !l.allow("10.0.0.2") {
			t.Error("expected other client to be unaffected")
		}
	})

	t.Run("refills_over_time", func(t *testing.T) {
		l := newIPRateLimiter(2)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		l.allow("10.0.0.1")
		l.allow("10.0.0.1")
		if l.allow("10.0.0.1") {
			t.Fatal("expected bucket to be empty")
		}

		now = now.Add(30 * time.Second)
		if !l.allow("10.0.0.1") {
			t.Error("expected a token after 30s at 2/min")
		}
	})

	t.Run("idle_clients_evicted", func(t *testing.T) {
		l := newIPRateLimiter(5)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		l.allow("10.0.0.1")
		now = now.Add(idleLimiterTTL + time.Minute)
		l.allow("10.0.0.2")

		if _, ok := l.clients["10.0.0.1"]; ok {
			t.Error("expected idle client to be evicted")
		}
		if len(l.clients) != 1 {
			t.Errorf("expected 1 tracked client, got %d", len(l.clients))
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(2))
	r.POST("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", http.NoBody)
		req.RemoteAddr = "192.0.2.10:4567"
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
		if i < 2 && last.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, last.Code)
		}
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.Code)
	}
	if code := errorCode(t, last); code != "RATE_LIMITED" {
		t.Errorf("error code = %q, want RATE_LIMITED", code)
	}
}
