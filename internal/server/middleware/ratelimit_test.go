// file: internal/server/middleware/ratelimit_test.go
// version: 1.0.0
// guid: 43b91f84-3a5a-4a6a-b783-ce08c66ff01d

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestWindowLimiterCheck(t *testing.T) {
	l := NewWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		d := l.Check("client")
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if d.Remaining != 3-(i+1) {
			t.Errorf("request %d: expected remaining %d, got %d", i+1, 3-(i+1), d.Remaining)
		}
	}

	d := l.Check("client")
	if d.Allowed {
		t.Fatal("fourth request should be blocked")
	}
	if d.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", d.Remaining)
	}

	// Independent keys get independent windows.
	if d := l.Check("other"); !d.Allowed {
		t.Error("different key should not share the window")
	}
}

func TestWindowLimiterResetsAfterWindow(t *testing.T) {
	l := NewWindowLimiter(1, time.Minute)
	current := time.Now()
	l.now = func() time.Time { return current }

	if d := l.Check("client"); !d.Allowed {
		t.Fatal("first request should pass")
	}
	if d := l.Check("client"); d.Allowed {
		t.Fatal("second request in window should be blocked")
	}

	current = current.Add(time.Minute + time.Second)
	if d := l.Check("client"); !d.Allowed {
		t.Fatal("request after window should pass")
	}
}

func TestWindowLimiterDisabled(t *testing.T) {
	l := NewWindowLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if d := l.Check("client"); !d.Allowed {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}

func TestWindowLimiterSweep(t *testing.T) {
	l := NewWindowLimiter(5, time.Minute)
	current := time.Now()
	l.now = func() time.Time { return current }

	l.Check("a")
	l.Check("b")
	if removed := l.Sweep(); removed != 0 {
		t.Errorf("nothing expired yet, removed %d", removed)
	}

	current = current.Add(2 * time.Minute)
	if removed := l.Sweep(); removed != 2 {
		t.Errorf("expected 2 expired windows removed, got %d", removed)
	}
}

func TestRateLimitMiddlewareHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	l := NewWindowLimiter(2, time.Minute)
	router.Use(l.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	if got := first.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Errorf("expected limit header 2, got %q", got)
	}
	if got := first.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Errorf("expected remaining header 1, got %q", got)
	}

	do()
	third := do()
	if third.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", third.Code)
	}
	if third.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}
