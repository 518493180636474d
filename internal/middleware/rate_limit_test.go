package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// helper to reset global state between tests
func resetLimiters() {
	visitorsMu.Lock()
	visitors = make(map[string]*visitor)
	visitorsMu.Unlock()
}

// makeTestServer creates an Echo instance with the rate limit middleware and a test route.
func makeTestServer() *echo.Echo {
	e := echo.New()
	e.Use(RateLimitMiddleware())
	e.GET("/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
	})
	return e
}

func TestRateLimitMiddleware_AllowsInitialBurst(t *testing.T) {
	resetLimiters()

	e := makeTestServer()

	// Should allow the full burst of quick requests
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200 on request %d, got %d", i+1, w.Code)
		}
	}

	// Next request should be rate limited
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after burst, got %d", w.Code)
	}
}

func TestRateLimitMiddleware_SeparatePerIP(t *testing.T) {
	resetLimiters()

	e := makeTestServer()

	// Exhaust the first IP's burst
	for i := 0; i < 21; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
	}

	// A different IP should still be allowed
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for fresh IP, got %d", w.Code)
	}
}
