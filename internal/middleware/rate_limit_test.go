package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/ratelimit"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedEcho(s *server.Server, limit echo.MiddlewareFunc, h echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/limited", h, limit)
	return e
}

func okNoContent(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRateLimitHeadersOnAllowedResponses(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()
	rl := NewRateLimitMiddleware(s)

	e := newRateLimitedEcho(s, rl.General(), okNoContent)

	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "100", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "99", rec.Header().Get("RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("RateLimit-Reset"))
}

func TestAuthPolicyDeniesSixthFailedAttempt(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()
	rl := NewRateLimitMiddleware(s)

	// Every attempt fails authentication, so nothing is forgiven.
	e := newRateLimitedEcho(s, rl.Auth(), func(c echo.Context) error {
		return errs.NewUnauthorizedError("Invalid email or password")
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		rec := runRequest(e, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "900", rec.Header().Get(echo.HeaderRetryAfter))

	var envelope errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, 900, envelope.RetryAfter)
	assert.Equal(t, "Too many authentication attempts, please try again later.", envelope.Message)
}

func TestAuthPolicyForgivesSuccessfulRequests(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()
	rl := NewRateLimitMiddleware(s)

	e := newRateLimitedEcho(s, rl.Auth(), okNoContent)

	// Far more successful requests than the budget of 5: none of them
	// count, so none are denied.
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		rec := runRequest(e, req)
		assert.Equal(t, http.StatusOK, rec.Code, "attempt %d", i+1)
	}
}

func TestGeneralPolicyCountsSuccessfulRequests(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()
	rl := NewRateLimitMiddleware(s)

	// Dashboard allows 30/min and has no skip-successful, so the 31st
	// succeeds-or-not is decided purely by count.
	e := newRateLimitedEcho(s, rl.Dashboard(), okNoContent)

	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		rec := runRequest(e, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var envelope errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 60, envelope.RetryAfter)
}

func TestDeniedRequestNeverReachesHandler(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()
	rl := NewRateLimitMiddleware(s)

	calls := 0
	e := newRateLimitedEcho(s, rl.Upload(), func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 15; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		runRequest(e, req)
	}

	// Upload allows 10 per hour; the remaining 5 were rejected before the
	// handler.
	assert.Equal(t, 10, calls)
}

func TestRateLimitWindowSeconds(t *testing.T) {
	// Guard the policy constants the headers and retryAfter derive from.
	assert.Equal(t, 15*time.Minute, ratelimit.General.Window)
	assert.Equal(t, 100, ratelimit.General.Max)
	assert.Equal(t, 15*time.Minute, ratelimit.Auth.Window)
	assert.Equal(t, 5, ratelimit.Auth.Max)
	assert.True(t, ratelimit.Auth.SkipSuccessful)
	assert.Equal(t, time.Minute, ratelimit.Dashboard.Window)
	assert.Equal(t, 30, ratelimit.Dashboard.Max)
	assert.Equal(t, time.Hour, ratelimit.Upload.Window)
	assert.Equal(t, 10, ratelimit.Upload.Max)
}
