package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/portal-platform/internal/ratelimit"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPipelineEcho assembles a protected route the way the router does:
// rate limit, then authentication, then authorization, then sanitization,
// then the handler. Tests against it exercise stage ordering rather than any
// single stage.
func newPipelineEcho(t *testing.T, s *server.Server, handlerCalled *bool) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	auth := NewAuthMiddleware(s)
	rl := NewRateLimitMiddleware(s)

	e.POST("/admin-action", func(c echo.Context) error {
		*handlerCalled = true
		return c.NoContent(http.StatusOK)
	},
		rl.Dashboard(),
		auth.RequireAuth,
		auth.RequireRoles(token.RoleAdmin),
		Sanitize(),
	)

	return e
}

func TestPipelineOverQuotaShortCircuitsBeforeAuth(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()

	called := false
	e := newPipelineEcho(t, s, &called)

	// Exhaust the dashboard budget without ever presenting a token.
	var lastCode int
	for i := 0; i < 31; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin-action", nil)
		rec := runRequest(e, req)
		lastCode = rec.Code
	}

	// The 31st request is rejected by the limiter, not by authentication:
	// over-quota requests never reach the auth stage.
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
	assert.False(t, called)
}

// newUploadPipelineEcho mirrors the attachments route registration: the
// upload limiter sits on its own group ahead of authentication. The auth
// stage is wrapped with a counter so tests can observe whether a denied
// request ever reached it.
func newUploadPipelineEcho(t *testing.T, s *server.Server, authCalls *int) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	auth := NewAuthMiddleware(s)
	rl := NewRateLimitMiddleware(s)

	countAuth := func(next echo.HandlerFunc) echo.HandlerFunc {
		inner := auth.RequireAuth(next)
		return func(c echo.Context) error {
			*authCalls++
			return inner(c)
		}
	}

	uploads := e.Group("/tickets/:id/attachments", rl.Upload(), countAuth, Sanitize())
	uploads.POST("", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	return e
}

func TestPipelineUploadOverQuotaShortCircuitsBeforeAuth(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()

	authCalls := 0
	e := newUploadPipelineEcho(t, s, &authCalls)

	signed, err := s.Token.Issue(3, "user@example.com", token.RoleUser)
	require.NoError(t, err)

	// Exhaust the upload budget with a valid token.
	var lastCode int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/tickets/1/attachments", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
		rec := runRequest(e, req)
		lastCode = rec.Code
	}

	// The 11th request is rejected by the limiter without the auth stage
	// ever running for it.
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
	assert.Equal(t, 10, authCalls)
}

func TestPipelineNoTokenStopsAtAuthentication(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()

	called := false
	e := newPipelineEcho(t, s, &called)

	req := httptest.NewRequest(http.MethodPost, "/admin-action", strings.NewReader(`{"x":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestPipelineWrongRoleStopsAtAuthorization(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()

	called := false
	e := newPipelineEcho(t, s, &called)

	signed, err := s.Token.Issue(5, "user@example.com", token.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-action", strings.NewReader(`{"x":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")
	assert.False(t, called)
}

func TestPipelineFullPassReachesHandler(t *testing.T) {
	s := newTestServer(t)
	s.RateLimitStore = ratelimit.NewMemoryStore()

	called := false
	e := newPipelineEcho(t, s, &called)

	signed, err := s.Token.Issue(1, "admin@example.com", token.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin-action", strings.NewReader(`{"x":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, "30", rec.Header().Get("RateLimit-Limit"))
}
