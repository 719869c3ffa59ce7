package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/portal-platform/internal/config"
	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "development"},
			Auth:    config.AuthConfig{SecretKey: "test-secret", TokenTTLHours: 24},
		},
		Logger: &logger,
		Token:  token.NewService("test-secret", 24*time.Hour),
	}
}

func issueToken(t *testing.T, s *server.Server, role token.Role) string {
	t.Helper()

	signed, err := s.Token.Issue(1, "user@example.com", role)
	require.NoError(t, err)
	return signed
}

func runRequest(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// okHandler records whether it ran and what identity it saw.
type okHandler struct {
	called   bool
	identity *token.Identity
}

func (h *okHandler) handle(c echo.Context) error {
	h.called = true
	h.identity = GetIdentity(c)
	return c.NoContent(http.StatusOK)
}

func newAuthTestEcho(s *server.Server, h *okHandler, roles ...token.Role) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	auth := NewAuthMiddleware(s)
	mws := []echo.MiddlewareFunc{auth.RequireAuth}
	if len(roles) > 0 {
		mws = append(mws, auth.RequireRoles(roles...))
	}
	e.GET("/protected", h.handle, mws...)
	return e
}

func TestRequireAuthMissingHeader(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access token required")
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.False(t, h.called)
	assert.Nil(t, h.identity)
}

func TestRequireAuthMalformedScheme(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h)

	for _, header := range []string{"Basic dXNlcjpwYXNz", "Bearer", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, header)
		rec := runRequest(e, req)

		// Malformed scheme is indistinguishable from no token at all.
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), "Access token required")
	}
	assert.False(t, h.called)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "The provided token is invalid or expired")
	assert.False(t, h.called)
}

func TestRequireAuthExpiredTokenSameMessage(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h)

	// Signed with the right secret but already expired.
	expiredSvc := token.NewService("test-secret", -time.Hour)
	signed, err := expiredSvc.Issue(1, "user@example.com", token.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "The provided token is invalid or expired")
	assert.False(t, h.called)
}

func TestRequireAuthValidTokenAttachesIdentity(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, s, token.RoleManager))
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, h.called)
	require.NotNil(t, h.identity)
	assert.Equal(t, int64(1), h.identity.UserID)
	assert.Equal(t, token.RoleManager, h.identity.Role)
}

func TestRequireAuthBearerSchemeCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "bearer "+issueToken(t, s, token.RoleUser))
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesForbiddenForExcludedRole(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h, token.RoleAdmin, token.RoleManager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, s, token.RoleUser))
	rec := runRequest(e, req)

	// Valid token, wrong role.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")
	assert.False(t, h.called)
}

func TestRequireRolesAllowsMemberRole(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h, token.RoleAdmin, token.RoleManager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issueToken(t, s, token.RoleAdmin))
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, h.called)
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	s := newTestServer(t)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	// RequireRoles mounted without RequireAuth: the defensive path.
	auth := NewAuthMiddleware(s)
	e.GET("/misconfigured", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, auth.RequireRoles(token.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/misconfigured", nil)
	rec := runRequest(e, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestErrorEnvelopeShape(t *testing.T) {
	s := newTestServer(t)
	h := &okHandler{}
	e := newAuthTestEcho(s, h)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := runRequest(e, req)

	var envelope errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "UNAUTHORIZED", envelope.Code)
	assert.Equal(t, http.StatusUnauthorized, envelope.Status)
	assert.Equal(t, "Access token required", envelope.Message)
}
