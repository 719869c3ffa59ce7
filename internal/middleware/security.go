package middleware

import (
	"net/http"
	"strings"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/labstack/echo/v4"
)

// SecurityMiddleware holds the API-key and content-type gates that sit in
// front of the API group.
type SecurityMiddleware struct {
	server *server.Server
}

func NewSecurityMiddleware(s *server.Server) *SecurityMiddleware {
	return &SecurityMiddleware{server: s}
}

// APIKey requires a valid X-API-Key header outside development. Keys are
// matched against the configured allow list.
func (m *SecurityMiddleware) APIKey() echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(m.server.Config.Security.APIKeys))
	for _, key := range m.server.Config.Security.APIKeys {
		if key != "" {
			allowed[key] = struct{}{}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.server.Config.IsDevelopment() {
				return next(c)
			}

			key := c.Request().Header.Get("X-API-Key")
			if key == "" {
				return errs.NewUnauthorizedError("API key required")
			}

			if _, ok := allowed[key]; !ok {
				GetLogger(c).Warn().
					Str("ip", c.RealIP()).
					Str("path", c.Request().URL.Path).
					Msg("rejected request with unknown API key")
				return errs.NewUnauthorizedError("Invalid API key")
			}

			return next(c)
		}
	}
}

// ContentType rejects body-carrying requests whose Content-Type is not JSON
// or multipart. Reads (GET, HEAD, DELETE, OPTIONS) pass through untouched.
func (m *SecurityMiddleware) ContentType() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
				return next(c)
			}

			contentType := c.Request().Header.Get(echo.HeaderContentType)
			if contentType == "" && c.Request().ContentLength == 0 {
				return next(c)
			}

			if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) ||
				strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
				return next(c)
			}

			return errs.NewUnsupportedMediaTypeError("Content-Type must be application/json or multipart/form-data")
		}
	}
}
