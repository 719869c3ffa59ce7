package middleware

import (
	"context"
	"strconv"

	"github.com/deppfellow/portal-platform/internal/logger"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// IdentityKey stores the verified *token.Identity set by RequireAuth.
	// No other stage writes it; stages reading it run strictly after
	// authentication succeeds.
	IdentityKey = "identity"

	// UserIDKey and UserRoleKey hold string forms of the identity for log
	// correlation.
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// LoggerKey stores the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer enriches each request with a request-scoped logger
// carrying request_id, method, path, ip, trace ids (when a New Relic
// transaction exists) and user identity (when authentication already ran).
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer using the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the echo middleware. The logger is stored both in
// the echo context and in the request's context.Context so non-HTTP layers
// (repositories, services) can retrieve it.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}
			if userRole, ok := c.Get(UserRoleKey).(string); ok && userRole != "" {
				contextLogger = contextLogger.With().Str("user_role", userRole).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

type loggerCtxKey struct{}

// SetIdentity attaches a verified identity to the request. Only the
// authentication middleware calls this.
func SetIdentity(c echo.Context, id *token.Identity) {
	c.Set(IdentityKey, id)
	c.Set(UserIDKey, strconv.FormatInt(id.UserID, 10))
	c.Set(UserRoleKey, string(id.Role))
}

// GetIdentity returns the verified identity, or nil when authentication has
// not run (or failed) for this request.
func GetIdentity(c echo.Context) *token.Identity {
	if id, ok := c.Get(IdentityKey).(*token.Identity); ok {
		return id
	}
	return nil
}

// GetUserID reads the authenticated user id as a string, or "".
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from echo context. If the
// enhancer did not run, a no-op logger is returned so callers never crash.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
