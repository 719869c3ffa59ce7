package middleware

import (
	"strings"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware enforces authentication and role-based authorization.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// extractBearerToken pulls the token from "Authorization: Bearer <token>".
// A missing header and a malformed scheme are treated identically: no token.
func extractBearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}

	return strings.TrimSpace(rest)
}

// RequireAuth rejects requests without a verifiable identity token.
//
// Behavior:
//   - no token (absent header or malformed scheme): 401 "Access token required"
//   - verification failure: 403 with the single generic invalid-or-expired
//     message, regardless of whether the signature or the expiry failed
//   - success: identity is attached to the request context
//
// Identity is only ever attached on the success path, so downstream stages
// reading it can never observe an unauthenticated request.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			return errs.NewUnauthorizedError("Access token required")
		}

		identity, err := auth.server.Token.Verify(tokenString)
		if err != nil {
			GetLogger(c).Warn().
				Str("ip", c.RealIP()).
				Msg("token verification failed")

			return errs.NewForbiddenError("The provided token is invalid or expired")
		}

		SetIdentity(c, identity)

		return next(c)
	}
}

// RequireRoles authorizes the authenticated identity against a fixed
// allowed-role set. The set is bound at route configuration time, not per
// request.
//
// Pipeline ordering guarantees RequireAuth already ran, but that is not
// assumed: a missing identity is rejected with 401 rather than dereferenced.
func (auth *AuthMiddleware) RequireRoles(roles ...token.Role) echo.MiddlewareFunc {
	allowed := make(map[token.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := GetIdentity(c)
			if identity == nil {
				return errs.NewUnauthorizedError("Authentication required")
			}

			if _, ok := allowed[identity.Role]; !ok {
				GetLogger(c).Warn().
					Str("role", string(identity.Role)).
					Str("path", c.Path()).
					Msg("role not permitted for route")

				return errs.NewForbiddenError("Insufficient permissions")
			}

			return next(c)
		}
	}
}
