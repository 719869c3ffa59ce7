package middleware

import (
	"net/http"
	"strconv"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/ratelimit"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware owns one limiter per policy, all sharing the bucket
// store injected through the app container.
type RateLimitMiddleware struct {
	server    *server.Server
	general   *ratelimit.Limiter
	auth      *ratelimit.Limiter
	dashboard *ratelimit.Limiter
	upload    *ratelimit.Limiter
}

// NewRateLimitMiddleware constructs the four policy limiters.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server:    s,
		general:   ratelimit.NewLimiter(ratelimit.General, s.RateLimitStore),
		auth:      ratelimit.NewLimiter(ratelimit.Auth, s.RateLimitStore),
		dashboard: ratelimit.NewLimiter(ratelimit.Dashboard, s.RateLimitStore),
		upload:    ratelimit.NewLimiter(ratelimit.Upload, s.RateLimitStore),
	}
}

// General limits all API routes (100 requests / 15 min per IP).
func (r *RateLimitMiddleware) General() echo.MiddlewareFunc { return r.limit(r.general) }

// Auth limits login/auth routes (5 / 15 min); successful requests are
// un-counted so only failed attempts burn quota.
func (r *RateLimitMiddleware) Auth() echo.MiddlewareFunc { return r.limit(r.auth) }

// Dashboard limits dashboard and reporting routes (30 / min).
func (r *RateLimitMiddleware) Dashboard() echo.MiddlewareFunc { return r.limit(r.dashboard) }

// Upload limits file uploads (10 / hour).
func (r *RateLimitMiddleware) Upload() echo.MiddlewareFunc { return r.limit(r.upload) }

// limit builds the echo middleware for one limiter. Requests are counted by
// client IP. A rejected request terminates here; no later stage runs for it.
func (r *RateLimitMiddleware) limit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	policy := limiter.Policy()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientKey := c.RealIP()

			result, err := limiter.Check(c.Request().Context(), clientKey)
			if err != nil {
				// A broken bucket store (e.g. redis outage) fails open:
				// dropping traffic over a counter backend is worse than
				// briefly not limiting it.
				GetLogger(c).Error().
					Err(err).
					Str("policy", policy.Name).
					Msg("rate limit store unavailable, allowing request")
				return next(c)
			}

			// RateLimit-* headers go out on every response that passed
			// through the stage, allowed or not.
			header := c.Response().Header()
			header.Set("RateLimit-Limit", strconv.Itoa(result.Limit))
			header.Set("RateLimit-Remaining", strconv.Itoa(result.Remaining))
			header.Set("RateLimit-Reset", strconv.Itoa(result.Reset))

			if !result.Allowed {
				GetLogger(c).Warn().
					Str("policy", policy.Name).
					Str("ip", clientKey).
					Str("path", c.Request().URL.Path).
					Str("user_agent", c.Request().UserAgent()).
					Msg("rate limit exceeded")

				r.RecordRateLimitHit(c.Request().URL.Path, policy.Name)

				header.Set(echo.HeaderRetryAfter, strconv.Itoa(result.RetryAfter))

				return errs.NewTooManyRequestsError(policy.Message, result.RetryAfter)
			}

			err = next(c)

			if policy.SkipSuccessful && err == nil && c.Response().Status < http.StatusBadRequest {
				if ferr := limiter.Forgive(c.Request().Context(), clientKey); ferr != nil {
					GetLogger(c).Error().
						Err(ferr).
						Str("policy", policy.Name).
						Msg("failed to un-count successful request")
				}
			}

			return err
		}
	}
}

// RecordRateLimitHit emits a New Relic custom event for a rate-limit breach.
// No-op when the agent is not configured.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint, policy string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
			"policy":   policy,
		})
	}
}
