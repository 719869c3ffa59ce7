package middleware

import (
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component used by the HTTP server, so
// routing code constructs them once and wires them by name.
type Middlewares struct {
	// Global holds middleware applied to all routes (CORS, request logging,
	// recovery, secure headers, body limit) plus the global error handler.
	Global *GlobalMiddlewares

	// Auth provides the authentication and role-authorization guards.
	Auth *AuthMiddleware

	// Security provides the API key gate and content-type check.
	Security *SecurityMiddleware

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic transaction middleware and attribute
	// enrichment.
	Tracing *TracingMiddleware

	// RateLimit enforces the per-policy request budgets.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the application
// container. When New Relic is not configured nrApp is nil and the tracing
// middleware degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		Security:        NewSecurityMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
