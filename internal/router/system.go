package router

import (
	"github.com/deppfellow/portal-platform/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not business logic.
// /status is fully public: no token, no API key, no rate limit, so monitors
// keep working even when the API is saturated.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
