// Package router initializes the HTTP router (using Echo).
//
// It wires the middleware pipeline and maps route groups to handlers. Each
// group lists its stages in order; the first stage that rejects a request
// short-circuits everything after it, so an over-quota request never reaches
// authentication and an unauthenticated request never reaches a handler.
package router

import (
	"net/http"

	"github.com/deppfellow/portal-platform/internal/handler"
	"github.com/deppfellow/portal-platform/internal/middleware"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance with the full middleware pipeline and all
// route groups registered.
func New(s *server.Server, mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Global chain, in order: recover, request id, secure headers, CORS,
	// body limit, content type, tracing, context enhancer, request logger.
	// Tracing precedes the context enhancer so request-scoped loggers can
	// pick up trace ids.
	e.Use(mw.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(mw.Global.Secure())
	e.Use(mw.Global.CORS())
	e.Use(mw.Global.BodyLimit())
	e.Use(mw.Security.ContentType())
	e.Use(mw.Tracing.NewRelicMiddleware())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Tracing.EnhanceTracing())

	registerSystemRoutes(e, h)

	// All business routes live under /api, behind the general rate limit and
	// (outside development) the API key check.
	api := e.Group("/api", mw.RateLimit.General(), mw.Security.APIKey())

	registerAuthRoutes(api, mw, h)
	registerTicketingRoutes(api, mw, h)
	registerMasterDataRoutes(api, mw, h)
	registerDashboardRoutes(api, mw, h)
	registerReportingRoutes(api, mw, h)
	registerLogRoutes(api, mw, h)

	return e
}

// registerAuthRoutes mounts login and registration. The auth limiter runs
// before any credential or token work; successful responses are un-counted
// so only failed attempts burn the 5-per-window budget.
func registerAuthRoutes(api *echo.Group, mw *middleware.Middlewares, h *handler.Handlers) {
	auth := api.Group("/auth", mw.RateLimit.Auth(), middleware.Sanitize())

	auth.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK))
	auth.POST("/register", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated))
}

func registerTicketingRoutes(api *echo.Group, mw *middleware.Middlewares, h *handler.Handlers) {
	ticketing := api.Group("/ticketing", mw.Auth.RequireAuth, middleware.Sanitize())

	ticketing.GET("/tickets", handler.Handle(h.Ticketing.Handler, h.Ticketing.List, http.StatusOK))
	ticketing.GET("/tickets/stats", handler.Handle(h.Ticketing.Handler, h.Ticketing.Stats, http.StatusOK))
	ticketing.GET("/tickets/:id", handler.Handle(h.Ticketing.Handler, h.Ticketing.Get, http.StatusOK))
	ticketing.POST("/tickets", handler.Handle(h.Ticketing.Handler, h.Ticketing.Create, http.StatusCreated))
	ticketing.POST("/tickets/:id/comments", handler.Handle(h.Ticketing.Handler, h.Ticketing.Comment, http.StatusCreated))
	ticketing.PUT("/tickets/:id/status", handler.Handle(h.Ticketing.Handler, h.Ticketing.UpdateStatus, http.StatusOK))
	ticketing.DELETE("/tickets/:id",
		handler.HandleNoContent(h.Ticketing.Handler, h.Ticketing.Delete, http.StatusNoContent),
		mw.Auth.RequireRoles(token.RoleAdmin, token.RoleManager))

	// Attachment uploads carry their own, much tighter budget. They get a
	// dedicated group so the limiter runs ahead of authentication; route
	// level middleware would run after the group's RequireAuth, letting
	// over-quota requests burn token checks.
	uploads := api.Group("/ticketing/tickets/:id/attachments",
		mw.RateLimit.Upload(), mw.Auth.RequireAuth, middleware.Sanitize())
	uploads.POST("", handler.Handle(h.Upload.Handler, h.Upload.Attach, http.StatusCreated))
}

func registerMasterDataRoutes(api *echo.Group, mw *middleware.Middlewares, h *handler.Handlers) {
	masterData := api.Group("/master-data", mw.Auth.RequireAuth, middleware.Sanitize())
	mutate := mw.Auth.RequireRoles(token.RoleAdmin, token.RoleManager)

	masterData.GET("", handler.Handle(h.MasterData.Handler, h.MasterData.List, http.StatusOK))
	masterData.GET("/:id", handler.Handle(h.MasterData.Handler, h.MasterData.Get, http.StatusOK))
	masterData.POST("", handler.Handle(h.MasterData.Handler, h.MasterData.Create, http.StatusCreated), mutate)
	masterData.PUT("/:id", handler.Handle(h.MasterData.Handler, h.MasterData.Update, http.StatusOK), mutate)
	masterData.DELETE("/:id", handler.HandleNoContent(h.MasterData.Handler, h.MasterData.Delete, http.StatusNoContent), mutate)
}

func registerDashboardRoutes(api *echo.Group, mw *middleware.Middlewares, h *handler.Handlers) {
	dashboard := api.Group("/dashboard", mw.RateLimit.Dashboard(), mw.Auth.RequireAuth)

	dashboard.GET("", handler.Handle(h.Dashboard.Handler, h.Dashboard.Summary, http.StatusOK))
	dashboard.GET("/metrics", handler.Handle(h.Dashboard.Handler, h.Dashboard.Metrics, http.StatusOK))
}

func registerReportingRoutes(api *echo.Group, mw *middleware.Middlewares, h *handler.Handlers) {
	reporting := api.Group("/reporting", mw.RateLimit.Dashboard(), mw.Auth.RequireAuth, middleware.Sanitize())

	reporting.GET("/reports", handler.Handle(h.Reporting.Handler, h.Reporting.List, http.StatusOK))
	reporting.GET("/reports/:id", handler.Handle(h.Reporting.Handler, h.Reporting.Get, http.StatusOK))
	reporting.GET("/reports/:id/export", handler.Handle(h.Reporting.Handler, h.Reporting.Export, http.StatusOK))
	reporting.POST("/reports/generate", handler.Handle(h.Reporting.Handler, h.Reporting.Generate, http.StatusOK))
	reporting.GET("/report-types", handler.Handle(h.Reporting.Handler, h.Reporting.Types, http.StatusOK))
}

func registerLogRoutes(api *echo.Group, mw *middleware.Middlewares, h *handler.Handlers) {
	logs := api.Group("/log-management",
		mw.Auth.RequireAuth,
		mw.Auth.RequireRoles(token.RoleAdmin, token.RoleManager))

	logs.GET("/logs", handler.Handle(h.Logs.Handler, h.Logs.List, http.StatusOK))
	logs.GET("/logs/stats", handler.Handle(h.Logs.Handler, h.Logs.Stats, http.StatusOK))
	logs.GET("/logs/:id", handler.Handle(h.Logs.Handler, h.Logs.Get, http.StatusOK))
	logs.POST("/logs/export", handler.Handle(h.Logs.Handler, h.Logs.Export, http.StatusOK))
	logs.GET("/log-levels", handler.Handle(h.Logs.Handler, h.Logs.Levels, http.StatusOK))
	logs.GET("/log-sources", handler.Handle(h.Logs.Handler, h.Logs.Sources, http.StatusOK))
}
