package handler

import (
	"time"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LogsHandler serves the log-management module.
type LogsHandler struct {
	Handler
	logs *service.LogService
}

// NewLogsHandler constructs a LogsHandler.
func NewLogsHandler(s *server.Server, logs *service.LogService) *LogsHandler {
	return &LogsHandler{
		Handler: NewHandler(s),
		logs:    logs,
	}
}

// List returns log entries matching the level/service filters, paginated and
// sorted by timestamp.
func (h *LogsHandler) List(c echo.Context, req *ListLogsRequest) (Response, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}

	entries, total := h.logs.List(service.LogFilter{
		Level:   req.Level,
		Service: req.Service,
		Page:    page,
		Limit:   limit,
		Sort:    req.Sort,
	})

	return OK(Paginated{
		Items: entries,
		Total: total,
		Page:  page,
		Limit: limit,
	}, "Logs retrieved successfully"), nil
}

// Get returns one log entry.
func (h *LogsHandler) Get(c echo.Context, req *LogIDRequest) (Response, error) {
	entry, ok := h.logs.Get(req.ID)
	if !ok {
		return Response{}, errs.NewNotFoundError("Log entry not found")
	}
	return OK(entry, "Log details retrieved successfully"), nil
}

// logPeriods maps the stats period parameter onto lookback durations.
var logPeriods = map[string]time.Duration{
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// Stats aggregates log counts over the requested period (24h by default).
func (h *LogsHandler) Stats(c echo.Context, req *LogStatsRequest) (Response, error) {
	period := req.Period
	if period == "" {
		period = "24h"
	}

	cutoff := time.Now().UTC().Add(-logPeriods[period])
	stats := h.logs.Stats(period, cutoff)
	return OK(stats, "Log statistics retrieved successfully"), nil
}

// LogExport describes an accepted export job.
type LogExport struct {
	ExportID            string    `json:"exportId"`
	Format              string    `json:"format"`
	Status              string    `json:"status"`
	EstimatedCompletion time.Time `json:"estimatedCompletion"`
}

// Export accepts a log export request and hands back an id for polling.
func (h *LogsHandler) Export(c echo.Context, req *ExportLogsRequest) (Response, error) {
	format := req.Format
	if format == "" {
		format = "csv"
	}

	export := LogExport{
		ExportID:            "export_" + uuid.NewString(),
		Format:              format,
		Status:              "processing",
		EstimatedCompletion: time.Now().UTC().Add(time.Minute),
	}
	return OK(export, "Log export started successfully"), nil
}

// LogLevel describes one selectable severity in the log filter UI.
type LogLevel struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Levels lists the severities log entries carry.
func (h *LogsHandler) Levels(c echo.Context, req *EmptyRequest) (Response, error) {
	levels := []LogLevel{
		{Value: "DEBUG", Label: "Debug", Color: "#6c757d"},
		{Value: "INFO", Label: "Info", Color: "#17a2b8"},
		{Value: "WARN", Label: "Warning", Color: "#ffc107"},
		{Value: "ERROR", Label: "Error", Color: "#dc3545"},
	}
	return OK(levels, "Log levels retrieved successfully"), nil
}

// LogSource describes one service that emits log entries.
type LogSource struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Sources lists the services log entries can originate from.
func (h *LogsHandler) Sources(c echo.Context, req *EmptyRequest) (Response, error) {
	sources := []LogSource{
		{Value: "auth-service", Label: "Authentication"},
		{Value: "ticketing-service", Label: "Ticketing"},
		{Value: "reporting-service", Label: "Reporting"},
		{Value: "database", Label: "Database"},
		{Value: "api", Label: "API"},
	}
	return OK(sources, "Log sources retrieved successfully"), nil
}
