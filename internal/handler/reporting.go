package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/middleware"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
	"github.com/labstack/echo/v4"
)

// ReportingHandler serves the reporting module. Generation is asynchronous:
// the endpoint enqueues an export job and hands back the report id.
type ReportingHandler struct {
	Handler
	reporting *service.ReportingService
}

// NewReportingHandler constructs a ReportingHandler.
func NewReportingHandler(s *server.Server, reporting *service.ReportingService) *ReportingHandler {
	return &ReportingHandler{
		Handler:   NewHandler(s),
		reporting: reporting,
	}
}

// ReportSummary describes one available report.
type ReportSummary struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	Format      string    `json:"format"`
}

// reportCatalog returns the reports available for listing and export. The
// catalog is administrative mock data, like the dashboard metrics.
func reportCatalog() []ReportSummary {
	return []ReportSummary{
		{
			ID:          1,
			Name:        "User Activity Report",
			Type:        "user_activity",
			Description: "Weekly user activity summary",
			Status:      "completed",
			CreatedAt:   time.Now().UTC(),
			Format:      "PDF",
		},
		{
			ID:          2,
			Name:        "System Performance Report",
			Type:        "system_performance",
			Description: "Monthly system performance metrics",
			Status:      "pending",
			CreatedAt:   time.Now().UTC(),
			Format:      "Excel",
		},
	}
}

// List returns the report catalog.
func (h *ReportingHandler) List(c echo.Context, req *EmptyRequest) (Response, error) {
	return OK(reportCatalog(), "Reports retrieved successfully"), nil
}

// Get returns one report from the catalog.
func (h *ReportingHandler) Get(c echo.Context, req *ReportIDRequest) (Response, error) {
	for _, report := range reportCatalog() {
		if report.ID == req.ID {
			return OK(report, "Report retrieved successfully"), nil
		}
	}
	return Response{}, errs.NewNotFoundError("Report not found")
}

// ReportExport describes a finished export download.
type ReportExport struct {
	ReportID    int       `json:"reportId"`
	Format      string    `json:"format"`
	DownloadURL string    `json:"downloadUrl"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Export hands back a download descriptor for a report in the requested
// format (pdf by default).
func (h *ReportingHandler) Export(c echo.Context, req *ExportReportRequest) (Response, error) {
	found := false
	for _, report := range reportCatalog() {
		if report.ID == req.ID {
			found = true
			break
		}
	}
	if !found {
		return Response{}, errs.NewNotFoundError("Report not found")
	}

	format := req.Format
	if format == "" {
		format = "pdf"
	}

	export := ReportExport{
		ReportID:    req.ID,
		Format:      format,
		DownloadURL: fmt.Sprintf("/downloads/report_%d.%s", req.ID, format),
		GeneratedAt: time.Now().UTC(),
	}
	return OK(export, fmt.Sprintf("Report exported as %s successfully", strings.ToUpper(format))), nil
}

// ReportType describes one report kind that can be generated.
type ReportType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Types lists the report kinds accepted by Generate.
func (h *ReportingHandler) Types(c echo.Context, req *EmptyRequest) (Response, error) {
	types := []ReportType{
		{ID: "user_activity", Name: "User Activity Report", Description: "User activity tracking"},
		{ID: "system_performance", Name: "System Performance Report", Description: "System performance metrics"},
		{ID: "ticket_summary", Name: "Ticket Summary Report", Description: "Ticket volume and resolution summary"},
	}
	return OK(types, "Report types retrieved successfully"), nil
}

// GenerateResult is returned when an export is accepted.
type GenerateResult struct {
	ReportID string `json:"reportId"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Format   string `json:"format"`
}

// Generate enqueues a report export and returns its id for polling.
func (h *ReportingHandler) Generate(c echo.Context, req *GenerateReportRequest) (Response, error) {
	requestedBy := ""
	if identity := middleware.GetIdentity(c); identity != nil {
		requestedBy = identity.Email
	}

	reportID, err := h.reporting.GenerateReport(c.Request().Context(), req.ReportType, req.StartDate, req.EndDate, requestedBy)
	if err != nil {
		return Response{}, err
	}

	format := req.Format
	if format == "" {
		format = "PDF"
	}

	return OK(GenerateResult{
		ReportID: reportID,
		Type:     req.ReportType,
		Status:   "processing",
		Format:   format,
	}, "Report generation started"), nil
}
