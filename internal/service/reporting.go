package service

import (
	"context"

	"github.com/deppfellow/portal-platform/internal/lib/job"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/google/uuid"
)

// ReportingService dispatches report generation to the background worker.
type ReportingService struct {
	server *server.Server
}

// NewReportingService constructs a ReportingService.
func NewReportingService(s *server.Server) *ReportingService {
	return &ReportingService{server: s}
}

// GenerateReport enqueues an export task and returns its report id so the
// client can poll for the result. Generation itself never blocks the
// request path.
func (s *ReportingService) GenerateReport(ctx context.Context, reportType, startDate, endDate, requestedBy string) (string, error) {
	reportID := uuid.New().String()

	task, err := job.NewReportExportTask(job.ReportExportPayload{
		ReportID:    reportID,
		Type:        reportType,
		StartDate:   startDate,
		EndDate:     endDate,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return "", err
	}

	if _, err := s.server.Job.Client.EnqueueContext(ctx, task); err != nil {
		return "", err
	}

	s.server.Logger.Info().
		Str("report_id", reportID).
		Str("report_type", reportType).
		Str("requested_by", requestedBy).
		Msg("report export enqueued")

	return reportID, nil
}
