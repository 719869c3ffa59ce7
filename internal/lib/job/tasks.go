package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskTicketNotification notifies a ticket assignee by email.
	TaskTicketNotification = "ticket:notify"

	// TaskReportExport builds a report export in the background.
	TaskReportExport = "report:export"
)

// TicketNotificationPayload is the JSON payload for the ticket notification
// task.
type TicketNotificationPayload struct {
	To       string `json:"to"`
	TicketID string `json:"ticket_id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

// NewTicketNotificationTask constructs the notification task. Critical
// tickets route to the critical queue so their notifications go out first.
func NewTicketNotificationTask(to, ticketID, title, priority string) (*asynq.Task, error) {
	payload, err := json.Marshal(TicketNotificationPayload{
		To:       to,
		TicketID: ticketID,
		Title:    title,
		Priority: priority,
	})
	if err != nil {
		return nil, err
	}

	queue := "default"
	if priority == "critical" {
		queue = "critical"
	}

	return asynq.NewTask(
		TaskTicketNotification,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(queue),
		asynq.Timeout(30*time.Second),
	), nil
}

// ReportExportPayload is the JSON payload for the report export task.
type ReportExportPayload struct {
	ReportID    string `json:"report_id"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	RequestedBy string `json:"requested_by"`
}

// NewReportExportTask constructs a report export task. Exports are not
// latency-sensitive, so they run on the low-priority queue.
func NewReportExportTask(p ReportExportPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReportExport,
		payload,
		asynq.MaxRetry(2),
		asynq.Queue("low"),
		asynq.Timeout(5*time.Minute),
	), nil
}
