package handler

import (
	"github.com/deppfellow/portal-platform/internal/validation"
)

// Request payloads with their validation rule sets. Each type carries its
// constraints as validator tags and implements validation.Validatable so the
// generic handler pipeline can bind and validate it. All violated fields are
// reported together, not just the first.

// EmptyRequest is for endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error { return validation.Struct(r) }

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager user"`
}

func (r *RegisterRequest) Validate() error { return validation.Struct(r) }

// CreateTicketRequest opens a support ticket.
type CreateTicketRequest struct {
	Title       string   `json:"title" validate:"required,min=5"`
	Description string   `json:"description" validate:"required,min=10"`
	Priority    string   `json:"priority" validate:"required,oneof=low medium high critical"`
	Category    string   `json:"category" validate:"required"`
	Assignee    *string  `json:"assignee" validate:"omitempty,email"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	DueDate     string   `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateTicketRequest) Validate() error { return validation.Struct(r) }

// ListTicketsRequest filters and paginates the ticket list.
type ListTicketsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority string `query:"priority" validate:"omitempty,oneof=low medium high critical"`
	Category string `query:"category"`
	Assignee string `query:"assignee" validate:"omitempty,email"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (r *ListTicketsRequest) Validate() error { return validation.Struct(r) }

// TicketIDRequest addresses a single ticket by path parameter.
type TicketIDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *TicketIDRequest) Validate() error { return validation.Struct(r) }

// UpdateTicketStatusRequest transitions a ticket.
type UpdateTicketStatusRequest struct {
	ID     int64  `param:"id" validate:"required,min=1"`
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

func (r *UpdateTicketStatusRequest) Validate() error { return validation.Struct(r) }

// AddCommentRequest appends a comment to a ticket.
type AddCommentRequest struct {
	ID      int64  `param:"id" validate:"required,min=1"`
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (r *AddCommentRequest) Validate() error { return validation.Struct(r) }

// MasterDataRequest creates or replaces a reference-data entry.
type MasterDataRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Type        string `json:"type" validate:"required,oneof=category status priority department"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (r *MasterDataRequest) Validate() error { return validation.Struct(r) }

// UpdateMasterDataRequest replaces an existing entry.
type UpdateMasterDataRequest struct {
	ID          int64  `param:"id" validate:"required,min=1"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Type        string `json:"type" validate:"required,oneof=category status priority department"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (r *UpdateMasterDataRequest) Validate() error { return validation.Struct(r) }

// MasterDataIDRequest addresses one reference-data entry.
type MasterDataIDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *MasterDataIDRequest) Validate() error { return validation.Struct(r) }

// ListMasterDataRequest optionally filters entries by type.
type ListMasterDataRequest struct {
	Type string `query:"type" validate:"omitempty,oneof=category status priority department"`
}

func (r *ListMasterDataRequest) Validate() error { return validation.Struct(r) }

// GenerateReportRequest starts an asynchronous report export.
type GenerateReportRequest struct {
	ReportType string `json:"reportType" validate:"required,oneof=user_activity system_performance ticket_summary"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Format     string `json:"format" validate:"omitempty,oneof=PDF Excel CSV"`
}

func (r *GenerateReportRequest) Validate() error { return validation.Struct(r) }

// ReportIDRequest addresses one report.
type ReportIDRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

func (r *ReportIDRequest) Validate() error { return validation.Struct(r) }

// ExportReportRequest downloads a report in the requested format.
type ExportReportRequest struct {
	ID     int    `param:"id" validate:"required,min=1"`
	Format string `query:"format" validate:"omitempty,oneof=pdf excel csv"`
}

func (r *ExportReportRequest) Validate() error { return validation.Struct(r) }

// ListLogsRequest filters, paginates and sorts application log entries.
type ListLogsRequest struct {
	Level   string `query:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	Service string `query:"service"`
	Page    int    `query:"page" validate:"omitempty,min=1"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Sort    string `query:"sort" validate:"omitempty,oneof=asc desc"`
}

func (r *ListLogsRequest) Validate() error { return validation.Struct(r) }

// LogIDRequest addresses one log entry.
type LogIDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *LogIDRequest) Validate() error { return validation.Struct(r) }

// LogStatsRequest selects the aggregation window for log statistics.
type LogStatsRequest struct {
	Period string `query:"period" validate:"omitempty,oneof=1h 24h 7d 30d"`
}

func (r *LogStatsRequest) Validate() error { return validation.Struct(r) }

// ExportLogsRequest starts an asynchronous log export.
type ExportLogsRequest struct {
	Format    string `json:"format" validate:"omitempty,oneof=csv json"`
	Level     string `json:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	Service   string `json:"service"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r *ExportLogsRequest) Validate() error { return validation.Struct(r) }

// UploadAttachmentRequest addresses the ticket an attachment is added to.
// The file itself travels as multipart form data and is read off the echo
// context by the handler.
type UploadAttachmentRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *UploadAttachmentRequest) Validate() error { return validation.Struct(r) }
