package handler

import (
	"time"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/middleware"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler serves ticket attachment uploads. Files travel as multipart
// form data under the "file" field; the global body limit caps their size.
type UploadHandler struct {
	Handler
	ticketing *service.TicketingService
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(s *server.Server, ticketing *service.TicketingService) *UploadHandler {
	return &UploadHandler{
		Handler:   NewHandler(s),
		ticketing: ticketing,
	}
}

// Attachment describes a stored upload.
type Attachment struct {
	ID         string    `json:"id"`
	TicketID   int64     `json:"ticketId"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Attach adds a file to an existing ticket. The ticket must exist; a missing
// "file" form field is a 400.
func (h *UploadHandler) Attach(c echo.Context, req *UploadAttachmentRequest) (Response, error) {
	ticket, err := h.ticketing.Get(c.Request().Context(), req.ID)
	if err != nil {
		return Response{}, err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return Response{}, errs.NewBadRequestError("File is required", nil)
	}

	uploadedBy := ""
	if identity := middleware.GetIdentity(c); identity != nil {
		uploadedBy = identity.Email
	}

	attachment := Attachment{
		ID:         uuid.New().String(),
		TicketID:   ticket.ID,
		Filename:   file.Filename,
		Size:       file.Size,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC(),
	}

	middleware.GetLogger(c).Info().
		Str("ticket", ticket.Reference).
		Str("filename", attachment.Filename).
		Int64("size", attachment.Size).
		Msg("attachment uploaded")

	return OK(attachment, "Attachment uploaded successfully"), nil
}
