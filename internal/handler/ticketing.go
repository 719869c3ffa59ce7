package handler

import (
	"time"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/middleware"
	"github.com/deppfellow/portal-platform/internal/repository"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
	"github.com/labstack/echo/v4"
)

// TicketingHandler serves the ticket CRUD endpoints.
type TicketingHandler struct {
	Handler
	ticketing *service.TicketingService
}

// NewTicketingHandler constructs a TicketingHandler.
func NewTicketingHandler(s *server.Server, ticketing *service.TicketingService) *TicketingHandler {
	return &TicketingHandler{
		Handler:   NewHandler(s),
		ticketing: ticketing,
	}
}

// Create opens a ticket. The reporter is the authenticated caller.
func (h *TicketingHandler) Create(c echo.Context, req *CreateTicketRequest) (Response, error) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return Response{}, errs.NewUnauthorizedError("Authentication required")
	}

	input := service.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Reporter:    identity.Email,
		Assignee:    req.Assignee,
		Tags:        req.Tags,
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err == nil {
			input.DueDate = &due
		}
	}

	ticket, err := h.ticketing.Create(c.Request().Context(), input)
	if err != nil {
		return Response{}, err
	}
	return OK(ticket, "Ticket created successfully"), nil
}

// List returns tickets matching the filter, paginated.
func (h *TicketingHandler) List(c echo.Context, req *ListTicketsRequest) (Response, error) {
	filter := repository.TicketFilter{
		Status:   req.Status,
		Priority: req.Priority,
		Category: req.Category,
		Assignee: req.Assignee,
		Page:     req.Page,
		Limit:    req.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	tickets, total, err := h.ticketing.List(c.Request().Context(), filter)
	if err != nil {
		return Response{}, err
	}

	return OK(Paginated{
		Items: tickets,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, "Tickets retrieved successfully"), nil
}

// Get returns one ticket.
func (h *TicketingHandler) Get(c echo.Context, req *TicketIDRequest) (Response, error) {
	ticket, err := h.ticketing.Get(c.Request().Context(), req.ID)
	if err != nil {
		return Response{}, err
	}
	return OK(ticket, "Ticket retrieved successfully"), nil
}

// UpdateStatus transitions a ticket.
func (h *TicketingHandler) UpdateStatus(c echo.Context, req *UpdateTicketStatusRequest) (Response, error) {
	ticket, err := h.ticketing.UpdateStatus(c.Request().Context(), req.ID, req.Status)
	if err != nil {
		return Response{}, err
	}
	return OK(ticket, "Ticket status updated successfully"), nil
}

// Comment appends a comment to a ticket, attributed to the caller.
func (h *TicketingHandler) Comment(c echo.Context, req *AddCommentRequest) (Response, error) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return Response{}, errs.NewUnauthorizedError("Authentication required")
	}

	comment, err := h.ticketing.AddComment(c.Request().Context(), req.ID, identity.Email, req.Content)
	if err != nil {
		return Response{}, err
	}
	return OK(comment, "Comment added successfully"), nil
}

// Stats returns aggregate ticket counts.
func (h *TicketingHandler) Stats(c echo.Context, req *EmptyRequest) (Response, error) {
	stats, err := h.ticketing.Stats(c.Request().Context())
	if err != nil {
		return Response{}, err
	}
	return OK(stats, "Ticket statistics retrieved successfully"), nil
}

// Delete removes a ticket.
func (h *TicketingHandler) Delete(c echo.Context, req *TicketIDRequest) error {
	return h.ticketing.Delete(c.Request().Context(), req.ID)
}
