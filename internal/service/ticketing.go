package service

import (
	"context"
	"time"

	"github.com/deppfellow/portal-platform/internal/lib/job"
	"github.com/deppfellow/portal-platform/internal/repository"
	"github.com/deppfellow/portal-platform/internal/server"
)

// TicketingService holds the ticket workflows.
type TicketingService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewTicketingService constructs a TicketingService.
func NewTicketingService(s *server.Server, repos *repository.Repositories) *TicketingService {
	return &TicketingService{
		server: s,
		repos:  repos,
	}
}

// CreateTicketInput carries the validated fields for ticket creation.
type CreateTicketInput struct {
	Title       string
	Description string
	Priority    string
	Category    string
	Reporter    string
	Assignee    *string
	Tags        []string
	DueDate     *time.Time
}

// Create persists the ticket and, when it has an assignee, enqueues a
// notification email. A failed enqueue does not fail the creation; the
// ticket is already stored and the notification is best-effort.
func (s *TicketingService) Create(ctx context.Context, input CreateTicketInput) (*repository.Ticket, error) {
	ticket, err := s.repos.Tickets.Create(ctx,
		input.Title, input.Description, input.Priority, input.Category,
		input.Reporter, input.Assignee, input.Tags, input.DueDate)
	if err != nil {
		return nil, err
	}

	if ticket.Assignee != nil {
		task, err := job.NewTicketNotificationTask(*ticket.Assignee, ticket.Reference, ticket.Title, ticket.Priority)
		if err == nil {
			_, err = s.server.Job.Client.EnqueueContext(ctx, task)
		}
		if err != nil {
			s.server.Logger.Error().
				Err(err).
				Str("ticket", ticket.Reference).
				Msg("failed to enqueue ticket notification")
		}
	}

	return ticket, nil
}

// List returns tickets matching the filter plus the total count.
func (s *TicketingService) List(ctx context.Context, filter repository.TicketFilter) ([]*repository.Ticket, int, error) {
	return s.repos.Tickets.List(ctx, filter)
}

// Get returns one ticket.
func (s *TicketingService) Get(ctx context.Context, id int64) (*repository.Ticket, error) {
	return s.repos.Tickets.GetByID(ctx, id)
}

// UpdateStatus transitions a ticket.
func (s *TicketingService) UpdateStatus(ctx context.Context, id int64, status string) (*repository.Ticket, error) {
	return s.repos.Tickets.UpdateStatus(ctx, id, status)
}

// Delete removes a ticket.
func (s *TicketingService) Delete(ctx context.Context, id int64) error {
	return s.repos.Tickets.Delete(ctx, id)
}

// AddComment records a comment on a ticket under the given author.
func (s *TicketingService) AddComment(ctx context.Context, ticketID int64, author, content string) (*repository.TicketComment, error) {
	return s.repos.Tickets.AddComment(ctx, ticketID, author, content)
}

// Stats returns aggregate ticket counts.
func (s *TicketingService) Stats(ctx context.Context) (*repository.TicketStats, error) {
	return s.repos.Tickets.Stats(ctx)
}
