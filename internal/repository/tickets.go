package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/jackc/pgx/v5"
)

// Ticket is a support ticket in the ticketing module.
type Ticket struct {
	ID          int64      `json:"id"`
	Reference   string     `json:"reference"` // e.g. "TKT-001"
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	Assignee    *string    `json:"assignee"`
	Reporter    string     `json:"reporter"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

// TicketFilter narrows List results. Zero values mean "no filter".
type TicketFilter struct {
	Status   string
	Priority string
	Category string
	Assignee string
	Page     int
	Limit    int
}

// TicketsRepository persists tickets.
type TicketsRepository struct {
	server *server.Server
}

// NewTicketsRepository constructs a TicketsRepository.
func NewTicketsRepository(s *server.Server) *TicketsRepository {
	return &TicketsRepository{server: s}
}

const ticketColumns = `id, reference, title, description, status, priority, category,
	assignee, reporter, tags, due_date, created_at, updated_at, resolved_at`

func scanTicket(row interface{ Scan(dest ...any) error }) (*Ticket, error) {
	t := &Ticket{}
	err := row.Scan(
		&t.ID, &t.Reference, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Category, &t.Assignee, &t.Reporter, &t.Tags, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new ticket in status "open". The "TKT-xxx" reference is a
// generated column derived from the id, so it comes back in the RETURNING set.
func (r *TicketsRepository) Create(ctx context.Context, title, description, priority, category, reporter string, assignee *string, tags []string, dueDate *time.Time) (*Ticket, error) {
	query := fmt.Sprintf(`
		INSERT INTO tickets (title, description, status, priority, category,
			assignee, reporter, tags, due_date, created_at, updated_at)
		VALUES ($1, $2, 'open', $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s
	`, ticketColumns)

	if tags == nil {
		tags = []string{}
	}

	return scanTicket(r.server.DB.Pool.QueryRow(ctx, query,
		title, description, priority, category, assignee, reporter, tags, dueDate))
}

// List returns tickets matching the filter, newest first, plus the total
// count for pagination metadata.
func (r *TicketsRepository) List(ctx context.Context, filter TicketFilter) ([]*Ticket, int, error) {
	conditions := []string{}
	args := []any{}

	addFilter := func(column, value string) {
		if value != "" {
			args = append(args, value)
			conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	addFilter("status", filter.Status)
	addFilter("priority", filter.Priority)
	addFilter("category", filter.Category)
	addFilter("assignee", filter.Assignee)

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tickets %s", where)
	if err := r.server.DB.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT %s FROM tickets %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, ticketColumns, where, len(args)-1, len(args))

	rows, err := r.server.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets := []*Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// GetByID returns one ticket.
func (r *TicketsRepository) GetByID(ctx context.Context, id int64) (*Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM tickets WHERE id = $1", ticketColumns)
	return scanTicket(r.server.DB.Pool.QueryRow(ctx, query, id))
}

// UpdateStatus moves a ticket to the given status; resolved_at is stamped
// when the status becomes "resolved" and cleared otherwise.
func (r *TicketsRepository) UpdateStatus(ctx context.Context, id int64, status string) (*Ticket, error) {
	query := fmt.Sprintf(`
		UPDATE tickets
		SET status = $1,
			resolved_at = CASE WHEN $1 = 'resolved' THEN NOW() ELSE NULL END,
			updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, ticketColumns)

	return scanTicket(r.server.DB.Pool.QueryRow(ctx, query, status, id))
}

// TicketComment is one comment on a ticket.
type TicketComment struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticketId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddComment appends a comment to a ticket. A missing ticket surfaces as a
// foreign key violation, which the error funnel maps to a 400.
func (r *TicketsRepository) AddComment(ctx context.Context, ticketID int64, author, content string) (*TicketComment, error) {
	query := `
		INSERT INTO ticket_comments (ticket_id, author, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, ticket_id, author, content, created_at
	`

	comment := &TicketComment{}
	err := r.server.DB.Pool.QueryRow(ctx, query, ticketID, author, content).Scan(
		&comment.ID, &comment.TicketID, &comment.Author, &comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// TicketStats aggregates ticket counts for the statistics endpoint.
type TicketStats struct {
	TotalTickets      int            `json:"totalTickets"`
	OpenTickets       int            `json:"openTickets"`
	InProgressTickets int            `json:"inProgressTickets"`
	ResolvedTickets   int            `json:"resolvedTickets"`
	TicketsByPriority map[string]int `json:"ticketsByPriority"`
	TicketsByCategory map[string]int `json:"ticketsByCategory"`
	OverdueTickets    int            `json:"overdueTickets"`
}

// Stats computes ticket counts by status, priority and category. A ticket is
// overdue when its due date has passed and it is neither resolved nor closed.
func (r *TicketsRepository) Stats(ctx context.Context) (*TicketStats, error) {
	query := `
		SELECT status, priority, category,
			(due_date IS NOT NULL AND due_date < NOW()
				AND status NOT IN ('resolved', 'closed')) AS overdue
		FROM tickets
	`

	rows, err := r.server.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &TicketStats{
		TicketsByPriority: map[string]int{},
		TicketsByCategory: map[string]int{},
	}
	for rows.Next() {
		var status, priority, category string
		var overdue bool
		if err := rows.Scan(&status, &priority, &category, &overdue); err != nil {
			return nil, err
		}

		stats.TotalTickets++
		switch status {
		case "open":
			stats.OpenTickets++
		case "in_progress":
			stats.InProgressTickets++
		case "resolved":
			stats.ResolvedTickets++
		}
		stats.TicketsByPriority[priority]++
		stats.TicketsByCategory[category]++
		if overdue {
			stats.OverdueTickets++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Delete removes a ticket.
func (r *TicketsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.server.DB.Pool.Exec(ctx, "DELETE FROM tickets WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Surface the same sentinel reads use so the error funnel maps it
		// to a 404.
		return pgx.ErrNoRows
	}
	return nil
}
