package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateTicketCreated corresponds to templates/emails/ticket_created.html
	TemplateTicketCreated Template = "ticket_created"
)
