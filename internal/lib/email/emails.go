package email

// SendTicketCreated notifies the assignee that a ticket was assigned to them.
func (c *Client) SendTicketCreated(to, ticketID, title, priority string) error {
	data := map[string]string{
		"TicketID": ticketID,
		"Title":    title,
		"Priority": priority,
	}

	return c.SendEmail(
		to,
		"A new ticket has been assigned to you",
		TemplateTicketCreated,
		data,
	)
}
