package queue

import "context"

// TicketRepository handles queue ticket data operations
type TicketRepository interface {
	// Issue inserts a ticket with the next number for the venue's
	// business date. Number assignment runs inside a transaction so two
	// concurrent issues never share a number.
	Issue(ctx context.Context, ticket Ticket) (Ticket, error)

	// GetByID retrieves a ticket with venue isolation
	GetByID(ctx context.Context, id string, venueID string) (Ticket, error)

	// UpdateStatus transitions a ticket's status
	UpdateStatus(ctx context.Context, id string, venueID string, status TicketStatus) (Ticket, error)

	// ListByDate retrieves tickets for a business date ordered by number
	ListByDate(ctx context.Context, venueID string, businessDate string, statuses []TicketStatus) ([]Ticket, error)

	// ExpireStale marks waiting/called tickets from past business dates
	// as expired. Returns the number of tickets expired.
	ExpireStale(ctx context.Context, venueID string, currentBusinessDate string) (int64, error)
}
