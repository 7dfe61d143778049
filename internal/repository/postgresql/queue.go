package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/queue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type ticketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) queue.TicketRepository {
	return &ticketRepository{db: db}
}

const ticketColumns = `id, venue_id, business_date, number, party_size, status, issued_at, called_at, seated_at, created_at, updated_at`

func scanTicket(row pgx.Row) (queue.Ticket, error) {
	var t queue.Ticket
	err := row.Scan(
		&t.ID, &t.VenueID, &t.BusinessDate, &t.Number, &t.PartySize, &t.Status,
		&t.IssuedAt, &t.CalledAt, &t.SeatedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Issue implements queue.TicketRepository. An advisory lock scoped to
// the venue and business date serializes concurrent issues; without it
// two READ COMMITTED transactions can both read the same max(number).
func (r *ticketRepository) Issue(ctx context.Context, ticket queue.Ticket) (queue.Ticket, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`,
			ticket.VenueID, ticket.BusinessDate,
		); err != nil {
			return fmt.Errorf("failed to lock ticket counter: %w", err)
		}

		query := `
			INSERT INTO queue_tickets (id, venue_id, business_date, number, party_size, status, issued_at)
			SELECT $1, $2, $3, coalesce(max(number), 0) + 1, $4, $5, $6
			FROM queue_tickets
			WHERE venue_id = $2 AND business_date = $3
			RETURNING number, created_at, updated_at
		`
		return tx.QueryRow(ctx, query,
			ticket.ID, ticket.VenueID, ticket.BusinessDate,
			ticket.PartySize, ticket.Status, ticket.IssuedAt,
		).Scan(&ticket.Number, &ticket.CreatedAt, &ticket.UpdatedAt)
	})
	if err != nil {
		return queue.Ticket{}, fmt.Errorf("failed to issue ticket: %w", err)
	}
	return ticket, nil
}

// GetByID implements queue.TicketRepository.
func (r *ticketRepository) GetByID(ctx context.Context, id string, venueID string) (queue.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ticketColumns + ` FROM queue_tickets WHERE id = $1 AND venue_id = $2`

	t, err := scanTicket(q.QueryRow(ctx, query, id, venueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return queue.Ticket{}, queue.ErrTicketNotFound
		}
		return queue.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}
	return t, nil
}

// UpdateStatus implements queue.TicketRepository.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, venueID string, status queue.TicketStatus) (queue.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE queue_tickets
		SET status = $3,
		    called_at = CASE WHEN $3 = 'called' THEN now() ELSE called_at END,
		    seated_at = CASE WHEN $3 = 'seated' THEN now() ELSE seated_at END,
		    updated_at = now()
		WHERE id = $1 AND venue_id = $2
		RETURNING ` + ticketColumns

	t, err := scanTicket(q.QueryRow(ctx, query, id, venueID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return queue.Ticket{}, queue.ErrTicketNotFound
		}
		return queue.Ticket{}, fmt.Errorf("failed to update ticket status: %w", err)
	}
	return t, nil
}

// ListByDate implements queue.TicketRepository.
func (r *ticketRepository) ListByDate(ctx context.Context, venueID string, businessDate string, statuses []queue.TicketStatus) ([]queue.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ticketColumns + ` FROM queue_tickets
		WHERE venue_id = $1 AND business_date = $2`
	args := []interface{}{venueID, businessDate}

	if len(statuses) > 0 {
		strs := make([]string, 0, len(statuses))
		for _, s := range statuses {
			strs = append(strs, string(s))
		}
		args = append(args, strs)
		query += fmt.Sprintf(` AND status = ANY($%d)`, len(args))
	}
	query += ` ORDER BY number`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []queue.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// ExpireStale implements queue.TicketRepository.
func (r *ticketRepository) ExpireStale(ctx context.Context, venueID string, currentBusinessDate string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE queue_tickets
		SET status = 'expired', updated_at = now()
		WHERE venue_id = $1 AND business_date < $2
		  AND status IN ('waiting', 'called')
	`

	tag, err := q.Exec(ctx, query, venueID, currentBusinessDate)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale tickets: %w", err)
	}
	return tag.RowsAffected(), nil
}
