package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) order.SessionRepository {
	return &sessionRepository{db: db}
}

const sessionColumns = `id, venue_id, table_number, guest_count, started_at, closed_at, created_at, updated_at`

func scanSession(row pgx.Row) (order.Session, error) {
	var s order.Session
	err := row.Scan(
		&s.ID, &s.VenueID, &s.TableNumber, &s.GuestCount,
		&s.StartedAt, &s.ClosedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements order.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, s order.Session) (order.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO table_sessions (id, venue_id, table_number, guest_count, started_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.VenueID, s.TableNumber, s.GuestCount, s.StartedAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return order.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// GetByID implements order.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string, venueID string) (order.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM table_sessions WHERE id = $1 AND venue_id = $2`

	s, err := scanSession(q.QueryRow(ctx, query, id, venueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Session{}, order.ErrSessionNotFound
		}
		return order.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// GetOpenByTable implements order.SessionRepository.
func (r *sessionRepository) GetOpenByTable(ctx context.Context, tableNumber string, venueID string) (*order.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM table_sessions
		WHERE table_number = $1 AND venue_id = $2 AND closed_at IS NULL
		LIMIT 1`

	s, err := scanSession(q.QueryRow(ctx, query, tableNumber, venueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return &s, nil
}

// Close implements order.SessionRepository.
func (r *sessionRepository) Close(ctx context.Context, id string, venueID string, closedAt time.Time) (order.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE table_sessions
		SET closed_at = $3, updated_at = now()
		WHERE id = $1 AND venue_id = $2 AND closed_at IS NULL
		RETURNING ` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query, id, venueID, closedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Session{}, order.ErrSessionAlreadyClosed
		}
		return order.Session{}, fmt.Errorf("failed to close session: %w", err)
	}
	return s, nil
}

// ListOpen implements order.SessionRepository.
func (r *sessionRepository) ListOpen(ctx context.Context, venueID string) ([]order.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM table_sessions
		WHERE venue_id = $1 AND closed_at IS NULL
		ORDER BY started_at`

	rows, err := q.Query(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []order.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
