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

type lineItemRepository struct {
	db *database.DB
}

func NewLineItemRepository(db *database.DB) order.LineItemRepository {
	return &lineItemRepository{db: db}
}

// Create implements order.LineItemRepository.
func (r *lineItemRepository) Create(ctx context.Context, item order.LineItem) (order.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO line_items (id, session_id, menu_item_id, name, unit_price, quantity, staff_id, ordered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		item.ID, item.SessionID, item.MenuItemID, item.Name,
		item.UnitPrice, item.Quantity, item.StaffID, item.OrderedAt,
	).Scan(&item.CreatedAt)
	if err != nil {
		return order.LineItem{}, fmt.Errorf("failed to create line item: %w", err)
	}
	return item, nil
}

const lineItemJoinColumns = `
	l.id, l.session_id, l.menu_item_id, l.name, l.unit_price, l.quantity,
	l.staff_id, l.ordered_at, l.created_at,
	m.name, m.category, m.default_payout, ts.started_at`

func scanLineItem(row pgx.Row) (order.LineItem, error) {
	var l order.LineItem
	err := row.Scan(
		&l.ID, &l.SessionID, &l.MenuItemID, &l.Name, &l.UnitPrice, &l.Quantity,
		&l.StaffID, &l.OrderedAt, &l.CreatedAt,
		&l.MenuName, &l.MenuCategory, &l.MenuPayout, &l.SessionStartedAt,
	)
	return l, err
}

// ListBySession implements order.LineItemRepository.
func (r *lineItemRepository) ListBySession(ctx context.Context, sessionID string, venueID string) ([]order.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineItemJoinColumns + `
		FROM line_items l
		JOIN table_sessions ts ON ts.id = l.session_id
		LEFT JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.session_id = $1 AND ts.venue_id = $2
		ORDER BY l.ordered_at
	`

	rows, err := q.Query(ctx, query, sessionID, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []order.LineItem
	for rows.Next() {
		l, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// ListByStaffAndRange implements order.LineItemRepository.
func (r *lineItemRepository) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time, venueID string) ([]order.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lineItemJoinColumns + `
		FROM line_items l
		JOIN table_sessions ts ON ts.id = l.session_id
		LEFT JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.staff_id = $1 AND ts.venue_id = $2
		  AND ts.started_at >= $3 AND ts.started_at < $4
		ORDER BY ts.started_at, l.ordered_at
	`

	rows, err := q.Query(ctx, query, staffID, venueID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items by range: %w", err)
	}
	defer rows.Close()

	var items []order.LineItem
	for rows.Next() {
		l, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Delete implements order.LineItemRepository.
func (r *lineItemRepository) Delete(ctx context.Context, id string, venueID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM line_items l
		USING table_sessions ts
		WHERE l.id = $1 AND ts.id = l.session_id AND ts.venue_id = $2
	`

	tag, err := q.Exec(ctx, query, id, venueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.ErrLineItemNotFound
		}
		return fmt.Errorf("failed to delete line item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrLineItemNotFound
	}
	return nil
}
