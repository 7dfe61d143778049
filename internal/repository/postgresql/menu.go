package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type menuRepository struct {
	db *database.DB
}

func NewMenuRepository(db *database.DB) order.MenuRepository {
	return &menuRepository{db: db}
}

const menuColumns = `id, venue_id, name, category, price, default_payout, is_active, created_at, updated_at`

func scanMenuItem(row pgx.Row) (order.MenuItem, error) {
	var m order.MenuItem
	err := row.Scan(
		&m.ID, &m.VenueID, &m.Name, &m.Category, &m.Price,
		&m.DefaultPayout, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// Create implements order.MenuRepository.
func (r *menuRepository) Create(ctx context.Context, item order.MenuItem) (order.MenuItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO menu_items (id, venue_id, name, category, price, default_payout, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		item.ID, item.VenueID, item.Name, item.Category, item.Price, item.DefaultPayout, item.IsActive,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return order.MenuItem{}, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

// GetByID implements order.MenuRepository.
func (r *menuRepository) GetByID(ctx context.Context, id string, venueID string) (order.MenuItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1 AND venue_id = $2`

	m, err := scanMenuItem(q.QueryRow(ctx, query, id, venueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.MenuItem{}, order.ErrMenuItemNotFound
		}
		return order.MenuItem{}, fmt.Errorf("failed to get menu item: %w", err)
	}
	return m, nil
}

// Update implements order.MenuRepository.
func (r *menuRepository) Update(ctx context.Context, item order.MenuItem) (order.MenuItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE menu_items
		SET name = $3, category = $4, price = $5, default_payout = $6, is_active = $7, updated_at = now()
		WHERE id = $1 AND venue_id = $2
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		item.ID, item.VenueID, item.Name, item.Category, item.Price, item.DefaultPayout, item.IsActive,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.MenuItem{}, order.ErrMenuItemNotFound
		}
		return order.MenuItem{}, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

// ListByVenueID implements order.MenuRepository.
func (r *menuRepository) ListByVenueID(ctx context.Context, venueID string, activeOnly bool) ([]order.MenuItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE venue_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY category, name`

	rows, err := q.Query(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []order.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
