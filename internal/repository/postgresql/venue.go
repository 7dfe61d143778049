package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type venueRepository struct {
	db *database.DB
}

func NewVenueRepository(db *database.DB) venue.VenueRepository {
	return &venueRepository{db: db}
}

const venueColumns = `id, name, timezone, day_switch_hour, day_switch_minute, table_count, created_at, updated_at`

func scanVenue(row pgx.Row) (venue.Venue, error) {
	var v venue.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.Timezone, &v.DaySwitchHour, &v.DaySwitchMinute,
		&v.TableCount, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// GetByID implements venue.VenueRepository.
func (r *venueRepository) GetByID(ctx context.Context, id string) (venue.Venue, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

	v, err := scanVenue(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return venue.Venue{}, venue.ErrVenueNotFound
		}
		return venue.Venue{}, fmt.Errorf("failed to get venue: %w", err)
	}
	return v, nil
}

// Create implements venue.VenueRepository.
func (r *venueRepository) Create(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO venues (id, name, timezone, day_switch_hour, day_switch_minute, table_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		v.ID, v.Name, v.Timezone, v.DaySwitchHour, v.DaySwitchMinute, v.TableCount,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("failed to create venue: %w", err)
	}
	return v, nil
}

// Update implements venue.VenueRepository.
func (r *venueRepository) Update(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE venues
		SET name = $2, timezone = $3, day_switch_hour = $4, day_switch_minute = $5,
		    table_count = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		v.ID, v.Name, v.Timezone, v.DaySwitchHour, v.DaySwitchMinute, v.TableCount,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return venue.Venue{}, venue.ErrVenueNotFound
		}
		return venue.Venue{}, fmt.Errorf("failed to update venue: %w", err)
	}
	return v, nil
}

// List implements venue.VenueRepository.
func (r *venueRepository) List(ctx context.Context) ([]venue.Venue, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	defer rows.Close()

	var venues []venue.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
