package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/staff"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, venue_id, email, password_hash, display_name, role, hourly_rate, is_active, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID, &s.VenueID, &s.Email, &s.PasswordHash, &s.DisplayName,
		&s.Role, &s.HourlyRate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements staff.StaffRepository.
func (r *staffRepository) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff (id, venue_id, email, password_hash, display_name, role, hourly_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.VenueID, s.Email, s.PasswordHash, s.DisplayName, s.Role, s.HourlyRate, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return s, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepository) GetByID(ctx context.Context, id string, venueID string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 AND venue_id = $2`

	s, err := scanStaff(q.QueryRow(ctx, query, id, venueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return s, nil
}

// GetByEmail implements staff.StaffRepository.
func (r *staffRepository) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE email = $1`

	s, err := scanStaff(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff by email: %w", err)
	}
	return s, nil
}

// GetByIDAnyVenue implements staff.StaffRepository.
func (r *staffRepository) GetByIDAnyVenue(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	s, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return s, nil
}

// Update implements staff.StaffRepository.
func (r *staffRepository) Update(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET display_name = $3, role = $4, hourly_rate = $5, is_active = $6, updated_at = now()
		WHERE id = $1 AND venue_id = $2
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.VenueID, s.DisplayName, s.Role, s.HourlyRate, s.IsActive,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to update staff: %w", err)
	}
	return s, nil
}

// ListByVenueID implements staff.StaffRepository.
func (r *staffRepository) ListByVenueID(ctx context.Context, venueID string, activeOnly bool) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE venue_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY display_name`

	rows, err := q.Query(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []staff.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		members = append(members, s)
	}
	return members, rows.Err()
}

// CountActiveByVenueID implements staff.StaffRepository.
func (r *staffRepository) CountActiveByVenueID(ctx context.Context, venueID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT count(*) FROM staff WHERE venue_id = $1 AND is_active = true`, venueID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return count, nil
}
