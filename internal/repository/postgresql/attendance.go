package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, staff_id, venue_id, work_date, clock_in, clock_out)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.StaffID, a.VenueID, a.WorkDate, a.ClockIn, a.ClockOut,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string, venueID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.staff_id, a.venue_id, a.work_date, a.clock_in, a.clock_out,
		       a.created_at, a.updated_at, s.display_name
		FROM attendances a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.id = $1 AND a.venue_id = $2
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, id, venueID).Scan(
		&a.ID, &a.StaffID, &a.VenueID, &a.WorkDate, &a.ClockIn, &a.ClockOut,
		&a.CreatedAt, &a.UpdatedAt, &a.StaffName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// GetOpenShift implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenShift(ctx context.Context, staffID string, venueID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, staff_id, venue_id, work_date, clock_in, clock_out, created_at, updated_at
		FROM attendances
		WHERE staff_id = $1 AND venue_id = $2
		  AND clock_in IS NOT NULL AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, staffID, venueID).Scan(
		&a.ID, &a.StaffID, &a.VenueID, &a.WorkDate, &a.ClockIn, &a.ClockOut,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open shift: %w", err)
	}
	return a, nil
}

// HasEntryForDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) HasEntryForDate(ctx context.Context, staffID string, workDate string, venueID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendances WHERE staff_id = $1 AND work_date = $2 AND venue_id = $3)`,
		staffID, workDate, venueID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance entry: %w", err)
	}
	return exists, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_in = $3, clock_out = $4, updated_at = now()
		WHERE id = $1 AND venue_id = $2
	`

	tag, err := q.Exec(ctx, query, a.ID, a.VenueID, a.ClockIn, a.ClockOut)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, venueID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE a.venue_id = $1`
	args := []interface{}{venueID}

	if filter.StaffID != "" {
		args = append(args, filter.StaffID)
		where += fmt.Sprintf(` AND a.staff_id = $%d`, len(args))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		where += fmt.Sprintf(` AND a.work_date >= $%d`, len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		where += fmt.Sprintf(` AND a.work_date <= $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT count(*) FROM attendances a ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT a.id, a.staff_id, a.venue_id, a.work_date, a.clock_in, a.clock_out,
		       a.created_at, a.updated_at, s.display_name
		FROM attendances a
		JOIN staff s ON s.id = a.staff_id
		` + where + fmt.Sprintf(`
		ORDER BY a.work_date DESC, a.clock_in DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.StaffID, &a.VenueID, &a.WorkDate, &a.ClockIn, &a.ClockOut,
			&a.CreatedAt, &a.UpdatedAt, &a.StaffName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, total, rows.Err()
}

// ListByStaffAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByStaffAndRange(ctx context.Context, staffID, dateFrom, dateTo, venueID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, staff_id, venue_id, work_date, clock_in, clock_out, created_at, updated_at
		FROM attendances
		WHERE staff_id = $1 AND venue_id = $2
		  AND work_date >= $3 AND work_date <= $4
		ORDER BY work_date DESC
	`

	rows, err := q.Query(ctx, query, staffID, venueID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.StaffID, &a.VenueID, &a.WorkDate, &a.ClockIn, &a.ClockOut,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
