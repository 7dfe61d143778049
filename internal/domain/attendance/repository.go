package attendance

import "context"

// AttendanceRepository defines data access methods for attendance records.
// All methods include venueID to prevent cross-venue data access.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID with venue isolation
	GetByID(ctx context.Context, id string, venueID string) (Attendance, error)

	// GetOpenShift retrieves the staff member's open shift, if any
	GetOpenShift(ctx context.Context, staffID string, venueID string) (Attendance, error)

	// HasEntryForDate reports whether the staff member already has an
	// attendance record for the given business date
	HasEntryForDate(ctx context.Context, staffID string, workDate string, venueID string) (bool, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, venueID string) ([]Attendance, int64, error)

	// ListByStaffAndRange retrieves all records for one staff member in a
	// business-date window, newest first (payroll input)
	ListByStaffAndRange(ctx context.Context, staffID, dateFrom, dateTo, venueID string) ([]Attendance, error)
}
