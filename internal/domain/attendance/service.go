package attendance

import "context"

// AttendanceService defines business logic for timecard operations
type AttendanceService interface {
	// ClockIn opens a shift for the authenticated staff member
	ClockIn(ctx context.Context) (AttendanceResponse, error)

	// ClockOut closes the open shift
	ClockOut(ctx context.Context) (AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated staff member
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records with filters (manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance fixes a record's timestamps (manager)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
