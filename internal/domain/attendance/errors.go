package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn   = errors.New("already clocked in for this business day")
	ErrNotClockedIn       = errors.New("no open shift to clock out of")
	ErrAlreadyClockedOut  = errors.New("shift already clocked out")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
