package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db         *database.DB
	attendRepo attendance.AttendanceRepository
	venueRepo  venue.VenueRepository
}

func NewAttendanceService(db *database.DB, attendRepo attendance.AttendanceRepository, venueRepo venue.VenueRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:         db,
		attendRepo: attendRepo,
		venueRepo:  venueRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (venueID, staffID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	venueID, ok := claims["venue_id"].(string)
	if !ok || venueID == "" {
		return "", "", fmt.Errorf("venue_id claim is missing or invalid")
	}

	staffID, ok = claims["staff_id"].(string)
	if !ok || staffID == "" {
		return "", "", fmt.Errorf("staff_id claim is missing or invalid")
	}

	return venueID, staffID, nil
}

// businessDate resolves the venue's current business date. A shift
// clocked in at 01:00 belongs to the previous calendar day until the
// venue's switch time.
func (a *AttendanceServiceImpl) businessDate(ctx context.Context, venueID string, now time.Time) (string, error) {
	v, err := a.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return "", err
	}
	return v.DayConfig().Resolve(now), nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	venueID, staffID, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	workDate, err := a.businessDate(ctx, venueID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, err = a.attendRepo.GetOpenShift(ctx, staffID, venueID)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open shift: %w", err)
	}

	hasEntry, err := a.attendRepo.HasEntryForDate(ctx, staffID, workDate, venueID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing entry: %w", err)
	}
	if hasEntry {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	record, err := a.attendRepo.Create(ctx, attendance.Attendance{
		ID:       uuid.NewString(),
		StaffID:  staffID,
		VenueID:  venueID,
		WorkDate: workDate,
		ClockIn:  &now,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return attendance.NewAttendanceResponse(record), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	venueID, staffID, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.attendRepo.GetOpenShift(ctx, staffID, venueID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open shift: %w", err)
	}

	now := time.Now()
	record.ClockOut = &now
	if err := a.attendRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close shift: %w", err)
	}

	return attendance.NewAttendanceResponse(record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	venueID, staffID, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.StaffID = staffID
	return a.list(ctx, filter, venueID)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return a.list(ctx, filter, venueID)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter, venueID string) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.attendRepo.List(ctx, filter, venueID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.ListAttendanceResponse{
		Data:       make([]attendance.AttendanceResponse, 0, len(records)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, r := range records {
		resp.Data = append(resp.Data, attendance.NewAttendanceResponse(r))
	}
	return resp, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.attendRepo.GetByID(ctx, req.ID, venueID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ClockIn != nil {
		t, err := time.Parse(time.RFC3339, *req.ClockIn)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid clock_in: %w", err)
		}
		record.ClockIn = &t
	}
	if req.ClockOut != nil {
		t, err := time.Parse(time.RFC3339, *req.ClockOut)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid clock_out: %w", err)
		}
		record.ClockOut = &t
	}

	if err := a.attendRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(record), nil
}
