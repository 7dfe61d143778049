package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/staff"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type StaffServiceImpl struct {
	db        *database.DB
	staffRepo staff.StaffRepository
	subSvc    subscription.SubscriptionService
}

func NewStaffService(db *database.DB, staffRepo staff.StaffRepository, subSvc subscription.SubscriptionService) staff.StaffService {
	return &StaffServiceImpl{
		db:        db,
		staffRepo: staffRepo,
		subSvc:    subSvc,
	}
}

func getClaimsFromContext(ctx context.Context) (venueID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	venueID, ok := claims["venue_id"].(string)
	if !ok || venueID == "" {
		return "", fmt.Errorf("venue_id claim is missing or invalid")
	}

	return venueID, nil
}

func toStaffResponse(s staff.Staff) staff.StaffResponse {
	return staff.StaffResponse{
		ID:          s.ID,
		VenueID:     s.VenueID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		Role:        string(s.Role),
		HourlyRate:  s.HourlyRate,
		IsActive:    s.IsActive,
	}
}

// CreateStaff implements staff.StaffService.
func (s *StaffServiceImpl) CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	canAdd, err := s.subSvc.CanAddStaff(ctx, venueID)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to check seat limit: %w", err)
	}
	if !canAdd {
		return staff.StaffResponse{}, subscription.ErrSeatLimitExceeded
	}

	if _, err := s.staffRepo.GetByEmail(ctx, req.Email); err == nil {
		return staff.StaffResponse{}, staff.ErrEmailExists
	} else if !errors.Is(err, staff.ErrStaffNotFound) {
		return staff.StaffResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.staffRepo.Create(ctx, staff.Staff{
		ID:           uuid.NewString(),
		VenueID:      venueID,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Role:         staff.Role(req.Role),
		HourlyRate:   req.HourlyRate,
		IsActive:     true,
	})
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to create staff: %w", err)
	}

	return toStaffResponse(created), nil
}

// UpdateStaff implements staff.StaffService.
func (s *StaffServiceImpl) UpdateStaff(ctx context.Context, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.ID, venueID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	if req.DisplayName != nil {
		member.DisplayName = *req.DisplayName
	}
	if req.Role != nil {
		member.Role = staff.Role(*req.Role)
	}
	if req.HourlyRate != nil {
		member.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		// Reactivating a member takes a seat again.
		if *req.IsActive && !member.IsActive {
			canAdd, err := s.subSvc.CanAddStaff(ctx, venueID)
			if err != nil {
				return staff.StaffResponse{}, fmt.Errorf("failed to check seat limit: %w", err)
			}
			if !canAdd {
				return staff.StaffResponse{}, subscription.ErrSeatLimitExceeded
			}
		}
		member.IsActive = *req.IsActive
	}

	updated, err := s.staffRepo.Update(ctx, member)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to update staff: %w", err)
	}

	return toStaffResponse(updated), nil
}

// GetStaff implements staff.StaffService.
func (s *StaffServiceImpl) GetStaff(ctx context.Context, id string) (staff.StaffResponse, error) {
	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, id, venueID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	return toStaffResponse(member), nil
}

// ListStaff implements staff.StaffService.
func (s *StaffServiceImpl) ListStaff(ctx context.Context, activeOnly bool) ([]staff.StaffResponse, error) {
	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	members, err := s.staffRepo.ListByVenueID(ctx, venueID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	resp := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toStaffResponse(m))
	}
	return resp, nil
}
