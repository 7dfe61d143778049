package venue

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type VenueServiceImpl struct {
	db        *database.DB
	venueRepo venue.VenueRepository
}

func NewVenueService(db *database.DB, venueRepo venue.VenueRepository) venue.VenueService {
	return &VenueServiceImpl{
		db:        db,
		venueRepo: venueRepo,
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

func toVenueResponse(v venue.Venue) venue.VenueResponse {
	return venue.VenueResponse{
		ID:              v.ID,
		Name:            v.Name,
		Timezone:        v.Timezone,
		DaySwitchHour:   v.DaySwitchHour,
		DaySwitchMinute: v.DaySwitchMinute,
		TableCount:      v.TableCount,
	}
}

// GetMyVenue implements venue.VenueService.
func (s *VenueServiceImpl) GetMyVenue(ctx context.Context) (venue.VenueResponse, error) {
	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return venue.VenueResponse{}, err
	}

	v, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return venue.VenueResponse{}, err
	}

	return toVenueResponse(v), nil
}

// UpdateVenue implements venue.VenueService.
func (s *VenueServiceImpl) UpdateVenue(ctx context.Context, req venue.UpdateVenueRequest) (venue.VenueResponse, error) {
	if err := req.Validate(); err != nil {
		return venue.VenueResponse{}, err
	}

	venueID, err := getClaimsFromContext(ctx)
	if err != nil {
		return venue.VenueResponse{}, err
	}

	v, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return venue.VenueResponse{}, err
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Timezone != nil {
		v.Timezone = *req.Timezone
	}
	if req.DaySwitchHour != nil {
		v.DaySwitchHour = *req.DaySwitchHour
	}
	if req.DaySwitchMinute != nil {
		v.DaySwitchMinute = *req.DaySwitchMinute
	}
	if req.TableCount != nil {
		v.TableCount = *req.TableCount
	}

	updated, err := s.venueRepo.Update(ctx, v)
	if err != nil {
		return venue.VenueResponse{}, fmt.Errorf("failed to update venue: %w", err)
	}

	return toVenueResponse(updated), nil
}
