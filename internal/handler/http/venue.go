package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/response"
)

type VenueHandler interface {
	GetMyVenue(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type VenueHandlerImpl struct {
	venueService venue.VenueService
}

// GetMyVenue implements VenueHandler.
func (v *VenueHandlerImpl) GetMyVenue(w http.ResponseWriter, r *http.Request) {
	venueResponse, err := v.venueService.GetMyVenue(r.Context())
	if err != nil {
		slog.Error("GetMyVenue service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, venueResponse)
}

// Update implements VenueHandler.
func (v *VenueHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req venue.UpdateVenueRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateVenue decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	venueResponse, err := v.venueService.UpdateVenue(r.Context(), req)
	if err != nil {
		slog.Error("UpdateVenue service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Venue updated successfully", venueResponse)
}

func NewVenueHandler(venueService venue.VenueService) VenueHandler {
	return &VenueHandlerImpl{venueService: venueService}
}
