package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/staff"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/response"
)

type StaffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type StaffHandlerImpl struct {
	staffService staff.StaffService
}

// Create implements StaffHandler.
func (s *StaffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateStaffRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateStaff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	staffResponse, err := s.staffService.CreateStaff(r.Context(), req)
	if err != nil {
		slog.Error("CreateStaff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff created successfully", staffResponse)
}

// Update implements StaffHandler.
func (s *StaffHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req staff.UpdateStaffRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStaff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	staffResponse, err := s.staffService.UpdateStaff(r.Context(), req)
	if err != nil {
		slog.Error("UpdateStaff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff updated successfully", staffResponse)
}

// GetByID implements StaffHandler.
func (s *StaffHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	staffResponse, err := s.staffService.GetStaff(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, staffResponse)
}

// List implements StaffHandler.
func (s *StaffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	staffList, err := s.staffService.ListStaff(r.Context(), activeOnly)
	if err != nil {
		slog.Error("ListStaff service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, staffList)
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &StaffHandlerImpl{staffService: staffService}
}
