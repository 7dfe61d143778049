package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub009/internal/handler/http/response"
)

type PayrollHandler interface {
	GetMyReport(w http.ResponseWriter, r *http.Request)
	GetStaffReport(w http.ResponseWriter, r *http.Request)
	GetPlan(w http.ResponseWriter, r *http.Request)
	UpdatePlan(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

// GetMyReport implements PayrollHandler.
func (p *PayrollHandlerImpl) GetMyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	report, err := p.payrollService.GetMyReport(r.Context(), q.Get("date_from"), q.Get("date_to"))
	if err != nil {
		slog.Error("GetMyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// GetStaffReport implements PayrollHandler.
func (p *PayrollHandlerImpl) GetStaffReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := payroll.ReportFilter{
		StaffID:  chi.URLParam(r, "staffID"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
	}

	report, err := p.payrollService.GetStaffReport(r.Context(), filter)
	if err != nil {
		slog.Error("GetStaffReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// GetPlan implements PayrollHandler.
func (p *PayrollHandlerImpl) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := p.payrollService.GetPlan(r.Context())
	if err != nil {
		slog.Error("GetPlan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, plan)
}

// UpdatePlan implements PayrollHandler.
func (p *PayrollHandlerImpl) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePlanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePlan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	plan, err := p.payrollService.UpdatePlan(r.Context(), req)
	if err != nil {
		slog.Error("UpdatePlan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Compensation plan updated successfully", plan)
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}
