package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/attendance"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/staff"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/venue"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/businessday"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type PayrollServiceImpl struct {
	db           *database.DB
	planRepo     payroll.PlanRepository
	staffRepo    staff.StaffRepository
	venueRepo    venue.VenueRepository
	attendRepo   attendance.AttendanceRepository
	lineItemRepo order.LineItemRepository
}

func NewPayrollService(
	db *database.DB,
	planRepo payroll.PlanRepository,
	staffRepo staff.StaffRepository,
	venueRepo venue.VenueRepository,
	attendRepo attendance.AttendanceRepository,
	lineItemRepo order.LineItemRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		planRepo:     planRepo,
		staffRepo:    staffRepo,
		venueRepo:    venueRepo,
		attendRepo:   attendRepo,
		lineItemRepo: lineItemRepo,
	}
}

// Helper to get venue_id and staff_id from JWT context
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

// ========== REPORTS ==========

func (s *PayrollServiceImpl) GetMyReport(ctx context.Context, dateFrom, dateTo string) (payroll.ReportResponse, error) {
	venueID, staffID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	filter := payroll.ReportFilter{StaffID: staffID, DateFrom: dateFrom, DateTo: dateTo}
	return s.buildReport(ctx, venueID, filter)
}

func (s *PayrollServiceImpl) GetStaffReport(ctx context.Context, filter payroll.ReportFilter) (payroll.ReportResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	return s.buildReport(ctx, venueID, filter)
}

func (s *PayrollServiceImpl) buildReport(ctx context.Context, venueID string, filter payroll.ReportFilter) (payroll.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ReportResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, filter.StaffID, venueID)
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	v, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return payroll.ReportResponse{}, err
	}
	day := v.DayConfig()

	plan, err := s.loadPlan(ctx, venueID, member.HourlyRate)
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	entries, err := s.attendRepo.ListByStaffAndRange(ctx, filter.StaffID, filter.DateFrom, filter.DateTo, venueID)
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	// Line items are fetched by the owning session's start time. The
	// window runs from the first date's switch time to the switch time
	// after the last date, so overnight sessions land on the right side.
	from, to, err := sessionWindow(day, filter.DateFrom, filter.DateTo)
	if err != nil {
		return payroll.ReportResponse{}, err
	}
	items, err := s.lineItemRepo.ListByStaffAndRange(ctx, filter.StaffID, from, to, venueID)
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	statements, warnings, err := BuildStatements(CalcInput{
		StaffID:   member.ID,
		StaffName: member.DisplayName,
		Entries:   toTimeEntries(entries),
		Items:     toSoldItems(items),
		Plan:      plan,
		Day:       day,
		Now:       time.Now(),
	})
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	resp := payroll.ReportResponse{
		StaffID:    member.ID,
		StaffName:  member.DisplayName,
		DateFrom:   filter.DateFrom,
		DateTo:     filter.DateTo,
		Statements: make([]payroll.StatementResponse, 0, len(statements)),
		Warnings:   make([]payroll.WarningResponse, 0, len(warnings)),
	}
	for _, st := range statements {
		resp.Statements = append(resp.Statements, payroll.StatementResponse{
			BusinessDate:  st.BusinessDate,
			Label:         st.Label,
			StaffID:       st.StaffID,
			StaffName:     st.StaffName,
			WorkedMinutes: st.WorkedMinutes,
			HourlyWage:    st.HourlyWage,
			BackAmount:    st.BackAmount,
			Deduction:     st.Deduction,
			Total:         st.Total,
		})
		resp.GrandTotal += st.Total
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, payroll.WarningResponse{Row: w.Row, Reason: w.Reason})
	}

	return resp, nil
}

// loadPlan fetches the venue's plan and stamps the staff member's
// hourly rate onto it. A venue that never configured a plan gets the
// defaults: hour-nearest rounding, no payout rules, no deductions.
func (s *PayrollServiceImpl) loadPlan(ctx context.Context, venueID string, hourlyRate int64) (payroll.CompensationPlan, error) {
	plan, err := s.planRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, payroll.ErrPlanNotFound) {
			plan = payroll.CompensationPlan{
				TimeRounding: payroll.DefaultTimeRounding,
				PayoutRules:  map[payroll.FeeType]payroll.PayoutRule{},
			}
		} else {
			return payroll.CompensationPlan{}, err
		}
	}
	plan.HourlyRate = hourlyRate
	return plan, nil
}

func sessionWindow(day businessday.Config, dateFrom, dateTo string) (time.Time, time.Time, error) {
	loc := day.Location
	if loc == nil {
		loc = time.UTC
	}
	fromDate, err := time.ParseInLocation(businessday.DateFormat, dateFrom, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_from %q: %w", dateFrom, err)
	}
	toDate, err := time.ParseInLocation(businessday.DateFormat, dateTo, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_to %q: %w", dateTo, err)
	}

	from := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), day.SwitchHour, day.SwitchMinute, 0, 0, loc)
	to := time.Date(toDate.Year(), toDate.Month(), toDate.Day(), day.SwitchHour, day.SwitchMinute, 0, 0, loc).AddDate(0, 0, 1)
	return from, to, nil
}

func toTimeEntries(records []attendance.Attendance) []payroll.TimeEntry {
	entries := make([]payroll.TimeEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, payroll.TimeEntry{
			StaffID:  r.StaffID,
			WorkDate: r.WorkDate,
			ClockIn:  r.ClockIn,
			ClockOut: r.ClockOut,
		})
	}
	return entries
}

func toSoldItems(items []order.LineItem) []payroll.SoldItem {
	sold := make([]payroll.SoldItem, 0, len(items))
	for _, it := range items {
		s := payroll.SoldItem{
			MenuItemID:       it.MenuItemID,
			Category:         it.MenuCategory,
			Name:             it.Name,
			UnitPrice:        it.UnitPrice,
			Quantity:         it.Quantity,
			SessionStartedAt: it.SessionStartedAt,
		}
		if it.MenuItemID != nil && it.Name == nil {
			s.Name = it.MenuName
		}
		if it.MenuPayout != nil {
			s.DefaultPayout = *it.MenuPayout
		}
		sold = append(sold, s)
	}
	return sold
}

// ========== PLAN ==========

func (s *PayrollServiceImpl) GetPlan(ctx context.Context) (payroll.PlanResponse, error) {
	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PlanResponse{}, err
	}

	plan, err := s.planRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, payroll.ErrPlanNotFound) {
			return toPlanResponse(payroll.CompensationPlan{
				TimeRounding: payroll.DefaultTimeRounding,
				PayoutRules:  map[payroll.FeeType]payroll.PayoutRule{},
			}), nil
		}
		return payroll.PlanResponse{}, err
	}

	return toPlanResponse(plan), nil
}

func (s *PayrollServiceImpl) UpdatePlan(ctx context.Context, req payroll.UpdatePlanRequest) (payroll.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PlanResponse{}, err
	}

	venueID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PlanResponse{}, err
	}

	current, err := s.planRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if !errors.Is(err, payroll.ErrPlanNotFound) {
			return payroll.PlanResponse{}, err
		}
		current = payroll.CompensationPlan{
			TimeRounding: payroll.DefaultTimeRounding,
			PayoutRules:  map[payroll.FeeType]payroll.PayoutRule{},
		}
	}

	if req.TimeRoundingUnit != nil {
		current.TimeRounding.UnitMinutes = *req.TimeRoundingUnit
	}
	if req.TimeRoundingMode != nil {
		current.TimeRounding.Mode = payroll.RoundingMode(*req.TimeRoundingMode)
	}
	if req.PayoutRules != nil {
		rules := make(map[payroll.FeeType]payroll.PayoutRule, len(req.PayoutRules))
		for _, r := range req.PayoutRules {
			rules[payroll.FeeType(r.FeeType)] = payroll.PayoutRule{
				Mode:         payroll.PayoutMode(r.Mode),
				Amount:       r.Amount,
				Percentage:   r.Percentage,
				RoundingMode: payroll.RoundingMode(r.RoundingMode),
				RoundingUnit: r.RoundingUnit,
			}
		}
		current.PayoutRules = rules
	}
	if req.Deductions != nil {
		rules := make([]payroll.DeductionRule, 0, len(req.Deductions))
		for _, r := range req.Deductions {
			rules = append(rules, payroll.DeductionRule{Type: payroll.DeductionType(r.Type), Amount: r.Amount})
		}
		current.Deductions = rules
	}
	if req.ExcludedLabels != nil {
		current.ExcludedLabels = req.ExcludedLabels
	}

	if err := current.Validate(); err != nil {
		return payroll.PlanResponse{}, err
	}

	updated, err := s.planRepo.Upsert(ctx, venueID, current)
	if err != nil {
		return payroll.PlanResponse{}, err
	}

	return toPlanResponse(updated), nil
}

func toPlanResponse(plan payroll.CompensationPlan) payroll.PlanResponse {
	resp := payroll.PlanResponse{
		TimeRoundingUnit: plan.TimeRounding.UnitMinutes,
		TimeRoundingMode: string(plan.TimeRounding.Mode),
		PayoutRules:      make([]payroll.PayoutRuleDTO, 0, len(plan.PayoutRules)),
		Deductions:       make([]payroll.DeductionRuleDTO, 0, len(plan.Deductions)),
		ExcludedLabels:   plan.ExcludedLabels,
	}
	for _, ft := range []payroll.FeeType{payroll.FeeNomination, payroll.FeeInHouse, payroll.FeeCompanion, payroll.FeeNone} {
		rule, ok := plan.PayoutRules[ft]
		if !ok {
			continue
		}
		resp.PayoutRules = append(resp.PayoutRules, payroll.PayoutRuleDTO{
			FeeType:      string(ft),
			Mode:         string(rule.Mode),
			Amount:       rule.Amount,
			Percentage:   rule.Percentage,
			RoundingMode: string(rule.RoundingMode),
			RoundingUnit: rule.RoundingUnit,
		})
	}
	for _, d := range plan.Deductions {
		resp.Deductions = append(resp.Deductions, payroll.DeductionRuleDTO{Type: string(d.Type), Amount: d.Amount})
	}
	if resp.ExcludedLabels == nil {
		resp.ExcludedLabels = []string{}
	}
	return resp
}
