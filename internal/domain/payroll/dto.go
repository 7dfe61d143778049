package payroll

import (
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

// ========== REPORT DTOs ==========

type StatementResponse struct {
	BusinessDate  string `json:"business_date"`
	Label         string `json:"label"`
	StaffID       string `json:"staff_id"`
	StaffName     string `json:"staff_name"`
	WorkedMinutes int    `json:"worked_minutes"`
	HourlyWage    int64  `json:"hourly_wage"`
	BackAmount    int64  `json:"back_amount"`
	Deduction     int64  `json:"deduction"`
	Total         int64  `json:"total"`
}

type WarningResponse struct {
	Row    string `json:"row"`
	Reason string `json:"reason"`
}

type ReportResponse struct {
	StaffID    string              `json:"staff_id"`
	StaffName  string              `json:"staff_name"`
	DateFrom   string              `json:"date_from"`
	DateTo     string              `json:"date_to"`
	Statements []StatementResponse `json:"statements"`
	Warnings   []WarningResponse   `json:"warnings"`
	GrandTotal int64               `json:"grand_total"`
}

type ReportFilter struct {
	StaffID  string
	DateFrom string
	DateTo   string
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(f.DateTo); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be YYYY-MM-DD"})
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must not be after date_to"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PLAN DTOs ==========

type PayoutRuleDTO struct {
	FeeType      string `json:"fee_type"`
	Mode         string `json:"mode"`
	Amount       int64  `json:"amount"`
	Percentage   int    `json:"percentage"`
	RoundingMode string `json:"rounding_mode"`
	RoundingUnit int64  `json:"rounding_unit"`
}

type DeductionRuleDTO struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

type PlanResponse struct {
	TimeRoundingUnit int                `json:"time_rounding_unit"`
	TimeRoundingMode string             `json:"time_rounding_mode"`
	PayoutRules      []PayoutRuleDTO    `json:"payout_rules"`
	Deductions       []DeductionRuleDTO `json:"deductions"`
	ExcludedLabels   []string           `json:"excluded_labels"`
}

type UpdatePlanRequest struct {
	TimeRoundingUnit *int               `json:"time_rounding_unit,omitempty"`
	TimeRoundingMode *string            `json:"time_rounding_mode,omitempty"`
	PayoutRules      []PayoutRuleDTO    `json:"payout_rules,omitempty"`
	Deductions       []DeductionRuleDTO `json:"deductions,omitempty"`
	ExcludedLabels   []string           `json:"excluded_labels,omitempty"`
}

var feeTypes = []string{string(FeeNomination), string(FeeInHouse), string(FeeCompanion), string(FeeNone)}
var payoutModes = []string{string(PayoutFixed), string(PayoutPercentTotal), string(PayoutPercentSubtotal)}
var roundingModes = []string{string(RoundNone), string(RoundDown), string(RoundUp), string(RoundNearest)}
var deductionTypes = []string{string(DeductionFixed), string(DeductionPercent)}

func (r *UpdatePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TimeRoundingUnit != nil && *r.TimeRoundingUnit <= 0 {
		errs = append(errs, validator.ValidationError{Field: "time_rounding_unit", Message: "must be positive"})
	}
	if r.TimeRoundingMode != nil && !validator.IsInSlice(*r.TimeRoundingMode, []string{string(RoundDown), string(RoundUp), string(RoundNearest)}) {
		errs = append(errs, validator.ValidationError{Field: "time_rounding_mode", Message: "must be 'down', 'up' or 'nearest'"})
	}
	for _, rule := range r.PayoutRules {
		if !validator.IsInSlice(rule.FeeType, feeTypes) {
			errs = append(errs, validator.ValidationError{Field: "payout_rules.fee_type", Message: "unknown fee type: " + rule.FeeType})
		}
		if !validator.IsInSlice(rule.Mode, payoutModes) {
			errs = append(errs, validator.ValidationError{Field: "payout_rules.mode", Message: "unknown payout mode: " + rule.Mode})
		}
		if rule.Percentage < 0 || rule.Percentage > 100 {
			errs = append(errs, validator.ValidationError{Field: "payout_rules.percentage", Message: "must be between 0 and 100"})
		}
		if rule.RoundingMode != "" && !validator.IsInSlice(rule.RoundingMode, roundingModes) {
			errs = append(errs, validator.ValidationError{Field: "payout_rules.rounding_mode", Message: "unknown rounding mode: " + rule.RoundingMode})
		}
	}
	for _, rule := range r.Deductions {
		if !validator.IsInSlice(rule.Type, deductionTypes) {
			errs = append(errs, validator.ValidationError{Field: "deductions.type", Message: "must be 'fixed' or 'percent'"})
		}
		if rule.Type == string(DeductionPercent) && (rule.Amount < 0 || rule.Amount > 100) {
			errs = append(errs, validator.ValidationError{Field: "deductions.amount", Message: "percent must be between 0 and 100"})
		}
		if rule.Type == string(DeductionFixed) && rule.Amount < 0 {
			errs = append(errs, validator.ValidationError{Field: "deductions.amount", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
