package payroll

import (
	"fmt"
	"time"
)

// FeeType classifies a sold item for compensation purposes.
type FeeType string

const (
	FeeNone       FeeType = "none"       // base/house revenue
	FeeNomination FeeType = "nomination" // 指名
	FeeInHouse    FeeType = "in_house"   // 場内指名
	FeeCompanion  FeeType = "companion"  // 同伴
)

// RoundingMode selects how values snap to a rounding unit.
type RoundingMode string

const (
	RoundNone    RoundingMode = "none"
	RoundDown    RoundingMode = "down"
	RoundUp      RoundingMode = "up"
	RoundNearest RoundingMode = "nearest"
)

// PayoutMode selects how a fee type's value converts to payout.
type PayoutMode string

const (
	PayoutFixed PayoutMode = "fixed"
	// percent_total and percent_subtotal are computed identically
	// (percentage of unit price x quantity). Kept as distinct modes
	// because plans store them separately; see DESIGN.md.
	PayoutPercentTotal    PayoutMode = "percent_total"
	PayoutPercentSubtotal PayoutMode = "percent_subtotal"
)

// TimeRounding configures worked-minute rounding.
type TimeRounding struct {
	UnitMinutes int
	Mode        RoundingMode
}

// DefaultTimeRounding is hour-nearest, the venue-industry default.
var DefaultTimeRounding = TimeRounding{UnitMinutes: 60, Mode: RoundNearest}

func (t TimeRounding) Validate() error {
	if t.UnitMinutes <= 0 {
		return fmt.Errorf("time rounding unit %d: %w", t.UnitMinutes, ErrInvalidTimeRounding)
	}
	switch t.Mode {
	case RoundDown, RoundUp, RoundNearest:
		return nil
	default:
		return fmt.Errorf("time rounding mode %q: %w", t.Mode, ErrInvalidTimeRounding)
	}
}

// PayoutRule converts a fee type's value to a cast payout.
type PayoutRule struct {
	Mode         PayoutMode
	Amount       int64 // yen per unit, when Mode == PayoutFixed
	Percentage   int   // 0-100, when Mode is a percentage mode
	RoundingMode RoundingMode
	RoundingUnit int64 // yen; 0 means no rounding step
}

func (r PayoutRule) Validate(feeType FeeType) error {
	switch r.Mode {
	case PayoutFixed:
		if r.Amount < 0 {
			return fmt.Errorf("payout rule for %s: fixed amount %d: %w", feeType, r.Amount, ErrInvalidPayoutRule)
		}
	case PayoutPercentTotal, PayoutPercentSubtotal:
		if r.Percentage < 0 || r.Percentage > 100 {
			return fmt.Errorf("payout rule for %s: percentage %d: %w", feeType, r.Percentage, ErrInvalidPayoutRule)
		}
	default:
		return fmt.Errorf("payout rule for %s: mode %q: %w", feeType, r.Mode, ErrUnknownPayoutMode)
	}

	// Unset rounding mode means no rounding step, same as RoundNone.
	switch r.RoundingMode {
	case "", RoundNone, RoundDown, RoundUp, RoundNearest:
	default:
		return fmt.Errorf("payout rule for %s: rounding mode %q: %w", feeType, r.RoundingMode, ErrInvalidPayoutRule)
	}
	if r.RoundingMode != RoundNone && r.RoundingMode != "" && r.RoundingUnit <= 0 {
		return fmt.Errorf("payout rule for %s: rounding unit %d: %w", feeType, r.RoundingUnit, ErrInvalidPayoutRule)
	}
	return nil
}

// DeductionType is the kind of one deduction rule.
type DeductionType string

const (
	DeductionFixed   DeductionType = "fixed"
	DeductionPercent DeductionType = "percent"
)

// DeductionRule is one entry in a plan's ordered deduction list.
// Fixed rules subtract a flat sum per day; percent rules subtract a
// percentage of the day's gross, each computed against the original
// gross (never compounding).
type DeductionRule struct {
	Type   DeductionType
	Amount int64 // yen for fixed, 0-100 for percent
}

func (r DeductionRule) Validate() error {
	switch r.Type {
	case DeductionFixed:
		if r.Amount < 0 {
			return fmt.Errorf("fixed deduction %d: %w", r.Amount, ErrInvalidDeductionRule)
		}
	case DeductionPercent:
		if r.Amount < 0 || r.Amount > 100 {
			return fmt.Errorf("percent deduction %d: %w", r.Amount, ErrInvalidDeductionRule)
		}
	default:
		return fmt.Errorf("deduction type %q: %w", r.Type, ErrInvalidDeductionRule)
	}
	return nil
}

// CompensationPlan is the full rule configuration for a calculation run.
// Immutable for the run's duration.
type CompensationPlan struct {
	HourlyRate     int64
	TimeRounding   TimeRounding
	PayoutRules    map[FeeType]PayoutRule
	Deductions     []DeductionRule
	ExcludedLabels []string // special-fee labels not attributable as cast compensation
}

// Validate checks every rule in the plan. A broken plan aborts the whole
// run before any row is folded.
func (p CompensationPlan) Validate() error {
	if p.HourlyRate < 0 {
		return fmt.Errorf("hourly rate %d: %w", p.HourlyRate, ErrInvalidPlan)
	}
	if err := p.TimeRounding.Validate(); err != nil {
		return err
	}
	for feeType, rule := range p.PayoutRules {
		if err := rule.Validate(feeType); err != nil {
			return err
		}
	}
	for _, rule := range p.Deductions {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TimeEntry is one attendance row as the calculator sees it: already
// mapped and validated at the boundary, read-only here.
type TimeEntry struct {
	StaffID  string
	WorkDate string // YYYY-MM-DD
	ClockIn  *time.Time
	ClockOut *time.Time
}

// SoldItem is one sold line item attributable to a person, resolved with
// its catalog data and the owning session's start time.
type SoldItem struct {
	MenuItemID       *string
	Category         *string // catalog category, when catalog-backed
	Name             *string // free-text name otherwise
	UnitPrice        int64
	Quantity         int
	DefaultPayout    int64 // catalog per-unit payout fallback
	SessionStartedAt time.Time
}

// Label returns the string classification and exclusion run against:
// the catalog category when catalog-backed, else the free-text name.
func (s SoldItem) Label() string {
	if s.MenuItemID != nil && s.Category != nil {
		return *s.Category
	}
	if s.Name != nil {
		return *s.Name
	}
	return ""
}

// Statement is one person's compensation for one business date.
// Total is always hourly + back - deduction; it is never stored or
// mutated independently.
type Statement struct {
	BusinessDate  string
	Label         string
	StaffID       string
	StaffName     string
	WorkedMinutes int
	HourlyWage    int64
	BackAmount    int64
	Deduction     int64
	Total         int64
}

// Warning reports a malformed input row that was skipped. One bad
// historical row never aborts the run.
type Warning struct {
	Row    string // "time_entry" or "line_item"
	Reason string
}
