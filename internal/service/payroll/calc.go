package payroll

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/businessday"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/validator"
)

// Classification markers matched against the catalog category (or the
// free-text name for uncatalogued items). 場内指名 contains both 指名 and
// 場内; the negative clause in the first rule makes it in-house, never
// plain nomination.
const (
	markerNomination = "指名"
	markerInHouse    = "場内"
	markerCompanion  = "同伴"
)

const displayNamePlaceholder = "名前未設定"

// Classify maps a sold item to its fee type. Ordered, first match wins.
func Classify(item payroll.SoldItem) payroll.FeeType {
	label := item.Label()
	switch {
	case strings.Contains(label, markerNomination) && !strings.Contains(label, markerInHouse):
		return payroll.FeeNomination
	case strings.Contains(label, markerInHouse):
		return payroll.FeeInHouse
	case strings.Contains(label, markerCompanion):
		return payroll.FeeCompanion
	default:
		return payroll.FeeNone
	}
}

// roundToUnit snaps v to a multiple of unit. Nearest is round-half-up.
func roundToUnit(v int64, unit int64, mode payroll.RoundingMode) int64 {
	if unit <= 0 || mode == payroll.RoundNone || mode == "" {
		return v
	}
	q := v / unit
	r := v % unit
	switch mode {
	case payroll.RoundDown:
		return q * unit
	case payroll.RoundUp:
		if r > 0 {
			q++
		}
		return q * unit
	case payroll.RoundNearest:
		if r*2 >= unit {
			q++
		}
		return q * unit
	}
	return v
}

// WorkedMinutes normalizes a time entry into rounded worked minutes.
// An open shift (no clock-out) runs until now. A clock-out whose
// wall-clock time is earlier than the clock-in is treated as the
// following day; if it is still earlier after that adjustment the row is
// corrupt and ErrMalformedTimeEntry is returned.
func WorkedMinutes(entry payroll.TimeEntry, now time.Time, rounding payroll.TimeRounding) (int, error) {
	if entry.ClockIn == nil {
		return 0, nil
	}
	in := *entry.ClockIn
	out := now
	if entry.ClockOut != nil {
		out = *entry.ClockOut
		if out.Before(in) {
			out = out.Add(24 * time.Hour)
			if out.Before(in) {
				return 0, fmt.Errorf("%s: %w", entry.WorkDate, payroll.ErrMalformedTimeEntry)
			}
		}
	}

	raw := int(out.Sub(in).Minutes())
	if raw < 0 {
		raw = 0
	}

	return int(roundToUnit(int64(raw), int64(rounding.UnitMinutes), rounding.Mode)), nil
}

// HourlyWage is floor(minutes/60 x rate) in integer yen. The
// multiplication happens before the division so partial hours are not
// truncated prematurely.
func HourlyWage(workedMinutes int, hourlyRate int64) int64 {
	if workedMinutes <= 0 || hourlyRate <= 0 {
		return 0
	}
	return int64(workedMinutes) * hourlyRate / 60
}

// BackAmount computes the cast payout for one sold item. With no payout
// rule for the fee type the catalog's default per-unit payout applies.
func BackAmount(item payroll.SoldItem, feeType payroll.FeeType, plan payroll.CompensationPlan) int64 {
	rule, ok := plan.PayoutRules[feeType]
	if !ok {
		return item.DefaultPayout * int64(item.Quantity)
	}

	var amount int64
	switch rule.Mode {
	case payroll.PayoutFixed:
		amount = rule.Amount * int64(item.Quantity)
	case payroll.PayoutPercentTotal, payroll.PayoutPercentSubtotal:
		amount = item.UnitPrice * int64(item.Quantity) * int64(rule.Percentage) / 100
	}

	amount = roundToUnit(amount, rule.RoundingUnit, rule.RoundingMode)
	if amount < 0 {
		amount = 0
	}
	return amount
}

func fixedDeductionSum(rules []payroll.DeductionRule) int64 {
	var sum int64
	for _, r := range rules {
		if r.Type == payroll.DeductionFixed {
			sum += r.Amount
		}
	}
	return sum
}

func percentDeductionSum(gross int64, rules []payroll.DeductionRule) int64 {
	var sum int64
	for _, r := range rules {
		if r.Type == payroll.DeductionPercent {
			// Each percent rule runs against the original gross, never a
			// running remainder.
			sum += gross * r.Amount / 100
		}
	}
	return sum
}

// DeductionTotal applies an ordered deduction list to a day's gross.
func DeductionTotal(gross int64, rules []payroll.DeductionRule) int64 {
	return fixedDeductionSum(rules) + percentDeductionSum(gross, rules)
}

// accumulator is the per-business-date fold state. Local to one run.
type accumulator struct {
	workedMinutes int
	hourlyWage    int64
	backAmount    int64
	hasShift      bool
}

// CalcInput is one calculation run's immutable snapshot.
type CalcInput struct {
	StaffID   string
	StaffName string
	Entries   []payroll.TimeEntry
	Items     []payroll.SoldItem
	Plan      payroll.CompensationPlan
	Day       businessday.Config
	Now       time.Time
}

// BuildStatements folds time entries and sold items into one statement
// per business date, newest first. A broken plan aborts the run;
// malformed rows are skipped and reported as warnings.
func BuildStatements(in CalcInput) ([]payroll.Statement, []payroll.Warning, error) {
	if err := in.Plan.Validate(); err != nil {
		return nil, nil, err
	}
	if err := in.Day.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", payroll.ErrInvalidPlan, err)
	}

	staffName := in.StaffName
	if staffName == "" {
		staffName = displayNamePlaceholder
	}

	byDate := make(map[string]*accumulator)
	var warnings []payroll.Warning

	get := func(date string) *accumulator {
		if acc, ok := byDate[date]; ok {
			return acc
		}
		acc := &accumulator{}
		byDate[date] = acc
		return acc
	}

	for _, entry := range in.Entries {
		if _, ok := validator.IsValidDate(entry.WorkDate); !ok {
			warnings = append(warnings, payroll.Warning{Row: "time_entry", Reason: fmt.Sprintf("invalid work date %q", entry.WorkDate)})
			continue
		}
		minutes, err := WorkedMinutes(entry, in.Now, in.Plan.TimeRounding)
		if err != nil {
			warnings = append(warnings, payroll.Warning{Row: "time_entry", Reason: err.Error()})
			continue
		}
		acc := get(entry.WorkDate)
		acc.workedMinutes += minutes
		acc.hourlyWage += HourlyWage(minutes, in.Plan.HourlyRate)
		acc.hasShift = true
	}

	for _, item := range in.Items {
		if item.MenuItemID == nil && (item.Name == nil || *item.Name == "") {
			warnings = append(warnings, payroll.Warning{Row: "line_item", Reason: payroll.ErrMalformedLineItem.Error()})
			continue
		}
		// Special-fee labels are tracked elsewhere and never count as
		// cast compensation. Uncatalogued temporary items stay in unless
		// they are on the list themselves.
		if validator.IsInSlice(item.Label(), in.Plan.ExcludedLabels) {
			continue
		}

		feeType := Classify(item)
		amount := BackAmount(item, feeType, in.Plan)

		// The business date comes from the owning session's start, not
		// from when the item was rung in: a session that crosses midnight
		// keeps its opening night's date.
		date := in.Day.Resolve(item.SessionStartedAt)
		get(date).backAmount += amount
	}

	statements := make([]payroll.Statement, 0, len(byDate))
	for date, acc := range byDate {
		gross := acc.hourlyWage + acc.backAmount
		deduction := percentDeductionSum(gross, in.Plan.Deductions)
		if acc.hasShift {
			deduction += fixedDeductionSum(in.Plan.Deductions)
		}
		statements = append(statements, payroll.Statement{
			BusinessDate:  date,
			Label:         businessday.Label(date),
			StaffID:       in.StaffID,
			StaffName:     staffName,
			WorkedMinutes: acc.workedMinutes,
			HourlyWage:    acc.hourlyWage,
			BackAmount:    acc.backAmount,
			Deduction:     deduction,
			Total:         gross - deduction,
		})
	}

	// Fixed-width ISO dates sort correctly as strings.
	sort.Slice(statements, func(i, j int) bool {
		return statements[i].BusinessDate > statements[j].BusinessDate
	})

	return statements, warnings, nil
}
