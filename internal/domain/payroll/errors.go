package payroll

import "errors"

// Configuration errors abort a calculation run: output computed from a
// broken plan would be meaningless.
var (
	ErrInvalidPlan          = errors.New("invalid compensation plan")
	ErrInvalidTimeRounding  = errors.New("invalid time rounding configuration")
	ErrInvalidPayoutRule    = errors.New("invalid payout rule")
	ErrUnknownPayoutMode    = errors.New("unknown payout calculation mode")
	ErrInvalidDeductionRule = errors.New("invalid deduction rule")
)

// Data-shape errors mark corrupt upstream rows. The aggregator skips the
// offending row and records a warning instead of aborting the run.
var (
	ErrMalformedTimeEntry = errors.New("clock-out predates clock-in by more than 24 hours")
	ErrMalformedLineItem  = errors.New("line item has neither a catalog reference nor a name")
)

// Data errors
var (
	ErrPlanNotFound = errors.New("compensation plan not found")
)
