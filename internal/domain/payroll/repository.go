package payroll

import "context"

// PlanRepository supplies the compensation-plan configuration for a
// venue. Hourly rates come from the staff record, not the plan.
type PlanRepository interface {
	// GetByVenueID retrieves the venue's plan with payout rules and
	// ordered deduction rules. Returns ErrPlanNotFound when the venue has
	// never configured one.
	GetByVenueID(ctx context.Context, venueID string) (CompensationPlan, error)

	// Upsert replaces the venue's plan configuration
	Upsert(ctx context.Context, venueID string, plan CompensationPlan) (CompensationPlan, error)
}
