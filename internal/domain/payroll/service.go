package payroll

import "context"

// PayrollService defines business logic for compensation reporting
type PayrollService interface {
	// GetMyReport builds the authenticated cast member's compensation
	// report for a business-date window
	GetMyReport(ctx context.Context, dateFrom, dateTo string) (ReportResponse, error)

	// GetStaffReport builds a report for any staff member (manager)
	GetStaffReport(ctx context.Context, filter ReportFilter) (ReportResponse, error)

	// GetPlan retrieves the venue's compensation plan
	GetPlan(ctx context.Context) (PlanResponse, error)

	// UpdatePlan replaces the venue's compensation plan
	UpdatePlan(ctx context.Context, req UpdatePlanRequest) (PlanResponse, error)
}
