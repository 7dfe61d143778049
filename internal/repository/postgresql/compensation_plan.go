package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

type planRepository struct {
	db *database.DB
}

func NewPlanRepository(db *database.DB) payroll.PlanRepository {
	return &planRepository{db: db}
}

// GetByVenueID implements payroll.PlanRepository.
func (r *planRepository) GetByVenueID(ctx context.Context, venueID string) (payroll.CompensationPlan, error) {
	q := GetQuerier(ctx, r.db)

	var plan payroll.CompensationPlan
	err := q.QueryRow(ctx, `
		SELECT time_rounding_unit, time_rounding_mode, excluded_labels
		FROM compensation_plans
		WHERE venue_id = $1
	`, venueID).Scan(&plan.TimeRounding.UnitMinutes, &plan.TimeRounding.Mode, &plan.ExcludedLabels)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.CompensationPlan{}, payroll.ErrPlanNotFound
		}
		return payroll.CompensationPlan{}, fmt.Errorf("failed to get compensation plan: %w", err)
	}

	plan.PayoutRules = make(map[payroll.FeeType]payroll.PayoutRule)
	rows, err := q.Query(ctx, `
		SELECT fee_type, mode, amount, percentage, rounding_mode, rounding_unit
		FROM payout_rules
		WHERE venue_id = $1
	`, venueID)
	if err != nil {
		return payroll.CompensationPlan{}, fmt.Errorf("failed to get payout rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var feeType payroll.FeeType
		var rule payroll.PayoutRule
		if err := rows.Scan(&feeType, &rule.Mode, &rule.Amount, &rule.Percentage, &rule.RoundingMode, &rule.RoundingUnit); err != nil {
			return payroll.CompensationPlan{}, fmt.Errorf("failed to scan payout rule: %w", err)
		}
		plan.PayoutRules[feeType] = rule
	}
	if err := rows.Err(); err != nil {
		return payroll.CompensationPlan{}, err
	}

	dedRows, err := q.Query(ctx, `
		SELECT type, amount
		FROM deduction_rules
		WHERE venue_id = $1
		ORDER BY position
	`, venueID)
	if err != nil {
		return payroll.CompensationPlan{}, fmt.Errorf("failed to get deduction rules: %w", err)
	}
	defer dedRows.Close()
	for dedRows.Next() {
		var rule payroll.DeductionRule
		if err := dedRows.Scan(&rule.Type, &rule.Amount); err != nil {
			return payroll.CompensationPlan{}, fmt.Errorf("failed to scan deduction rule: %w", err)
		}
		plan.Deductions = append(plan.Deductions, rule)
	}
	if err := dedRows.Err(); err != nil {
		return payroll.CompensationPlan{}, err
	}

	return plan, nil
}

// Upsert implements payroll.PlanRepository. Child rule rows are replaced
// wholesale inside one transaction.
func (r *planRepository) Upsert(ctx context.Context, venueID string, plan payroll.CompensationPlan) (payroll.CompensationPlan, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO compensation_plans (venue_id, time_rounding_unit, time_rounding_mode, excluded_labels)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (venue_id) DO UPDATE
			SET time_rounding_unit = $2, time_rounding_mode = $3, excluded_labels = $4, updated_at = now()
		`, venueID, plan.TimeRounding.UnitMinutes, plan.TimeRounding.Mode, plan.ExcludedLabels)
		if err != nil {
			return fmt.Errorf("failed to upsert compensation plan: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM payout_rules WHERE venue_id = $1`, venueID); err != nil {
			return fmt.Errorf("failed to clear payout rules: %w", err)
		}
		for feeType, rule := range plan.PayoutRules {
			_, err := tx.Exec(ctx, `
				INSERT INTO payout_rules (venue_id, fee_type, mode, amount, percentage, rounding_mode, rounding_unit)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, venueID, feeType, rule.Mode, rule.Amount, rule.Percentage, rule.RoundingMode, rule.RoundingUnit)
			if err != nil {
				return fmt.Errorf("failed to insert payout rule: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM deduction_rules WHERE venue_id = $1`, venueID); err != nil {
			return fmt.Errorf("failed to clear deduction rules: %w", err)
		}
		for i, rule := range plan.Deductions {
			_, err := tx.Exec(ctx, `
				INSERT INTO deduction_rules (venue_id, position, type, amount)
				VALUES ($1, $2, $3, $4)
			`, venueID, i, rule.Type, rule.Amount)
			if err != nil {
				return fmt.Errorf("failed to insert deduction rule: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.CompensationPlan{}, err
	}

	return plan, nil
}
