package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/database"
)

// ========== PLANS ==========

type subscriptionPlanRepository struct {
	db *database.DB
}

func NewSubscriptionPlanRepository(db *database.DB) subscription.PlanRepository {
	return &subscriptionPlanRepository{db: db}
}

// GetByID implements subscription.PlanRepository.
func (r *subscriptionPlanRepository) GetByID(ctx context.Context, id string) (subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	var p subscription.Plan
	err := q.QueryRow(ctx, `
		SELECT id, name, price_per_seat, max_seats, is_active, created_at, updated_at
		FROM subscription_plans
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.PricePerSeat, &p.MaxSeats, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.Plan{}, subscription.ErrPlanNotFound
		}
		return subscription.Plan{}, fmt.Errorf("failed to get plan: %w", err)
	}
	return p, nil
}

// ListActive implements subscription.PlanRepository.
func (r *subscriptionPlanRepository) ListActive(ctx context.Context) ([]subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, price_per_seat, max_seats, is_active, created_at, updated_at
		FROM subscription_plans
		WHERE is_active = true
		ORDER BY price_per_seat
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []subscription.Plan
	for rows.Next() {
		var p subscription.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePerSeat, &p.MaxSeats, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// ========== SUBSCRIPTIONS ==========

type subscriptionRepository struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) subscription.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// GetByVenueID implements subscription.SubscriptionRepository.
func (r *subscriptionRepository) GetByVenueID(ctx context.Context, venueID string) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	var s subscription.Subscription
	err := q.QueryRow(ctx, `
		SELECT s.id, s.venue_id, s.plan_id, s.status, s.seats, s.period_end,
		       s.created_at, s.updated_at, p.name, p.price_per_seat
		FROM subscriptions s
		JOIN subscription_plans p ON p.id = s.plan_id
		WHERE s.venue_id = $1
	`, venueID).Scan(
		&s.ID, &s.VenueID, &s.PlanID, &s.Status, &s.Seats, &s.PeriodEnd,
		&s.CreatedAt, &s.UpdatedAt, &s.PlanName, &s.PricePerSeat,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.Subscription{}, subscription.ErrSubscriptionNotFound
		}
		return subscription.Subscription{}, fmt.Errorf("failed to get subscription: %w", err)
	}
	return s, nil
}

// Create implements subscription.SubscriptionRepository.
func (r *subscriptionRepository) Create(ctx context.Context, s subscription.Subscription) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO subscriptions (id, venue_id, plan_id, status, seats, period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, s.ID, s.VenueID, s.PlanID, s.Status, s.Seats, s.PeriodEnd).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("failed to create subscription: %w", err)
	}
	return s, nil
}

// UpdateStatus implements subscription.SubscriptionRepository.
func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id string, status subscription.SubscriptionStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE subscriptions SET status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}

// Renew implements subscription.SubscriptionRepository.
func (r *subscriptionRepository) Renew(ctx context.Context, id string, periodEnd time.Time, status subscription.SubscriptionStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE subscriptions SET period_end = $2, status = $3, updated_at = now() WHERE id = $1
	`, id, periodEnd, status)
	if err != nil {
		return fmt.Errorf("failed to renew subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}

// UpdateExpiredToStatus implements subscription.SubscriptionRepository.
func (r *subscriptionRepository) UpdateExpiredToStatus(ctx context.Context, cutoff time.Time, fromStatuses []subscription.SubscriptionStatus, toStatus subscription.SubscriptionStatus) (int64, error) {
	q := GetQuerier(ctx, r.db)

	strs := make([]string, 0, len(fromStatuses))
	for _, s := range fromStatuses {
		strs = append(strs, string(s))
	}

	tag, err := q.Exec(ctx, `
		UPDATE subscriptions
		SET status = $1, updated_at = now()
		WHERE period_end < $2 AND status = ANY($3)
	`, toStatus, cutoff, strs)
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ========== INVOICES ==========

type invoiceRepository struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) subscription.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, venue_id, subscription_id, external_id, xendit_id, amount, status, invoice_url, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (subscription.Invoice, error) {
	var inv subscription.Invoice
	err := row.Scan(
		&inv.ID, &inv.VenueID, &inv.SubscriptionID, &inv.ExternalID, &inv.XenditID,
		&inv.Amount, &inv.Status, &inv.InvoiceURL, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, err
}

// Create implements subscription.InvoiceRepository.
func (r *invoiceRepository) Create(ctx context.Context, inv subscription.Invoice) (subscription.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO invoices (id, venue_id, subscription_id, external_id, xendit_id, amount, status, invoice_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, inv.ID, inv.VenueID, inv.SubscriptionID, inv.ExternalID, inv.XenditID, inv.Amount, inv.Status, inv.InvoiceURL,
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return subscription.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}
	return inv, nil
}

// GetByExternalID implements subscription.InvoiceRepository.
func (r *invoiceRepository) GetByExternalID(ctx context.Context, externalID string) (subscription.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	inv, err := scanInvoice(q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE external_id = $1`, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.Invoice{}, subscription.ErrInvoiceNotFound
		}
		return subscription.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}
	return inv, nil
}

// MarkPaid implements subscription.InvoiceRepository.
func (r *invoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE invoices SET status = 'paid', paid_at = $2, updated_at = now() WHERE id = $1
	`, id, paidAt)
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrInvoiceNotFound
	}
	return nil
}

// ListByVenueID implements subscription.InvoiceRepository.
func (r *invoiceRepository) ListByVenueID(ctx context.Context, venueID string) ([]subscription.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE venue_id = $1 ORDER BY created_at DESC`, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []subscription.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// HasPending implements subscription.InvoiceRepository.
func (r *invoiceRepository) HasPending(ctx context.Context, venueID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE venue_id = $1 AND status = 'pending')`, venueID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending invoices: %w", err)
	}
	return exists, nil
}

// ExpireStale implements subscription.InvoiceRepository.
func (r *invoiceRepository) ExpireStale(ctx context.Context, olderThan time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		UPDATE invoices SET status = 'expired', updated_at = now()
		WHERE status = 'pending' AND created_at < $1
		RETURNING xendit_id
	`, olderThan)
	if err != nil {
		return nil, fmt.Errorf("failed to expire stale invoices: %w", err)
	}
	defer rows.Close()

	var xenditIDs []string
	for rows.Next() {
		var id *string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expired invoice: %w", err)
		}
		if id != nil {
			xenditIDs = append(xenditIDs, *id)
		}
	}
	return xenditIDs, rows.Err()
}
