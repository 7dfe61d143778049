package cron

import (
	"context"
	"time"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/subscription"
)

// SubscriptionJobs handles periodic subscription maintenance
type SubscriptionJobs struct {
	subscriptionService subscription.SubscriptionService
}

func NewSubscriptionJobs(subscriptionService subscription.SubscriptionService) *SubscriptionJobs {
	return &SubscriptionJobs{
		subscriptionService: subscriptionService,
	}
}

func (j *SubscriptionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"update_expired_subscriptions",
		1*time.Hour,
		j.UpdateExpiredSubscriptions,
	)
	scheduler.AddJob(
		"cleanup_stale_invoices",
		6*time.Hour,
		j.CleanupStaleInvoices,
	)
}

// UpdateExpiredSubscriptions moves subscriptions past their period end to expired
func (j *SubscriptionJobs) UpdateExpiredSubscriptions(ctx context.Context) error {
	return j.subscriptionService.UpdateExpiredSubscriptions(ctx)
}

// CleanupStaleInvoices expires pending invoices that were never paid
func (j *SubscriptionJobs) CleanupStaleInvoices(ctx context.Context) error {
	return j.subscriptionService.CleanupStaleInvoices(ctx)
}
