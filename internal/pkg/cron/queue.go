package cron

import (
	"context"
	"time"

	"github.com/uchiyama0208/nightbase-sub009/internal/domain/queue"
)

// QueueJobs sweeps walk-in tickets left over from past business days.
type QueueJobs struct {
	queueSvc queue.QueueService
}

func NewQueueJobs(queueSvc queue.QueueService) *QueueJobs {
	return &QueueJobs{queueSvc: queueSvc}
}

func (j *QueueJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("expire_stale_queue_tickets", 30*time.Minute, j.ExpireStaleTickets)
}

// ExpireStaleTickets marks waiting and called tickets from past business
// dates as expired so stale numbers never show on today's board.
func (j *QueueJobs) ExpireStaleTickets(ctx context.Context) error {
	return j.queueSvc.ExpireStaleTickets(ctx)
}
