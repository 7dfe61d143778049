// Package cron runs the background maintenance the venue backend needs
// between requests: expiring leftover queue tickets and sweeping the
// billing tables.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed intervals until stopped.
// Each job also fires once at startup so a restarted server catches up
// on expiry work immediately.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, interval: interval, run: fn})
	slog.Info("background job registered", "job", name, "interval", interval)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("background jobs started", "count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("background jobs stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.runOne(j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOne(j)
		}
	}
}

func (s *Scheduler) runOne(j job) {
	start := time.Now()
	if err := j.run(s.ctx); err != nil {
		slog.Error("background job failed", "job", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("background job completed", "job", j.name, "duration", time.Since(start))
}
