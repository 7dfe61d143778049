package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsJobOnStart(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("test_job", time.Hour, func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}

func TestSchedulerStopWaitsForJobs(t *testing.T) {
	s := NewScheduler()
	var runs int32
	s.AddJob("a", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	s.AddJob("b", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("sweep failed")
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	require.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestSchedulerJobSeesCancellationOnStop(t *testing.T) {
	s := NewScheduler()
	var cancelled atomic.Bool
	started := make(chan struct{})
	s.AddJob("watch", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})

	s.Start()
	<-started
	s.Stop()

	assert.True(t, cancelled.Load())
}
