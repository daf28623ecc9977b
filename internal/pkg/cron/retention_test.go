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

type fakePurger struct {
	cutoffs []time.Time
	err     error
}

func (f *fakePurger) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func TestPurgeOldPunches_MidnightOnly(t *testing.T) {
	purger := &fakePurger{}
	jobs := NewRetentionJobs(purger, 150)

	jobs.now = func() time.Time { return time.Date(2026, time.October, 16, 14, 0, 0, 0, time.UTC) }
	require.NoError(t, jobs.PurgeOldPunches(context.Background()))
	assert.Empty(t, purger.cutoffs)

	jobs.now = func() time.Time { return time.Date(2026, time.October, 16, 0, 5, 0, 0, time.UTC) }
	require.NoError(t, jobs.PurgeOldPunches(context.Background()))
	require.Len(t, purger.cutoffs, 1)
	assert.Equal(t, time.Date(2026, time.May, 19, 0, 5, 0, 0, time.UTC), purger.cutoffs[0])
}

func TestPurgeOldPunches_Error(t *testing.T) {
	purger := &fakePurger{err: errors.New("db down")}
	jobs := NewRetentionJobs(purger, 150)
	jobs.now = func() time.Time { return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC) }

	err := jobs.PurgeOldPunches(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(nil, time.Second)

	var calls atomic.Int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.AddJob("broken", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})

	err := s.RunOnce(context.Background())

	assert.Equal(t, int32(2), calls.Load())
	assert.ErrorContains(t, err, "broken: boom")
	assert.Equal(t, []string{"ok", "broken"}, s.Jobs())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil, 0)

	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	s.AddJob("late", time.Hour, func(ctx context.Context) error { return nil })
	assert.Equal(t, []string{"tick"}, s.Jobs())
}
