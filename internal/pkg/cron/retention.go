package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PunchPurger deletes punches older than a cutoff.
type PunchPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionJobs contains the punch retention cron job
type RetentionJobs struct {
	purger    PunchPurger
	retention time.Duration
	now       func() time.Time
}

// NewRetentionJobs keeps retentionDays of punch history.
func NewRetentionJobs(purger PunchPurger, retentionDays int) *RetentionJobs {
	return &RetentionJobs{
		purger:    purger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// RegisterJobs registers the nightly purge (checked every hour)
func (j *RetentionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_old_punches", 1*time.Hour, j.PurgeOldPunches)
}

// PurgeOldPunches deletes punches past the retention window. It only acts
// during the midnight UTC hour.
func (j *RetentionJobs) PurgeOldPunches(ctx context.Context) error {
	now := j.now().UTC()
	if now.Hour() != 0 {
		return nil
	}

	cutoff := now.Add(-j.retention)
	deleted, err := j.purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge punches before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	slog.Info("Cron: Purged old punches", "deleted", deleted, "cutoff", cutoff)
	return nil
}
