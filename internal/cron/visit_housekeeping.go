package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
)

const staleVisitBatchSize = 500

type staleVisitStore interface {
	ListStalePlanned(ctx context.Context, cutoff time.Time, limit int) ([]models.Visit, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Visit, error)
}

// VisitHousekeepingJob cancels planned visits whose date is far enough
// in the past that they can no longer happen. It only flips status;
// it never creates, moves or deletes visits.
type VisitHousekeepingJob struct {
	store     staleVisitStore
	staleDays int
	logg      *logger.Logger
	now       func() time.Time
}

// NewVisitHousekeepingJob builds the job. staleDays is how many days a
// planned visit may sit in the past before it is considered stale.
func NewVisitHousekeepingJob(store staleVisitStore, staleDays int, logg *logger.Logger) (*VisitHousekeepingJob, error) {
	if store == nil {
		return nil, fmt.Errorf("visit store required")
	}
	if staleDays <= 0 {
		return nil, fmt.Errorf("stale days must be positive, got %d", staleDays)
	}
	return &VisitHousekeepingJob{
		store:     store,
		staleDays: staleDays,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Name implements Job.
func (j *VisitHousekeepingJob) Name() string { return "visit-housekeeping" }

// Run implements Job. Per-visit failures are collected so one bad row
// does not block the rest of the batch.
func (j *VisitHousekeepingJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().AddDate(0, 0, -j.staleDays)

	stale, err := j.store.ListStalePlanned(ctx, cutoff, staleVisitBatchSize)
	if err != nil {
		return fmt.Errorf("list stale visits: %w", err)
	}
	if len(stale) == 0 {
		if j.logg != nil {
			j.logg.Info(ctx, "no stale visits to cancel")
		}
		return nil
	}

	var errs error
	cancelled := 0
	for _, visit := range stale {
		_, updateErr := j.store.Update(ctx, visit.ID, map[string]any{
			"status": enums.VisitStatusCancelled,
		})
		if updateErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("cancel visit %s: %w", visit.ID, updateErr))
			continue
		}
		cancelled++
	}

	if j.logg != nil {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"cutoff":    cutoff.Format("2006-01-02"),
			"stale":     len(stale),
			"cancelled": cancelled,
		})
		j.logg.Info(logCtx, "stale visit sweep complete")
	}
	return errs
}
