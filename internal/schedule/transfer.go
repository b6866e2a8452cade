package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
	"github.com/luisortegam/fieldvisits-backend/pkg/metrics"
)

type transferStore interface {
	List(ctx context.Context, filter visits.ListFilter) ([]models.Visit, error)
	Insert(ctx context.Context, batch []models.Visit) ([]models.Visit, error)
}

// TransferResult reports how many visits a month transfer created.
// The count is best effort: the batch insert is a single call, but a
// store that applies it partially is not detected here.
type TransferResult struct {
	CreatedCount int `json:"created_count"`
}

// Planner replicates one operator's visit pattern from a source month
// into the following month, keeping each visit on the same weekday and
// week-of-month slot.
type Planner struct {
	store   transferStore
	metrics *metrics.ScheduleMetrics
	logg    *logger.Logger
}

// NewPlanner builds a month transfer planner.
func NewPlanner(store transferStore, m *metrics.ScheduleMetrics, logg *logger.Logger) (*Planner, error) {
	if store == nil {
		return nil, fmt.Errorf("visit store required")
	}
	return &Planner{store: store, metrics: m, logg: logg}, nil
}

// Transfer clones every visit the operator has in sourceMonth into the
// next month. Source visits are never modified. Transfer is not
// idempotent: running it twice doubles the clones, which is why the
// HTTP layer guards the endpoint with an idempotency key.
func (p *Planner) Transfer(ctx context.Context, operatorID uuid.UUID, sourceMonth Month) (*TransferResult, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "operator id required")
	}
	if sourceMonth.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source month required")
	}

	started := time.Now()
	source, err := p.store.List(ctx, visits.ListFilter{
		OperatorID: &operatorID,
		From:       sourceMonth.Start(),
		To:         sourceMonth.End(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list source visits")
	}
	if len(source) == 0 {
		return &TransferResult{CreatedCount: 0}, nil
	}

	targetMonth := sourceMonth.Next()
	clones := make([]models.Visit, 0, len(source))
	for _, visit := range source {
		targetDate, err := targetDateFor(visit.VisitDate, targetMonth)
		if err != nil {
			return nil, err
		}
		clones = append(clones, models.Visit{
			CustomerID: visit.CustomerID,
			BranchID:   visit.BranchID,
			OperatorID: visit.OperatorID,
			VisitDate:  targetDate,
			VisitType:  visit.VisitType,
			Status:     enums.VisitStatusPlanned,
		})
	}

	inserted, err := p.store.Insert(ctx, clones)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert transferred visits")
	}

	created := len(inserted)
	p.metrics.AddVisitsCreated("transfer", created)
	p.metrics.ObserveTransfer(time.Since(started), created)
	if p.logg != nil {
		logCtx := p.logg.WithOperatorID(ctx, operatorID.String())
		logCtx = p.logg.WithFields(logCtx, map[string]any{
			"source_month": sourceMonth.String(),
			"target_month": targetMonth.String(),
			"created":      created,
		})
		p.logg.Info(logCtx, "month transfer complete")
	}

	return &TransferResult{CreatedCount: created}, nil
}

// targetDateFor maps a source date onto the target month occurrence of
// the same weekday, clamping to the last occurrence when the target
// month has fewer of that weekday.
func targetDateFor(sourceDate time.Time, targetMonth Month) (time.Time, error) {
	day := DateOnly(sourceDate)
	candidates := targetMonth.WeekdayDates(day.Weekday())
	if len(candidates) == 0 {
		// Every weekday occurs at least four times in any month, so an
		// empty bucket means the calendar math itself broke.
		return time.Time{}, pkgerrors.New(pkgerrors.CodeInternal, "no target dates for weekday").
			WithDetails(map[string]any{
				"weekday":      day.Weekday().String(),
				"target_month": targetMonth.String(),
			})
	}

	index := WeekOfMonthIndex(day)
	if index >= len(candidates) {
		index = len(candidates) - 1
	}
	return candidates[index], nil
}
