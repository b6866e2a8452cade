package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
	"github.com/luisortegam/fieldvisits-backend/pkg/metrics"
)

type visitWriter interface {
	Insert(ctx context.Context, visits []models.Visit) ([]models.Visit, error)
	Move(ctx context.Context, id uuid.UUID, newDate time.Time) (*models.Visit, error)
}

type directoryReader interface {
	GetOperator(ctx context.Context, id uuid.UUID) (*models.Operator, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*models.Branch, error)
}

// OutcomeKind discriminates the result of resolving an intent.
type OutcomeKind string

const (
	OutcomeOperatorSelected OutcomeKind = "operator_selected"
	OutcomeVisitCreated     OutcomeKind = "visit_created"
	OutcomeVisitMoved       OutcomeKind = "visit_moved"
)

// Outcome describes what a resolved intent did. OperatorContext is set
// for OutcomeOperatorSelected; Visit is set for the mutation outcomes.
type Outcome struct {
	Kind            OutcomeKind
	OperatorContext *uuid.UUID
	Visit           *models.Visit
}

// ResolveInput carries one drop gesture. OperatorContext is the
// caller's explicitly tracked selection; it is never inferred here.
type ResolveInput struct {
	Intent           Intent
	TargetDate       time.Time
	OperatorContext  *uuid.UUID
	DefaultVisitType enums.VisitType
}

// Resolver turns a single drop gesture into at most one visit store
// mutation.
type Resolver struct {
	store     visitWriter
	directory directoryReader
	metrics   *metrics.ScheduleMetrics
	logg      *logger.Logger
}

// NewResolver builds an assignment resolver with the required dependencies.
func NewResolver(store visitWriter, directory directoryReader, m *metrics.ScheduleMetrics, logg *logger.Logger) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("visit store required")
	}
	if directory == nil {
		return nil, fmt.Errorf("directory reader required")
	}
	return &Resolver{store: store, directory: directory, metrics: m, logg: logg}, nil
}

// Resolve handles one gesture. Validation failures are raised before
// any store call, so a failed resolve never leaves partial state.
func (r *Resolver) Resolve(ctx context.Context, input ResolveInput) (*Outcome, error) {
	if input.Intent == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "intent required")
	}

	switch intent := input.Intent.(type) {
	case OperatorRef:
		return r.selectOperator(ctx, intent)
	case CustomerRef:
		return r.createVisit(ctx, input, intent.CustomerID, nil)
	case BranchRef:
		return r.createBranchVisit(ctx, input, intent)
	case ExistingVisitRef:
		return r.moveVisit(ctx, intent.VisitID, input.TargetDate)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown intent")
	}
}

func (r *Resolver) selectOperator(ctx context.Context, intent OperatorRef) (*Outcome, error) {
	if intent.OperatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "operator id required")
	}
	operator, err := r.directory.GetOperator(ctx, intent.OperatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "operator not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load operator")
	}
	if !operator.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "operator is inactive")
	}
	id := operator.ID
	return &Outcome{Kind: OutcomeOperatorSelected, OperatorContext: &id}, nil
}

func (r *Resolver) createBranchVisit(ctx context.Context, input ResolveInput, intent BranchRef) (*Outcome, error) {
	if intent.BranchID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch id required")
	}
	branch, err := r.directory.GetBranch(ctx, intent.BranchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load branch")
	}
	if branch.CustomerID != intent.CustomerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch does not belong to customer")
	}
	branchID := branch.ID
	outcome, err := r.createVisit(ctx, input, branch.CustomerID, &branchID)
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (r *Resolver) createVisit(ctx context.Context, input ResolveInput, customerID uuid.UUID, branchID *uuid.UUID) (*Outcome, error) {
	if input.OperatorContext == nil || *input.OperatorContext == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no operator selected")
	}
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.TargetDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target date required")
	}
	visitType := input.DefaultVisitType
	if !visitType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visit type").WithDetails(map[string]any{"visit_type": visitType.String()})
	}

	if branchID == nil {
		if _, err := r.directory.GetCustomer(ctx, customerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}
	}

	// Duplicates on the same day for the same operator are allowed;
	// there is no uniqueness check here on purpose.
	visit := models.Visit{
		CustomerID: customerID,
		BranchID:   branchID,
		OperatorID: *input.OperatorContext,
		VisitDate:  DateOnly(input.TargetDate),
		VisitType:  visitType,
		Status:     enums.VisitStatusPlanned,
	}

	inserted, err := r.store.Insert(ctx, []models.Visit{visit})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert visit")
	}
	if len(inserted) != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "insert returned unexpected row count")
	}

	r.metrics.IncVisitCreated("assignment")
	if r.logg != nil {
		created := inserted[0]
		logCtx := r.logg.WithVisitID(ctx, created.ID.String())
		logCtx = r.logg.WithOperatorID(logCtx, created.OperatorID.String())
		r.logg.Info(logCtx, "visit created")
	}

	created := inserted[0]
	return &Outcome{Kind: OutcomeVisitCreated, Visit: &created}, nil
}

// moveVisit re-dates an existing visit with a single conditional
// update. The legacy delete-then-insert sequence had a window where
// the delete landed and the insert did not, permanently losing the
// visit; the atomic update removes that window entirely.
func (r *Resolver) moveVisit(ctx context.Context, visitID uuid.UUID, targetDate time.Time) (*Outcome, error) {
	if visitID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visit id required")
	}
	if targetDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target date required")
	}

	moved, err := r.store.Move(ctx, visitID, DateOnly(targetDate))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "visit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "move visit")
	}

	r.metrics.IncVisitMoved()
	if r.logg != nil {
		logCtx := r.logg.WithVisitID(ctx, moved.ID.String())
		r.logg.Info(logCtx, "visit moved")
	}

	return &Outcome{Kind: OutcomeVisitMoved, Visit: moved}, nil
}
