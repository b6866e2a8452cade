package visits

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
	"github.com/luisortegam/fieldvisits-backend/pkg/types"
)

// Service exposes visit listing and lifecycle operations to the HTTP
// layer. Creation and moves go through the schedule resolver instead.
type Service interface {
	ListVisits(ctx context.Context, input ListVisitsInput) ([]VisitDTO, error)
	GetVisit(ctx context.Context, id uuid.UUID) (*VisitDTO, error)
	UpdateVisit(ctx context.Context, id uuid.UUID, input UpdateVisitInput) (*VisitDTO, error)
	DeleteVisit(ctx context.Context, id uuid.UUID) error
}

// ListVisitsInput narrows a listing. From/To are half-open date bounds.
type ListVisitsInput struct {
	OperatorID *uuid.UUID
	From       time.Time
	To         time.Time
}

// UpdateVisitInput holds optional mutation values for a visit. Branch
// distinguishes "leave alone" (zero value) from "clear" (Valid with a
// nil Value).
type UpdateVisitInput struct {
	VisitType *enums.VisitType
	Status    *enums.VisitStatus
	Branch    types.NullableUUID
}

type branchReader interface {
	GetBranch(ctx context.Context, id uuid.UUID) (*models.Branch, error)
}

type service struct {
	repo     VisitRepository
	branches branchReader
	logg     *logger.Logger
}

// NewService builds the visit service.
func NewService(repo VisitRepository, branches branchReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("visit repository required")
	}
	if branches == nil {
		return nil, fmt.Errorf("branch reader required")
	}
	return &service{repo: repo, branches: branches, logg: logg}, nil
}

func (s *service) ListVisits(ctx context.Context, input ListVisitsInput) ([]VisitDTO, error) {
	records, err := s.repo.List(ctx, ListFilter{
		OperatorID: input.OperatorID,
		From:       input.From,
		To:         input.To,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list visits")
	}
	return ToVisitDTOs(records), nil
}

func (s *service) GetVisit(ctx context.Context, id uuid.UUID) (*VisitDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load visit")
	}
	dto := ToVisitDTO(*record)
	return &dto, nil
}

func (s *service) UpdateVisit(ctx context.Context, id uuid.UUID, input UpdateVisitInput) (*VisitDTO, error) {
	updates := map[string]any{}
	if input.VisitType != nil {
		if !input.VisitType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visit type")
		}
		updates["visit_type"] = *input.VisitType
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
	}
	if len(updates) == 0 && input.Status == nil && !input.Branch.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load visit")
	}
	if input.Branch.Valid {
		if input.Branch.Value != nil {
			branch, branchErr := s.branches.GetBranch(ctx, *input.Branch.Value)
			if branchErr != nil {
				if errors.Is(branchErr, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, branchErr, "load branch")
			}
			if branch.CustomerID != current.CustomerID {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch does not belong to customer")
			}
		}
		updates["branch_id"] = input.Branch.Value
	}
	if input.Status != nil && *input.Status != current.Status {
		if err := validateStatusTransition(current.Status, *input.Status); err != nil {
			return nil, err
		}
		updates["status"] = *input.Status
	}
	if len(updates) == 0 {
		dto := ToVisitDTO(*current)
		return &dto, nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, mapRepoError(err, "update visit")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithVisitID(ctx, id.String()), "visit updated")
	}
	dto := ToVisitDTO(*updated)
	return &dto, nil
}

func (s *service) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "delete visit")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithVisitID(ctx, id.String()), "visit deleted")
	}
	return nil
}

// validateStatusTransition allows planned visits to close out either
// way; closed visits stay closed.
func validateStatusTransition(from, to enums.VisitStatus) error {
	if from == enums.VisitStatusPlanned {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "visit is no longer planned").
		WithDetails(map[string]any{"from": from.String(), "to": to.String()})
}

func mapRepoError(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "visit not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
