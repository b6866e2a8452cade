package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
)

type calendarStore interface {
	List(ctx context.Context, filter visits.ListFilter) ([]models.Visit, error)
}

// Service is the scheduling facade the HTTP layer talks to. It owns
// request parsing into domain inputs and delegates to the resolver and
// planner.
type Service struct {
	resolver         *Resolver
	planner          *Planner
	store            calendarStore
	defaultVisitType enums.VisitType
}

// NewService builds the schedule service. defaultVisitType is applied
// when an assignment request does not carry an explicit visit type.
func NewService(resolver *Resolver, planner *Planner, store calendarStore, defaultVisitType enums.VisitType) (*Service, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver required")
	}
	if planner == nil {
		return nil, fmt.Errorf("planner required")
	}
	if store == nil {
		return nil, fmt.Errorf("visit store required")
	}
	if !defaultVisitType.IsValid() {
		return nil, fmt.Errorf("invalid default visit type %q", defaultVisitType)
	}
	return &Service{
		resolver:         resolver,
		planner:          planner,
		store:            store,
		defaultVisitType: defaultVisitType,
	}, nil
}

// ResolveAssignment handles one drop gesture from the wire.
func (s *Service) ResolveAssignment(ctx context.Context, request AssignmentRequest) (*AssignmentResponse, error) {
	intent, err := request.Intent()
	if err != nil {
		return nil, err
	}
	targetDate, err := request.ParseTargetDate()
	if err != nil {
		return nil, err
	}

	visitType := s.defaultVisitType
	if request.VisitType != "" {
		parsed, err := enums.ParseVisitType(request.VisitType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visit_type")
		}
		visitType = parsed
	}

	outcome, err := s.resolver.Resolve(ctx, ResolveInput{
		Intent:           intent,
		TargetDate:       targetDate,
		OperatorContext:  request.OperatorContext,
		DefaultVisitType: visitType,
	})
	if err != nil {
		return nil, err
	}
	response := ToAssignmentResponse(*outcome)
	return &response, nil
}

// TransferMonth replicates an operator's source month into the next one.
func (s *Service) TransferMonth(ctx context.Context, request TransferRequest) (*TransferResult, error) {
	if request.OperatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "operator_id required")
	}
	sourceMonth, err := ParseMonth(request.SourceMonth)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid source_month (expected YYYY-MM)")
	}
	return s.planner.Transfer(ctx, request.OperatorID, sourceMonth)
}

// CalendarMonth projects one month of visits, optionally scoped to an
// operator.
func (s *Service) CalendarMonth(ctx context.Context, month Month, operatorID *uuid.UUID) (*CalendarDTO, error) {
	if month.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month required")
	}
	records, err := s.store.List(ctx, visits.ListFilter{
		OperatorID: operatorID,
		From:       month.Start(),
		To:         month.End(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list month visits")
	}
	dto := ToCalendarDTO(Project(records, month))
	return &dto, nil
}
