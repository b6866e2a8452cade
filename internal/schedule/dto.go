package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
)

// IntentType discriminates assignment request payloads on the wire.
type IntentType string

const (
	IntentTypeOperator IntentType = "operator"
	IntentTypeCustomer IntentType = "customer"
	IntentTypeBranch   IntentType = "branch"
	IntentTypeVisit    IntentType = "visit"
)

// AssignmentRequest is the drop-gesture payload. The id field that
// must be set depends on intent_type.
type AssignmentRequest struct {
	IntentType      IntentType `json:"intent_type" validate:"required,oneof=operator customer branch visit"`
	OperatorID      *uuid.UUID `json:"operator_id,omitempty"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	BranchID        *uuid.UUID `json:"branch_id,omitempty"`
	VisitID         *uuid.UUID `json:"visit_id,omitempty"`
	TargetDate      string     `json:"target_date" validate:"required"`
	OperatorContext *uuid.UUID `json:"operator_context,omitempty"`
	VisitType       string     `json:"visit_type,omitempty"`
}

// Intent converts the wire payload into the sealed intent union.
func (r AssignmentRequest) Intent() (Intent, error) {
	switch r.IntentType {
	case IntentTypeOperator:
		if r.OperatorID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "operator_id required for operator intent")
		}
		return OperatorRef{OperatorID: *r.OperatorID}, nil
	case IntentTypeCustomer:
		if r.CustomerID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_id required for customer intent")
		}
		return CustomerRef{CustomerID: *r.CustomerID}, nil
	case IntentTypeBranch:
		if r.BranchID == nil || r.CustomerID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch_id and customer_id required for branch intent")
		}
		return BranchRef{BranchID: *r.BranchID, CustomerID: *r.CustomerID}, nil
	case IntentTypeVisit:
		if r.VisitID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "visit_id required for visit intent")
		}
		return ExistingVisitRef{VisitID: *r.VisitID}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown intent_type")
	}
}

// ParseTargetDate parses the YYYY-MM-DD target date.
func (r AssignmentRequest) ParseTargetDate() (time.Time, error) {
	parsed, err := time.Parse(visits.DateLayout, r.TargetDate)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid target_date (expected YYYY-MM-DD)")
	}
	return parsed, nil
}

// TransferRequest asks for a month transfer.
type TransferRequest struct {
	OperatorID  uuid.UUID `json:"operator_id" validate:"required"`
	SourceMonth string    `json:"source_month" validate:"required"`
}

// AssignmentResponse reports what a drop gesture did.
type AssignmentResponse struct {
	Outcome         string           `json:"outcome"`
	OperatorContext *uuid.UUID       `json:"operator_context,omitempty"`
	Visit           *visits.VisitDTO `json:"visit,omitempty"`
}

// CalendarDayDTO is one non-empty day of the calendar projection.
type CalendarDayDTO struct {
	Date   string            `json:"date"`
	Visits []visits.VisitDTO `json:"visits"`
}

// CalendarDTO is the month projection payload.
type CalendarDTO struct {
	Month string           `json:"month"`
	Days  []CalendarDayDTO `json:"days"`
	Total int              `json:"total"`
}

// ToAssignmentResponse shapes a resolver outcome for the wire.
func ToAssignmentResponse(outcome Outcome) AssignmentResponse {
	response := AssignmentResponse{
		Outcome:         string(outcome.Kind),
		OperatorContext: outcome.OperatorContext,
	}
	if outcome.Visit != nil {
		dto := visits.ToVisitDTO(*outcome.Visit)
		response.Visit = &dto
	}
	return response
}

// ToCalendarDTO flattens a calendar into date-ordered days.
func ToCalendarDTO(calendar Calendar) CalendarDTO {
	dto := CalendarDTO{Month: calendar.Month.String(), Days: []CalendarDayDTO{}, Total: calendar.Total()}
	for day := 1; day <= calendar.Month.Days(); day++ {
		bucket := calendar.Days[day]
		if len(bucket) == 0 {
			continue
		}
		date := time.Date(calendar.Month.Year, calendar.Month.Month, day, 0, 0, 0, 0, time.UTC)
		dto.Days = append(dto.Days, CalendarDayDTO{
			Date:   date.Format(visits.DateLayout),
			Visits: visits.ToVisitDTOs(bucket),
		})
	}
	return dto
}
