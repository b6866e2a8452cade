package visits

import (
	"time"

	"github.com/google/uuid"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
)

// DateLayout is the wire format for visit dates. Only the calendar
// date is meaningful.
const DateLayout = "2006-01-02"

// VisitDTO is the visit payload returned to clients.
type VisitDTO struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	BranchID   *uuid.UUID `json:"branch_id,omitempty"`
	OperatorID uuid.UUID  `json:"operator_id"`
	VisitDate  string     `json:"visit_date"`
	VisitType  string     `json:"visit_type"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToVisitDTO maps a persisted visit onto its API shape.
func ToVisitDTO(visit models.Visit) VisitDTO {
	return VisitDTO{
		ID:         visit.ID,
		CustomerID: visit.CustomerID,
		BranchID:   visit.BranchID,
		OperatorID: visit.OperatorID,
		VisitDate:  visit.VisitDate.UTC().Format(DateLayout),
		VisitType:  visit.VisitType.String(),
		Status:     visit.Status.String(),
		CreatedAt:  visit.CreatedAt,
		UpdatedAt:  visit.UpdatedAt,
	}
}

// ToVisitDTOs maps a slice preserving order.
func ToVisitDTOs(visits []models.Visit) []VisitDTO {
	out := make([]VisitDTO, 0, len(visits))
	for _, visit := range visits {
		out = append(out, ToVisitDTO(visit))
	}
	return out
}
