package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
)

// Visit is a single scheduled technician attendance at a customer or
// branch location on one calendar date. VisitDate carries DATE
// semantics: only the date portion is meaningful, any time-of-day
// component in storage is ignored by readers.
type Visit struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index"`
	BranchID   *uuid.UUID        `gorm:"column:branch_id;type:uuid;index"`
	OperatorID uuid.UUID         `gorm:"column:operator_id;type:uuid;not null;index"`
	VisitDate  time.Time         `gorm:"column:visit_date;not null;index"`
	VisitType  enums.VisitType   `gorm:"column:visit_type;type:varchar(32);not null"`
	Status     enums.VisitStatus `gorm:"column:status;type:varchar(16);not null;default:'planned'"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
