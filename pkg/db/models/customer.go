package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a serviced account. Immutable from the scheduling
// subsystem's perspective; only the directory reads it.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayName string    `gorm:"column:display_name;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
