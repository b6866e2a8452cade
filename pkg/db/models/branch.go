package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a sub-location belonging to exactly one customer.
type Branch struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayName string    `gorm:"column:display_name;not null"`
	CustomerID  uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
