package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a technician who performs visits. Only active operators
// are assignable.
type Operator struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayName string    `gorm:"column:display_name;not null"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
