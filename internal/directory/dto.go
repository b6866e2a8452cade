package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
)

// OperatorDTO is the operator payload returned to clients.
type OperatorDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerDTO is the customer payload returned to clients.
type CustomerDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// BranchDTO is the branch payload returned to clients.
type BranchDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CustomerID  uuid.UUID `json:"customer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerListResult is one page of customers.
type CustomerListResult struct {
	Customers  []CustomerDTO `json:"customers"`
	NextCursor *string       `json:"next_cursor,omitempty"`
}

func toOperatorDTO(operator models.Operator) OperatorDTO {
	return OperatorDTO{
		ID:          operator.ID,
		DisplayName: operator.DisplayName,
		IsActive:    operator.IsActive,
		CreatedAt:   operator.CreatedAt,
	}
}

func toCustomerDTO(customer models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          customer.ID,
		DisplayName: customer.DisplayName,
		CreatedAt:   customer.CreatedAt,
	}
}

func toBranchDTO(branch models.Branch) BranchDTO {
	return BranchDTO{
		ID:          branch.ID,
		DisplayName: branch.DisplayName,
		CustomerID:  branch.CustomerID,
		CreatedAt:   branch.CreatedAt,
	}
}
