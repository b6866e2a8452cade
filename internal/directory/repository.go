package directory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/pagination"
)

// Repository is the read-only GORM access layer for operators,
// customers and branches. Nothing in the scheduling subsystem writes
// these tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOperator loads one operator.
func (r *Repository) GetOperator(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).First(&operator, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

// GetCustomer loads one customer.
func (r *Repository) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetBranch loads one branch.
func (r *Repository) GetBranch(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// ListActiveOperators returns assignable operators ordered by name.
func (r *Repository) ListActiveOperators(ctx context.Context) ([]models.Operator, error) {
	var operators []models.Operator
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_name ASC, id ASC").
		Find(&operators).Error
	if err != nil {
		return nil, err
	}
	return operators, nil
}

// ListCustomers returns a page of customers plus the cursor for the
// next page, nil when this is the last one.
func (r *Repository) ListCustomers(ctx context.Context, params pagination.Params) ([]models.Customer, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Customer{})
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&customers).Error; err != nil {
		return nil, nil, err
	}

	if len(customers) > normalized {
		customers = customers[:normalized]
		// Cursor points at the last returned row; the strict < in the
		// next query then resumes on the row after it.
		last := customers[normalized-1]
		return customers, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return customers, nil, nil
}

// ListBranches returns branches, optionally scoped to one customer.
func (r *Repository) ListBranches(ctx context.Context, customerID *uuid.UUID) ([]models.Branch, error) {
	query := r.db.WithContext(ctx).Model(&models.Branch{})
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	var branches []models.Branch
	if err := query.Order("display_name ASC, id ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
