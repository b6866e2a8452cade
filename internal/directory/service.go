package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
	"github.com/luisortegam/fieldvisits-backend/pkg/pagination"
)

// Reader exposes the directory lookups the scheduling flows depend on.
type Reader interface {
	GetOperator(ctx context.Context, id uuid.UUID) (*models.Operator, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*models.Branch, error)
	ListActiveOperators(ctx context.Context) ([]models.Operator, error)
	ListCustomers(ctx context.Context, params pagination.Params) ([]models.Customer, *pagination.Cursor, error)
	ListBranches(ctx context.Context, customerID *uuid.UUID) ([]models.Branch, error)
}

// Service wraps the repository with error mapping plus DTO shaping for
// the HTTP layer.
type Service struct {
	repo Reader
}

// NewService builds the directory service.
func NewService(repo Reader) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("directory repository required")
	}
	return &Service{repo: repo}, nil
}

// ListOperators returns all assignable operators.
func (s *Service) ListOperators(ctx context.Context) ([]OperatorDTO, error) {
	operators, err := s.repo.ListActiveOperators(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list operators")
	}
	out := make([]OperatorDTO, 0, len(operators))
	for _, operator := range operators {
		out = append(out, toOperatorDTO(operator))
	}
	return out, nil
}

// ListCustomers returns one cursor page of customers.
func (s *Service) ListCustomers(ctx context.Context, params pagination.Params) (*CustomerListResult, error) {
	customers, next, err := s.repo.ListCustomers(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	result := &CustomerListResult{Customers: make([]CustomerDTO, 0, len(customers))}
	for _, customer := range customers {
		result.Customers = append(result.Customers, toCustomerDTO(customer))
	}
	if next != nil {
		encoded := pagination.EncodeCursor(*next)
		result.NextCursor = &encoded
	}
	return result, nil
}

// ListBranches returns a customer's branches after verifying the
// customer exists.
func (s *Service) ListBranches(ctx context.Context, customerID uuid.UUID) ([]BranchDTO, error) {
	if _, err := s.repo.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	branches, err := s.repo.ListBranches(ctx, &customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branches")
	}
	out := make([]BranchDTO, 0, len(branches))
	for _, branch := range branches {
		out = append(out, toBranchDTO(branch))
	}
	return out, nil
}
