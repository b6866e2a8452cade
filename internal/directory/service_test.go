package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
	"github.com/luisortegam/fieldvisits-backend/pkg/pagination"
)

type fakeReader struct {
	customers map[uuid.UUID]models.Customer
	branches  []models.Branch
}

func (f *fakeReader) GetOperator(context.Context, uuid.UUID) (*models.Operator, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReader) GetCustomer(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (f *fakeReader) GetBranch(context.Context, uuid.UUID) (*models.Branch, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReader) ListActiveOperators(context.Context) ([]models.Operator, error) {
	return nil, nil
}

func (f *fakeReader) ListCustomers(context.Context, pagination.Params) ([]models.Customer, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeReader) ListBranches(_ context.Context, customerID *uuid.UUID) ([]models.Branch, error) {
	var out []models.Branch
	for _, branch := range f.branches {
		if customerID == nil || branch.CustomerID == *customerID {
			out = append(out, branch)
		}
	}
	return out, nil
}

func TestServiceListBranchesUnknownCustomer(t *testing.T) {
	svc, err := NewService(&fakeReader{customers: map[uuid.UUID]models.Customer{}})
	require.NoError(t, err)

	_, err = svc.ListBranches(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceListBranchesScopesToCustomer(t *testing.T) {
	customerID := uuid.New()
	reader := &fakeReader{
		customers: map[uuid.UUID]models.Customer{
			customerID: {ID: customerID, DisplayName: "Acme"},
		},
		branches: []models.Branch{
			{ID: uuid.New(), DisplayName: "North", CustomerID: customerID},
			{ID: uuid.New(), DisplayName: "Other", CustomerID: uuid.New()},
		},
	}
	svc, err := NewService(reader)
	require.NoError(t, err)

	branches, err := svc.ListBranches(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, "North", branches[0].DisplayName)
}
