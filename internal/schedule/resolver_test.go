package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
)

type fakeVisitStore struct {
	visits      map[uuid.UUID]models.Visit
	insertCalls int
	moveCalls   int
}

func newFakeVisitStore() *fakeVisitStore {
	return &fakeVisitStore{visits: map[uuid.UUID]models.Visit{}}
}

func (f *fakeVisitStore) Insert(_ context.Context, batch []models.Visit) ([]models.Visit, error) {
	f.insertCalls++
	for i := range batch {
		if batch[i].ID == uuid.Nil {
			batch[i].ID = uuid.New()
		}
		f.visits[batch[i].ID] = batch[i]
	}
	return batch, nil
}

func (f *fakeVisitStore) Move(_ context.Context, id uuid.UUID, newDate time.Time) (*models.Visit, error) {
	f.moveCalls++
	visit, ok := f.visits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	visit.VisitDate = newDate
	visit.Status = enums.VisitStatusPlanned
	f.visits[id] = visit
	return &visit, nil
}

type fakeDirectory struct {
	operators map[uuid.UUID]models.Operator
	customers map[uuid.UUID]models.Customer
	branches  map[uuid.UUID]models.Branch
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		operators: map[uuid.UUID]models.Operator{},
		customers: map[uuid.UUID]models.Customer{},
		branches:  map[uuid.UUID]models.Branch{},
	}
}

func (f *fakeDirectory) GetOperator(_ context.Context, id uuid.UUID) (*models.Operator, error) {
	operator, ok := f.operators[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &operator, nil
}

func (f *fakeDirectory) GetCustomer(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (f *fakeDirectory) GetBranch(_ context.Context, id uuid.UUID) (*models.Branch, error) {
	branch, ok := f.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &branch, nil
}

func newTestResolver(t *testing.T, store *fakeVisitStore, dir *fakeDirectory) *Resolver {
	t.Helper()
	resolver, err := NewResolver(store, dir, nil, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return resolver
}

func assertErrorCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, typed.Code(), err)
	}
}

func TestResolveOperatorSelection(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	operatorID := uuid.New()
	dir.operators[operatorID] = models.Operator{ID: operatorID, DisplayName: "Op", IsActive: true}
	resolver := newTestResolver(t, store, dir)

	outcome, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent:           OperatorRef{OperatorID: operatorID},
		DefaultVisitType: enums.VisitTypePeriodic,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeOperatorSelected {
		t.Fatalf("expected operator_selected, got %s", outcome.Kind)
	}
	if outcome.OperatorContext == nil || *outcome.OperatorContext != operatorID {
		t.Fatalf("expected operator context %s, got %v", operatorID, outcome.OperatorContext)
	}
	if store.insertCalls != 0 || store.moveCalls != 0 {
		t.Fatal("operator selection must not touch the store")
	}
}

func TestResolveInactiveOperatorRejected(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	operatorID := uuid.New()
	dir.operators[operatorID] = models.Operator{ID: operatorID, DisplayName: "Op", IsActive: false}
	resolver := newTestResolver(t, store, dir)

	_, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent: OperatorRef{OperatorID: operatorID},
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestResolveCustomerDropWithoutOperatorContext(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	customerID := uuid.New()
	dir.customers[customerID] = models.Customer{ID: customerID}
	resolver := newTestResolver(t, store, dir)

	_, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent:           CustomerRef{CustomerID: customerID},
		TargetDate:       time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		DefaultVisitType: enums.VisitTypePeriodic,
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
	if store.insertCalls != 0 {
		t.Fatal("failed validation must not reach the store")
	}
}

func TestResolveCustomerDropCreatesPlannedVisit(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	customerID := uuid.New()
	operatorID := uuid.New()
	dir.customers[customerID] = models.Customer{ID: customerID}
	resolver := newTestResolver(t, store, dir)

	target := time.Date(2025, time.March, 5, 15, 45, 0, 0, time.UTC)
	outcome, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent:           CustomerRef{CustomerID: customerID},
		TargetDate:       target,
		OperatorContext:  &operatorID,
		DefaultVisitType: enums.VisitTypePeriodic,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeVisitCreated {
		t.Fatalf("expected visit_created, got %s", outcome.Kind)
	}
	visit := outcome.Visit
	if visit == nil {
		t.Fatal("expected created visit in outcome")
	}
	if visit.Status != enums.VisitStatusPlanned {
		t.Fatalf("expected planned status, got %s", visit.Status)
	}
	if visit.OperatorID != operatorID || visit.CustomerID != customerID {
		t.Fatal("visit refs do not match the gesture")
	}
	wantDate := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !visit.VisitDate.Equal(wantDate) {
		t.Fatalf("expected date-only %v, got %v", wantDate, visit.VisitDate)
	}
	if store.insertCalls != 1 {
		t.Fatalf("expected exactly one insert, got %d", store.insertCalls)
	}
}

func TestResolveBranchDropChecksOwnership(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	operatorID := uuid.New()
	customerID := uuid.New()
	branchID := uuid.New()
	dir.branches[branchID] = models.Branch{ID: branchID, CustomerID: uuid.New()}
	resolver := newTestResolver(t, store, dir)

	_, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent:           BranchRef{BranchID: branchID, CustomerID: customerID},
		TargetDate:       time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		OperatorContext:  &operatorID,
		DefaultVisitType: enums.VisitTypePeriodic,
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
	if store.insertCalls != 0 {
		t.Fatal("ownership failure must not reach the store")
	}
}

func TestResolveBranchDropCreatesVisitWithBranch(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	operatorID := uuid.New()
	customerID := uuid.New()
	branchID := uuid.New()
	dir.branches[branchID] = models.Branch{ID: branchID, CustomerID: customerID}
	resolver := newTestResolver(t, store, dir)

	outcome, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent:           BranchRef{BranchID: branchID, CustomerID: customerID},
		TargetDate:       time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		OperatorContext:  &operatorID,
		DefaultVisitType: enums.VisitTypeTechnical,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	visit := outcome.Visit
	if visit == nil || visit.BranchID == nil || *visit.BranchID != branchID {
		t.Fatalf("expected branch %s on visit, got %+v", branchID, visit)
	}
	if visit.VisitType != enums.VisitTypeTechnical {
		t.Fatalf("expected technical visit, got %s", visit.VisitType)
	}
}

func TestResolveMoveUpdatesExistingVisit(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	visitID := uuid.New()
	store.visits[visitID] = models.Visit{
		ID:         visitID,
		CustomerID: uuid.New(),
		OperatorID: uuid.New(),
		VisitDate:  time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		VisitType:  enums.VisitTypePeriodic,
		Status:     enums.VisitStatusCompleted,
	}
	resolver := newTestResolver(t, store, dir)

	outcome, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent:     ExistingVisitRef{VisitID: visitID},
		TargetDate: time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeVisitMoved {
		t.Fatalf("expected visit_moved, got %s", outcome.Kind)
	}
	wantDate := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	if !outcome.Visit.VisitDate.Equal(wantDate) {
		t.Fatalf("expected %v, got %v", wantDate, outcome.Visit.VisitDate)
	}
	if outcome.Visit.Status != enums.VisitStatusPlanned {
		t.Fatalf("moved visit must reset to planned, got %s", outcome.Visit.Status)
	}
	if store.moveCalls != 1 || store.insertCalls != 0 {
		t.Fatal("move must be a single store update")
	}
}

func TestResolveMoveMissingVisit(t *testing.T) {
	store := newFakeVisitStore()
	dir := newFakeDirectory()
	resolver := newTestResolver(t, store, dir)

	_, err := resolver.Resolve(context.Background(), ResolveInput{
		Intent:     ExistingVisitRef{VisitID: uuid.New()},
		TargetDate: time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
	})
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}
