package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
	pkgerrors "github.com/luisortegam/fieldvisits-backend/pkg/errors"
)

// fakeScheduleStore backs the whole service: resolver writes, planner
// clones and calendar reads all hit the same in-memory table.
type fakeScheduleStore struct {
	table map[uuid.UUID]models.Visit
	order []uuid.UUID
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{table: map[uuid.UUID]models.Visit{}}
}

func (f *fakeScheduleStore) Insert(_ context.Context, batch []models.Visit) ([]models.Visit, error) {
	for i := range batch {
		if batch[i].ID == uuid.Nil {
			batch[i].ID = uuid.New()
		}
		f.table[batch[i].ID] = batch[i]
		f.order = append(f.order, batch[i].ID)
	}
	return batch, nil
}

func (f *fakeScheduleStore) Move(_ context.Context, id uuid.UUID, newDate time.Time) (*models.Visit, error) {
	visit, ok := f.table[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	visit.VisitDate = newDate
	visit.Status = enums.VisitStatusPlanned
	f.table[id] = visit
	return &visit, nil
}

func (f *fakeScheduleStore) List(_ context.Context, filter visits.ListFilter) ([]models.Visit, error) {
	var out []models.Visit
	for _, id := range f.order {
		visit := f.table[id]
		if filter.OperatorID != nil && visit.OperatorID != *filter.OperatorID {
			continue
		}
		if !filter.From.IsZero() && visit.VisitDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !visit.VisitDate.Before(filter.To) {
			continue
		}
		out = append(out, visit)
	}
	return out, nil
}

func newTestService(t *testing.T, store *fakeScheduleStore, dir *fakeDirectory) *Service {
	t.Helper()
	resolver, err := NewResolver(store, dir, nil, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	planner, err := NewPlanner(store, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	svc, err := NewService(resolver, planner, store, enums.VisitTypePeriodic)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceResolveAssignmentParsesRequest(t *testing.T) {
	store := newFakeScheduleStore()
	dir := newFakeDirectory()
	customerID := uuid.New()
	operatorID := uuid.New()
	dir.customers[customerID] = models.Customer{ID: customerID}
	svc := newTestService(t, store, dir)

	response, err := svc.ResolveAssignment(context.Background(), AssignmentRequest{
		IntentType:      IntentTypeCustomer,
		CustomerID:      &customerID,
		TargetDate:      "2025-03-05",
		OperatorContext: &operatorID,
	})
	if err != nil {
		t.Fatalf("resolve assignment: %v", err)
	}
	if response.Outcome != string(OutcomeVisitCreated) {
		t.Fatalf("expected visit_created, got %s", response.Outcome)
	}
	if response.Visit == nil || response.Visit.VisitDate != "2025-03-05" {
		t.Fatalf("unexpected visit payload: %+v", response.Visit)
	}
	if response.Visit.VisitType != enums.VisitTypePeriodic.String() {
		t.Fatalf("expected default visit type, got %s", response.Visit.VisitType)
	}
}

func TestServiceResolveAssignmentBadDate(t *testing.T) {
	store := newFakeScheduleStore()
	dir := newFakeDirectory()
	customerID := uuid.New()
	svc := newTestService(t, store, dir)

	_, err := svc.ResolveAssignment(context.Background(), AssignmentRequest{
		IntentType: IntentTypeCustomer,
		CustomerID: &customerID,
		TargetDate: "05/03/2025",
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceMoveShiftsCalendarProjection(t *testing.T) {
	store := newFakeScheduleStore()
	dir := newFakeDirectory()
	svc := newTestService(t, store, dir)

	operatorID := uuid.New()
	visit := models.Visit{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		OperatorID: operatorID,
		VisitDate:  time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC),
		VisitType:  enums.VisitTypePeriodic,
		Status:     enums.VisitStatusPlanned,
	}
	if _, err := store.Insert(context.Background(), []models.Visit{visit}); err != nil {
		t.Fatalf("seed visit: %v", err)
	}

	visitID := visit.ID
	if _, err := svc.ResolveAssignment(context.Background(), AssignmentRequest{
		IntentType: IntentTypeVisit,
		VisitID:    &visitID,
		TargetDate: "2025-04-02",
	}); err != nil {
		t.Fatalf("move: %v", err)
	}

	march, err := svc.CalendarMonth(context.Background(), Month{Year: 2025, Month: time.March}, &operatorID)
	if err != nil {
		t.Fatalf("march calendar: %v", err)
	}
	if march.Total != 0 {
		t.Fatalf("march should be empty after move, got %d", march.Total)
	}

	april, err := svc.CalendarMonth(context.Background(), Month{Year: 2025, Month: time.April}, &operatorID)
	if err != nil {
		t.Fatalf("april calendar: %v", err)
	}
	if april.Total != 1 {
		t.Fatalf("april should have the moved visit, got %d", april.Total)
	}
	if len(april.Days) != 1 || april.Days[0].Date != "2025-04-02" {
		t.Fatalf("unexpected april days: %+v", april.Days)
	}
	moved := april.Days[0].Visits[0]
	if moved.ID != visit.ID || moved.CustomerID != visit.CustomerID || moved.OperatorID != visit.OperatorID {
		t.Fatal("moved visit lost its refs")
	}
}

func TestServiceTransferMonthParsesRequest(t *testing.T) {
	store := newFakeScheduleStore()
	dir := newFakeDirectory()
	svc := newTestService(t, store, dir)
	operatorID := uuid.New()

	if _, err := store.Insert(context.Background(), []models.Visit{{
		CustomerID: uuid.New(),
		OperatorID: operatorID,
		VisitDate:  time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		VisitType:  enums.VisitTypePeriodic,
		Status:     enums.VisitStatusPlanned,
	}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	result, err := svc.TransferMonth(context.Background(), TransferRequest{
		OperatorID:  operatorID,
		SourceMonth: "2024-03",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if result.CreatedCount != 1 {
		t.Fatalf("expected 1 clone, got %d", result.CreatedCount)
	}

	_, err = svc.TransferMonth(context.Background(), TransferRequest{
		OperatorID:  operatorID,
		SourceMonth: "03-2024",
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}
