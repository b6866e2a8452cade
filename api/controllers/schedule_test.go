package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/internal/schedule"
	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
)

type memoryVisitStore struct {
	table map[uuid.UUID]models.Visit
	order []uuid.UUID
}

func newMemoryVisitStore() *memoryVisitStore {
	return &memoryVisitStore{table: map[uuid.UUID]models.Visit{}}
}

func (m *memoryVisitStore) Insert(_ context.Context, batch []models.Visit) ([]models.Visit, error) {
	for i := range batch {
		if batch[i].ID == uuid.Nil {
			batch[i].ID = uuid.New()
		}
		m.table[batch[i].ID] = batch[i]
		m.order = append(m.order, batch[i].ID)
	}
	return batch, nil
}

func (m *memoryVisitStore) Move(_ context.Context, id uuid.UUID, newDate time.Time) (*models.Visit, error) {
	visit, ok := m.table[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	visit.VisitDate = newDate
	visit.Status = enums.VisitStatusPlanned
	m.table[id] = visit
	return &visit, nil
}

func (m *memoryVisitStore) List(_ context.Context, filter visits.ListFilter) ([]models.Visit, error) {
	var out []models.Visit
	for _, id := range m.order {
		visit := m.table[id]
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

type memoryDirectory struct {
	operators map[uuid.UUID]models.Operator
	customers map[uuid.UUID]models.Customer
	branches  map[uuid.UUID]models.Branch
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{
		operators: map[uuid.UUID]models.Operator{},
		customers: map[uuid.UUID]models.Customer{},
		branches:  map[uuid.UUID]models.Branch{},
	}
}

func (m *memoryDirectory) GetOperator(_ context.Context, id uuid.UUID) (*models.Operator, error) {
	operator, ok := m.operators[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &operator, nil
}

func (m *memoryDirectory) GetCustomer(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := m.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &customer, nil
}

func (m *memoryDirectory) GetBranch(_ context.Context, id uuid.UUID) (*models.Branch, error) {
	branch, ok := m.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &branch, nil
}

func newScheduleTestRouter(t *testing.T, store *memoryVisitStore, dir *memoryDirectory) http.Handler {
	t.Helper()
	resolver, err := schedule.NewResolver(store, dir, nil, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	planner, err := schedule.NewPlanner(store, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	svc, err := schedule.NewService(resolver, planner, store, enums.VisitTypePeriodic)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	router := chi.NewRouter()
	router.Post("/api/v1/schedule/assignments", ResolveAssignment(svc, nil))
	router.Post("/api/v1/schedule/transfers", TransferMonth(svc, nil))
	router.Get("/api/v1/schedule/calendar", CalendarMonth(svc, nil))
	return router
}

func TestResolveAssignmentCreatesVisit(t *testing.T) {
	store := newMemoryVisitStore()
	dir := newMemoryDirectory()
	customerID := uuid.New()
	operatorID := uuid.New()
	dir.customers[customerID] = models.Customer{ID: customerID}
	router := newScheduleTestRouter(t, store, dir)

	body := `{"intent_type":"customer","customer_id":"` + customerID.String() +
		`","target_date":"2025-03-05","operator_context":"` + operatorID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/assignments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data schedule.AssignmentResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Outcome != "visit_created" {
		t.Fatalf("expected visit_created, got %s", envelope.Data.Outcome)
	}
	if envelope.Data.Visit == nil || envelope.Data.Visit.VisitDate != "2025-03-05" {
		t.Fatalf("unexpected visit payload: %+v", envelope.Data.Visit)
	}
	if len(store.table) != 1 {
		t.Fatalf("expected one stored visit, got %d", len(store.table))
	}
}

func TestResolveAssignmentWithoutOperatorContext(t *testing.T) {
	store := newMemoryVisitStore()
	dir := newMemoryDirectory()
	customerID := uuid.New()
	dir.customers[customerID] = models.Customer{ID: customerID}
	router := newScheduleTestRouter(t, store, dir)

	body := `{"intent_type":"customer","customer_id":"` + customerID.String() + `","target_date":"2025-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/assignments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
		t.Fatalf("expected validation error envelope, got %s", rec.Body.String())
	}
	if len(store.table) != 0 {
		t.Fatal("failed drop must not persist anything")
	}
}

func TestTransferMonthEndpoint(t *testing.T) {
	store := newMemoryVisitStore()
	dir := newMemoryDirectory()
	operatorID := uuid.New()
	for _, day := range []int{4, 11, 18, 25} {
		visit := models.Visit{
			ID:         uuid.New(),
			CustomerID: uuid.New(),
			OperatorID: operatorID,
			VisitDate:  time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
			VisitType:  enums.VisitTypePeriodic,
			Status:     enums.VisitStatusPlanned,
		}
		store.table[visit.ID] = visit
		store.order = append(store.order, visit.ID)
	}
	router := newScheduleTestRouter(t, store, dir)

	body := `{"operator_id":"` + operatorID.String() + `","source_month":"2024-03"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/transfers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data schedule.TransferResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.CreatedCount != 4 {
		t.Fatalf("expected created_count 4, got %d", envelope.Data.CreatedCount)
	}
}

func TestCalendarMonthEndpoint(t *testing.T) {
	store := newMemoryVisitStore()
	dir := newMemoryDirectory()
	operatorID := uuid.New()
	visit := models.Visit{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		OperatorID: operatorID,
		VisitDate:  time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		VisitType:  enums.VisitTypePeriodic,
		Status:     enums.VisitStatusPlanned,
	}
	store.table[visit.ID] = visit
	store.order = append(store.order, visit.ID)
	router := newScheduleTestRouter(t, store, dir)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/calendar?month=2025-01&operator_id="+operatorID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data schedule.CalendarDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 1 || len(envelope.Data.Days) != 1 {
		t.Fatalf("unexpected calendar payload: %+v", envelope.Data)
	}
	if envelope.Data.Days[0].Date != "2025-01-15" {
		t.Fatalf("expected day 2025-01-15, got %s", envelope.Data.Days[0].Date)
	}

	missing := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/calendar", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, missing)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without month, got %d", rec.Code)
	}
}
