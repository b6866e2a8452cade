package visits

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
)

func setupVisitsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS branches (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  customer_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS operators (
  id TEXT PRIMARY KEY,
  display_name TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS visits (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  branch_id TEXT,
  operator_id TEXT NOT NULL,
  visit_date DATETIME NOT NULL,
  visit_type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'planned',
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM visits")
		db.Exec("DELETE FROM branches")
		db.Exec("DELETE FROM operators")
		db.Exec("DELETE FROM customers")
	})
	return db
}

func mustCreateCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{ID: uuid.New(), DisplayName: "Test Customer"}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func mustCreateBranch(t *testing.T, db *gorm.DB, customerID uuid.UUID) *models.Branch {
	t.Helper()
	branch := &models.Branch{ID: uuid.New(), DisplayName: "Test Branch", CustomerID: customerID}
	require.NoError(t, db.Create(branch).Error)
	return branch
}

func mustCreateOperator(t *testing.T, db *gorm.DB, active bool) *models.Operator {
	t.Helper()
	operator := &models.Operator{ID: uuid.New(), DisplayName: "Test Operator", IsActive: active}
	require.NoError(t, db.Create(operator).Error)
	return operator
}

func mustCreateVisit(t *testing.T, db *gorm.DB, customerID, operatorID uuid.UUID, date time.Time) *models.Visit {
	t.Helper()
	visit := &models.Visit{
		ID:         uuid.New(),
		CustomerID: customerID,
		OperatorID: operatorID,
		VisitDate:  date,
		VisitType:  enums.VisitTypePeriodic,
		Status:     enums.VisitStatusPlanned,
	}
	require.NoError(t, db.Create(visit).Error)
	return visit
}
