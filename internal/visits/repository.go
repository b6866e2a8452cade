package visits

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luisortegam/fieldvisits-backend/pkg/db/models"
	"github.com/luisortegam/fieldvisits-backend/pkg/enums"
)

// VisitRepository defines persistence operations for scheduled visits.
type VisitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Visit, error)
	List(ctx context.Context, filter ListFilter) ([]models.Visit, error)
	Insert(ctx context.Context, visits []models.Visit) ([]models.Visit, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Visit, error)
	Move(ctx context.Context, id uuid.UUID, newDate time.Time) (*models.Visit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListFilter narrows a visit listing. From is inclusive, To exclusive;
// zero values leave the corresponding bound open.
type ListFilter struct {
	OperatorID *uuid.UUID
	From       time.Time
	To         time.Time
}

// Repository is the GORM-backed visit store.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single visit.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Visit, error) {
	var visit models.Visit
	if err := r.db.WithContext(ctx).First(&visit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// List returns visits matching the filter ordered by visit date, then
// creation time so same-day visits keep a stable order.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Visit, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{})
	if filter.OperatorID != nil {
		query = query.Where("operator_id = ?", *filter.OperatorID)
	}
	if !filter.From.IsZero() {
		query = query.Where("visit_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("visit_date < ?", filter.To)
	}

	var visits []models.Visit
	if err := query.Order("visit_date ASC, created_at ASC").Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// Insert persists a batch of visits in a single statement and returns
// them with their assigned ids.
func (r *Repository) Insert(ctx context.Context, visits []models.Visit) ([]models.Visit, error) {
	if len(visits) == 0 {
		return nil, nil
	}
	for i := range visits {
		if visits[i].ID == uuid.Nil {
			visits[i].ID = uuid.New()
		}
	}
	if err := r.db.WithContext(ctx).Create(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// Update applies the given column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Visit, error) {
	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}
	res := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Move re-dates a visit with one conditional update so the row either
// fully moves or stays untouched. The status resets to planned since a
// moved visit has not happened yet.
func (r *Repository) Move(ctx context.Context, id uuid.UUID, newDate time.Time) (*models.Visit, error) {
	return r.Update(ctx, id, map[string]any{
		"visit_date": newDate,
		"status":     enums.VisitStatusPlanned,
	})
}

// Delete removes a visit permanently.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Visit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListStalePlanned returns planned visits dated strictly before the
// cutoff, oldest first.
func (r *Repository) ListStalePlanned(ctx context.Context, cutoff time.Time, limit int) ([]models.Visit, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("status = ? AND visit_date < ?", enums.VisitStatusPlanned, cutoff).
		Order("visit_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var visits []models.Visit
	if err := query.Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}
