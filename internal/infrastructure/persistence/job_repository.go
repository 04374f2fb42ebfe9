package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// GormJobRepository implements job.Repository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// FindByID loads a job with its items and parcel
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	var j job.Job
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Parcel").
		First(&j, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// FindAll lists jobs with pagination. Filters["status"] and
// Filters["store_code"] narrow the result.
func (r *GormJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]job.Job, error) {
	var jobs []job.Job
	db := r.jobQuery(ctx, filter).Preload("Items").Preload("Parcel")
	if err := applyFilter(db, filter).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Save persists the job row and any new items. Item progress updates go
// through SaveItem so sibling lines are not rewritten.
func (r *GormJobRepository) Save(ctx context.Context, j *job.Job) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(j).Error
}

// SaveItem persists a single changed line
func (r *GormJobRepository) SaveItem(ctx context.Context, item *job.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveParcel persists the job's parcel
func (r *GormJobRepository) SaveParcel(ctx context.Context, parcel *job.Parcel) error {
	return r.db.WithContext(ctx).Save(parcel).Error
}

// Count returns the number of jobs matching the filter
func (r *GormJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.jobQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormJobRepository) jobQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&job.Job{})
	if status, ok := filter.Filters["status"]; ok {
		db = db.Where("status = ?", status)
	}
	if storeCode, ok := filter.Filters["store_code"]; ok {
		db = db.Where("store_code = ?", storeCode)
	}
	return db
}

var _ job.Repository = (*GormJobRepository)(nil)
