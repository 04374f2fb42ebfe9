package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// GormLocationRepository implements warehouse.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	var loc warehouse.Location
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindByStoreAndCode finds a location by its code within a store
func (r *GormLocationRepository) FindByStoreAndCode(ctx context.Context, storeCode, code string) (*warehouse.Location, error) {
	var loc warehouse.Location
	if err := r.db.WithContext(ctx).
		First(&loc, "store_code = ? AND code = ?", warehouse.NormalizeCode(storeCode), warehouse.NormalizeCode(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindByStore lists a store's locations with pagination
func (r *GormLocationRepository) FindByStore(ctx context.Context, storeCode string, filter shared.Filter) ([]warehouse.Location, error) {
	var locations []warehouse.Location
	db := r.db.WithContext(ctx).Model(&warehouse.Location{}).
		Where("store_code = ?", warehouse.NormalizeCode(storeCode))
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("code LIKE ? OR name LIKE ?", pattern, pattern)
	}
	if err := applyFilter(db, filter).Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, loc *warehouse.Location) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

// Delete removes a location. Reserved slots are refused here as the last
// line of defense; the handler layer rejects them earlier with a nicer
// message.
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	loc, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if loc.IsReserved() {
		return shared.ErrProtectedLocation
	}

	result := r.db.WithContext(ctx).Delete(&warehouse.Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of locations in a store matching the filter
func (r *GormLocationRepository) Count(ctx context.Context, storeCode string, filter shared.Filter) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&warehouse.Location{}).
		Where("store_code = ?", warehouse.NormalizeCode(storeCode))
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("code LIKE ? OR name LIKE ?", pattern, pattern)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ warehouse.LocationRepository = (*GormLocationRepository)(nil)
