package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stouper/wms-sub002/internal/domain/catalog"
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// GormSkuRepository implements catalog.SkuRepository using GORM
type GormSkuRepository struct {
	db *gorm.DB
}

// NewGormSkuRepository creates a new GormSkuRepository
func NewGormSkuRepository(db *gorm.DB) *GormSkuRepository {
	return &GormSkuRepository{db: db}
}

// FindByID finds a SKU by its ID
func (r *GormSkuRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Sku, error) {
	var sku catalog.Sku
	if err := r.db.WithContext(ctx).First(&sku, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// FindByCode finds a SKU by its canonical code
func (r *GormSkuRepository) FindByCode(ctx context.Context, code string) (*catalog.Sku, error) {
	var sku catalog.Sku
	if err := r.db.WithContext(ctx).First(&sku, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// FindByMakerCode returns every SKU carrying the maker code. More than one
// row means the code is ambiguous; the resolver decides what to do with that.
func (r *GormSkuRepository) FindByMakerCode(ctx context.Context, makerCode string) ([]catalog.Sku, error) {
	var skus []catalog.Sku
	if err := r.db.WithContext(ctx).
		Where("maker_code = ?", makerCode).
		Order("created_at ASC").
		Find(&skus).Error; err != nil {
		return nil, err
	}
	return skus, nil
}

// FindAll lists SKUs with pagination
func (r *GormSkuRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Sku, error) {
	var skus []catalog.Sku
	db := r.db.WithContext(ctx).Model(&catalog.Sku{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("code LIKE ? OR maker_code LIKE ? OR name LIKE ?", pattern, pattern, pattern)
	}
	if err := applyFilter(db, filter).Find(&skus).Error; err != nil {
		return nil, err
	}
	return skus, nil
}

// Save creates or updates a SKU
func (r *GormSkuRepository) Save(ctx context.Context, sku *catalog.Sku) error {
	return r.db.WithContext(ctx).Save(sku).Error
}

// Count returns the number of SKUs matching the filter
func (r *GormSkuRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&catalog.Sku{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("code LIKE ? OR maker_code LIKE ? OR name LIKE ?", pattern, pattern, pattern)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ catalog.SkuRepository = (*GormSkuRepository)(nil)
