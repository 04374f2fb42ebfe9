package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// GormEntryRepository implements ledger.EntryRepository using GORM. Entries
// are insert-only; there is no update or delete path in this repository.
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Append persists a new entry
func (r *GormEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// SumQuantity returns the signed quantity sum for (sku, location). Forced
// entries are excluded unless includeForced is set.
func (r *GormEntryRepository) SumQuantity(ctx context.Context, skuID, locationID uuid.UUID, includeForced bool) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Where("sku_id = ? AND location_id = ?", skuID, locationID)
	if !includeForced {
		db = db.Where("forced = ?", false)
	}

	var row struct {
		Total decimal.Decimal
	}
	if err := db.Select("COALESCE(SUM(quantity), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumQuantityAcrossLocations returns the non-forced sum for a SKU over every
// location in a store
func (r *GormEntryRepository) SumQuantityAcrossLocations(ctx context.Context, skuID uuid.UUID, storeCode string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Joins("JOIN locations ON locations.id = ledger_entries.location_id").
		Where("ledger_entries.sku_id = ? AND ledger_entries.forced = ? AND locations.store_code = ?",
			skuID, false, warehouse.NormalizeCode(storeCode)).
		Select("COALESCE(SUM(ledger_entries.quantity), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// FindCandidateLocations returns the store's locations with ledger history
// for the SKU, highest true on-hand first
func (r *GormEntryRepository) FindCandidateLocations(ctx context.Context, skuID uuid.UUID, storeCode string) ([]ledger.CandidateLocation, error) {
	var rows []struct {
		LocationID uuid.UUID
		OnHand     decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Joins("JOIN locations ON locations.id = ledger_entries.location_id").
		Where("ledger_entries.sku_id = ? AND locations.store_code = ?", skuID, warehouse.NormalizeCode(storeCode)).
		Select("ledger_entries.location_id AS location_id, " +
			"COALESCE(SUM(CASE WHEN ledger_entries.forced THEN 0 ELSE ledger_entries.quantity END), 0) AS on_hand").
		Group("ledger_entries.location_id").
		Order("on_hand DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]ledger.CandidateLocation, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, ledger.CandidateLocation{
			LocationID: row.LocationID,
			OnHand:     row.OnHand,
		})
	}
	return candidates, nil
}

// FindBySkuAndLocation lists entries for a pair, newest first
func (r *GormEntryRepository) FindBySkuAndLocation(ctx context.Context, skuID, locationID uuid.UUID, filter shared.Filter) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	db := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Where("sku_id = ? AND location_id = ?", skuID, locationID)
	if err := applyFilter(db, filter).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindForced lists forced entries for the exception audit trail
func (r *GormEntryRepository) FindForced(ctx context.Context, filter shared.Filter) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	db := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Where("forced = ?", true)
	if err := applyFilter(db, filter).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// OnHandReport returns one summary row per (sku, location) pair with ledger
// history in the store
func (r *GormEntryRepository) OnHandReport(ctx context.Context, storeCode string) ([]ledger.OnHandRow, error) {
	var rows []struct {
		SkuID        uuid.UUID
		SkuCode      string
		MakerCode    string
		SkuName      string
		LocationID   uuid.UUID
		LocationCode string
		OnHand       decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Joins("JOIN skus ON skus.id = ledger_entries.sku_id").
		Joins("JOIN locations ON locations.id = ledger_entries.location_id").
		Where("locations.store_code = ?", warehouse.NormalizeCode(storeCode)).
		Select("ledger_entries.sku_id AS sku_id, skus.code AS sku_code, skus.maker_code AS maker_code, " +
			"skus.name AS sku_name, ledger_entries.location_id AS location_id, locations.code AS location_code, " +
			"COALESCE(SUM(CASE WHEN ledger_entries.forced THEN 0 ELSE ledger_entries.quantity END), 0) AS on_hand").
		Group("ledger_entries.sku_id, skus.code, skus.maker_code, skus.name, ledger_entries.location_id, locations.code").
		Order("skus.code ASC, locations.code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	report := make([]ledger.OnHandRow, 0, len(rows))
	for _, row := range rows {
		report = append(report, ledger.OnHandRow{
			SkuID:        row.SkuID,
			SkuCode:      row.SkuCode,
			MakerCode:    row.MakerCode,
			SkuName:      row.SkuName,
			LocationID:   row.LocationID,
			LocationCode: row.LocationCode,
			OnHand:       row.OnHand,
		})
	}
	return report, nil
}

var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
