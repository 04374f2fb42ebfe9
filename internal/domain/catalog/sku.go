package catalog

import (
	"strings"
	"time"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Sku is the canonical identity of a stock-keeping unit.
// The canonical code is uppercase-normalized and unique; the maker code
// (manufacturer barcode) is unique when present. A code is immutable once
// ledger entries reference the SKU.
type Sku struct {
	shared.BaseAggregateRoot
	Code      string `gorm:"type:varchar(64);not null;uniqueIndex"`
	MakerCode string `gorm:"type:varchar(64);index:idx_skus_maker_code,where:maker_code <> ''"`
	Name      string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Sku) TableName() string {
	return "skus"
}

// NormalizeCode uppercases and trims a raw code the way every lookup and
// insert must, so that "ab-01 " and "AB-01" resolve to the same SKU.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewSku creates a new SKU from a canonical code
func NewSku(code, makerCode, name string) (*Sku, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_SKU_CODE", "SKU code cannot be empty")
	}
	if len(code) > 64 {
		return nil, shared.NewDomainError("INVALID_SKU_CODE", "SKU code cannot exceed 64 characters")
	}

	sku := &Sku{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		MakerCode:         strings.TrimSpace(makerCode),
		Name:              strings.TrimSpace(name),
	}
	sku.AddDomainEvent(NewSkuCreatedEvent(sku))
	return sku, nil
}

// Backfill fills the name and maker code from scan/import input when the
// stored fields are empty. Non-empty fields are never overwritten silently.
// Returns true if anything changed.
func (s *Sku) Backfill(makerCode, name string) bool {
	changed := false
	if s.MakerCode == "" && strings.TrimSpace(makerCode) != "" {
		s.MakerCode = strings.TrimSpace(makerCode)
		changed = true
	}
	if s.Name == "" && strings.TrimSpace(name) != "" {
		s.Name = strings.TrimSpace(name)
		changed = true
	}
	if changed {
		s.UpdatedAt = time.Now()
		s.IncrementVersion()
	}
	return changed
}
