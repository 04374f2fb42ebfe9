package job

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Item is one planned SKU line on a job. There is exactly one line per
// (job, sku) pair. Picked normally stays at or below planned; overpick lets
// it exceed.
type Item struct {
	shared.BaseEntity
	JobID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_job_items_job_sku,priority:1"`
	SkuID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_job_items_job_sku,priority:2"`
	QuantityPlanned decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityPicked  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "job_items"
}

func newItem(jobID, skuID uuid.UUID, planned decimal.Decimal) *Item {
	return &Item{
		BaseEntity:      shared.NewBaseEntity(),
		JobID:           jobID,
		SkuID:           skuID,
		QuantityPlanned: planned,
		QuantityPicked:  decimal.Zero,
	}
}

// Remaining returns planned minus picked, floored at zero
func (i *Item) Remaining() decimal.Decimal {
	remaining := i.QuantityPlanned.Sub(i.QuantityPicked)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsSatisfied reports whether picked covers planned
func (i *Item) IsSatisfied() bool {
	return i.QuantityPicked.GreaterThanOrEqual(i.QuantityPlanned)
}

func (i *Item) addPlanned(quantity decimal.Decimal) {
	i.QuantityPlanned = i.QuantityPlanned.Add(quantity)
	i.UpdatedAt = time.Now()
}

func (i *Item) recordPicked(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Picked quantity must be positive")
	}
	i.QuantityPicked = i.QuantityPicked.Add(quantity)
	i.UpdatedAt = time.Now()
	return nil
}
