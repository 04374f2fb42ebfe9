package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// EntryType represents the kind of quantity movement an entry records
type EntryType string

const (
	// EntryTypeIn is inbound stock (receiving, returns)
	EntryTypeIn EntryType = "IN"
	// EntryTypeOut is outbound stock (picking, shipping)
	EntryTypeOut EntryType = "OUT"
	// EntryTypeSet is the delta computed by a reset-to-absolute-quantity import
	EntryTypeSet EntryType = "SET"
	// EntryTypeAdjust is a manual correction with a reason
	EntryTypeAdjust EntryType = "ADJUST"
)

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeIn, EntryTypeOut, EntryTypeSet, EntryTypeAdjust:
		return true
	}
	return false
}

// Entry is an immutable record of one signed quantity movement for a
// (sku, location) pair. Entries are never updated or deleted; a correction
// is a new entry with the opposite sign.
//
// Forced entries record stock that physically moved despite the books saying
// it was not there. They are excluded from the true on-hand aggregate but
// included in the audit aggregate, so BalanceBefore intentionally freezes at
// the pre-forced true on-hand.
type Entry struct {
	shared.BaseEntity
	SkuID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_sku_location,priority:1"`
	LocationID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_sku_location,priority:2"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed delta
	Type          EntryType       `gorm:"type:varchar(16);not null;index"`
	Forced        bool            `gorm:"not null;default:false;index"`
	ForcedReason  *string         `gorm:"type:varchar(255)"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"` // true on-hand before this entry
	JobID         *uuid.UUID      `gorm:"type:uuid;index"`
	JobItemID     *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a new ledger entry. The delta must be non-zero and forced
// entries must carry a reason.
func NewEntry(skuID, locationID uuid.UUID, quantity decimal.Decimal, entryType EntryType, balanceBefore decimal.Decimal) (*Entry, error) {
	if skuID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.ErrInvalidDelta
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Invalid ledger entry type")
	}

	return &Entry{
		BaseEntity:    shared.NewBaseEntity(),
		SkuID:         skuID,
		LocationID:    locationID,
		Quantity:      quantity,
		Type:          entryType,
		BalanceBefore: balanceBefore,
	}, nil
}

// MarkForced tags the entry as a deliberate stock-check override
func (e *Entry) MarkForced(reason string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Forced entries require a reason")
	}
	e.Forced = true
	e.ForcedReason = &reason
	return nil
}

// WithJob links the entry to the job line that caused it
func (e *Entry) WithJob(jobID, jobItemID uuid.UUID) *Entry {
	e.JobID = &jobID
	e.JobItemID = &jobItemID
	return e
}

// BalanceAfter returns the true on-hand after this entry. A forced entry
// does not move the true on-hand, so its after-value equals BalanceBefore.
func (e *Entry) BalanceAfter() decimal.Decimal {
	if e.Forced {
		return e.BalanceBefore
	}
	return e.BalanceBefore.Add(e.Quantity)
}

// InsufficientStockError carries the structured detail an operator UI needs
// to build a "force anyway?" confirmation. It unwraps to
// shared.ErrInsufficientStock.
type InsufficientStockError struct {
	SkuID      uuid.UUID
	LocationID uuid.UUID
	OnHand     decimal.Decimal
	Requested  decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return "insufficient stock: on hand " + e.OnHand.String() + ", requested " + e.Requested.String()
}

// Unwrap makes errors.Is(err, shared.ErrInsufficientStock) hold
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// Shortage returns how many units the request exceeds on-hand by
func (e *InsufficientStockError) Shortage() decimal.Decimal {
	return e.Requested.Sub(e.OnHand)
}

var _ error = (*InsufficientStockError)(nil)
