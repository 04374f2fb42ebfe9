package picking

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// ScanInput describes one outbound pick scan against a job
type ScanInput struct {
	JobID uuid.UUID
	// Value is the scanned SKU text, barcode or canonical code.
	Value string
	// MakerCode and Name ride along from richer clients and may backfill the
	// resolved SKU.
	MakerCode string
	Name      string
	// LocationCode pins the pick to a specific slot. Empty lets the service
	// select one.
	LocationCode string
	// Quantity defaults to one unit when zero.
	Quantity decimal.Decimal
	// Force authorizes this single scan past the planned and stock guards.
	// Forced stock-guard overrides are tagged with Reason in the ledger.
	Force  bool
	Reason string
}

// ReceiveInput describes one inbound receiving scan against a job
type ReceiveInput struct {
	JobID        uuid.UUID
	Value        string
	MakerCode    string
	Name         string
	LocationCode string
	Quantity     decimal.Decimal
	// ConfirmOverReceive acknowledges receiving past the planned quantity.
	ConfirmOverReceive bool
}

// OverpickSummary is the structured detail attached to a scan that went past
// a guard, for the operator confirmation dialog.
type OverpickSummary struct {
	Requested    decimal.Decimal `json:"requested"`
	OnHandBefore decimal.Decimal `json:"on_hand_before"`
	Shortage     decimal.Decimal `json:"shortage"`
}

// ScanResult reports what one scan did
type ScanResult struct {
	JobID        uuid.UUID        `json:"job_id"`
	SkuCode      string           `json:"sku_code"`
	LocationCode string           `json:"location_code"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Picked       decimal.Decimal  `json:"picked"`
	Planned      decimal.Decimal  `json:"planned"`
	Remaining    decimal.Decimal  `json:"remaining"`
	Forced       bool             `json:"forced"`
	JobDone      bool             `json:"job_done"`
	EntryID      uuid.UUID        `json:"entry_id"`
	Overpick     *OverpickSummary `json:"overpick,omitempty"`
}

func newScanResult(j *job.Job, item *job.Item, e *stockEntry, locationCode string, done bool) *ScanResult {
	return &ScanResult{
		JobID:        j.ID,
		LocationCode: locationCode,
		Quantity:     e.quantity,
		Picked:       item.QuantityPicked,
		Planned:      item.QuantityPlanned,
		Remaining:    item.Remaining(),
		Forced:       e.forced,
		JobDone:      done,
		EntryID:      e.id,
	}
}

// stockEntry carries the ledger facts a result needs without re-exposing the
// full entry
type stockEntry struct {
	id       uuid.UUID
	quantity decimal.Decimal
	forced   bool
}

// RemainingExceededError reports a scan that would push a line past its
// planned quantity without overpick authorization. It unwraps to
// shared.ErrNotInJob so the boundary maps it like a missing line.
type RemainingExceededError struct {
	JobID     uuid.UUID
	SkuID     uuid.UUID
	Planned   decimal.Decimal
	Picked    decimal.Decimal
	Requested decimal.Decimal
}

// Error implements the error interface
func (e *RemainingExceededError) Error() string {
	return "pick of " + e.Requested.String() + " exceeds plan " + e.Planned.String() +
		" with " + e.Picked.String() + " already picked"
}

// Unwrap makes errors.Is(err, shared.ErrNotInJob) hold
func (e *RemainingExceededError) Unwrap() error {
	return shared.ErrNotInJob
}
