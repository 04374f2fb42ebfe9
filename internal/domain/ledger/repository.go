package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// OnHandRow is one line of the on-hand summary used by reporting/export
// tooling.
type OnHandRow struct {
	SkuID        uuid.UUID
	SkuCode      string
	MakerCode    string
	SkuName      string
	LocationID   uuid.UUID
	LocationCode string
	OnHand       decimal.Decimal
}

// CandidateLocation is a location holding a SKU together with its current
// true on-hand, used by outbound location selection.
type CandidateLocation struct {
	LocationID uuid.UUID
	OnHand     decimal.Decimal
}

// EntryRepository is the append-only store of ledger entries. There is no
// update or delete; on-hand is always derived by summing.
type EntryRepository interface {
	// Append persists a new entry. The caller is responsible for running
	// Append inside the same transaction as the SumQuantity read that
	// produced the entry's BalanceBefore.
	Append(ctx context.Context, entry *Entry) error
	// SumQuantity returns the signed quantity sum for (sku, location).
	// Forced entries are excluded unless includeForced is set.
	SumQuantity(ctx context.Context, skuID, locationID uuid.UUID, includeForced bool) (decimal.Decimal, error)
	// SumQuantityAcrossLocations returns the signed non-forced sum for a SKU
	// over every location in a store.
	SumQuantityAcrossLocations(ctx context.Context, skuID uuid.UUID, storeCode string) (decimal.Decimal, error)
	// FindCandidateLocations returns the store's locations that hold any
	// ledger history for the SKU, with the non-forced on-hand per location,
	// ordered by on-hand descending.
	FindCandidateLocations(ctx context.Context, skuID uuid.UUID, storeCode string) ([]CandidateLocation, error)
	// FindBySkuAndLocation lists entries for a pair, newest first.
	FindBySkuAndLocation(ctx context.Context, skuID, locationID uuid.UUID, filter shared.Filter) ([]Entry, error)
	// FindForced lists forced entries for the exception audit trail.
	FindForced(ctx context.Context, filter shared.Filter) ([]Entry, error)
	// OnHandReport returns the summary rows for a store, one per
	// (sku, location) pair with ledger history.
	OnHandReport(ctx context.Context, storeCode string) ([]OnHandRow, error)
}
