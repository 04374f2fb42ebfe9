package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stouper/wms-sub002/internal/application/resolve"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// LedgerService owns every write path into the inventory ledger outside of
// job scanning: manual adjustments, bulk reset imports and the reporting
// reads. On-hand is always recomputed from the entries; the service never
// keeps a quantity counter of its own.
type LedgerService struct {
	scope      TransactionScope
	ledgerRepo ledger.EntryRepository
	resolver   *resolve.ResolverService
	logger     *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope TransactionScope, ledgerRepo ledger.EntryRepository, resolver *resolve.ResolverService, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		scope:      scope,
		ledgerRepo: ledgerRepo,
		resolver:   resolver,
		logger:     logger,
	}
}

// Append validates and writes one ledger entry atomically with the on-hand
// read that justifies it. A non-forced append that would drive the true
// on-hand negative is rejected with the structured shortage detail; a forced
// append requires a reason and is tagged for the audit trail.
func (s *LedgerService) Append(ctx context.Context, input AppendInput) (*ledger.Entry, error) {
	if input.Quantity.IsZero() {
		return nil, shared.ErrInvalidDelta
	}

	var appended *ledger.Entry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		balance, err := repos.Ledger().SumQuantity(ctx, input.SkuID, input.LocationID, false)
		if err != nil {
			return err
		}
		if balance.IsNegative() {
			// The non-forced sum can only go negative through a bug, never
			// through user input. Keep serving but make noise.
			s.logger.Error("negative true on-hand observed in ledger",
				zap.String("sku_id", input.SkuID.String()),
				zap.String("location_id", input.LocationID.String()),
				zap.String("on_hand", balance.String()),
			)
		}

		if !input.Forced && balance.Add(input.Quantity).IsNegative() {
			return &ledger.InsufficientStockError{
				SkuID:      input.SkuID,
				LocationID: input.LocationID,
				OnHand:     balance,
				Requested:  input.Quantity.Neg(),
			}
		}

		entry, err := ledger.NewEntry(input.SkuID, input.LocationID, input.Quantity, input.Type, balance)
		if err != nil {
			return err
		}
		if input.Forced {
			if err := entry.MarkForced(input.Reason); err != nil {
				return err
			}
		}
		if input.JobID != nil && input.JobItemID != nil {
			entry.WithJob(*input.JobID, *input.JobItemID)
		}

		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return err
		}
		appended = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appended, nil
}

// OnHand returns the current on-hand for a (sku, location) pair. With
// includeForced it returns the "what actually left the building" aggregate
// instead of the true on-hand.
func (s *LedgerService) OnHand(ctx context.Context, skuID, locationID uuid.UUID, includeForced bool) (decimal.Decimal, error) {
	return s.ledgerRepo.SumQuantity(ctx, skuID, locationID, includeForced)
}

// ResetToQuantity applies one "reset to absolute quantity" row: it resolves
// the SKU (creating it on first import) and location (created on first use),
// then appends the single delta entry that moves on-hand to the target.
func (s *LedgerService) ResetToQuantity(ctx context.Context, storeCode string, row ResetRow) (*ResetResult, error) {
	if row.Quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Target quantity cannot be negative")
	}

	sku, err := s.resolver.ResolveSku(ctx, resolve.SkuInput{
		Value:       row.SkuCode,
		MakerCode:   row.MakerCode,
		Name:        row.Name,
		AllowCreate: true,
	})
	if err != nil {
		return nil, err
	}

	loc, err := s.resolver.ResolveLocation(ctx, storeCode, row.LocationCode, true)
	if err != nil {
		return nil, err
	}

	var result *ResetResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.Ledger().SumQuantity(ctx, sku.ID, loc.ID, false)
		if err != nil {
			return err
		}

		delta := row.Quantity.Sub(current)
		result = &ResetResult{
			SkuCode:      sku.Code,
			LocationCode: loc.Code,
			Before:       current,
			After:        row.Quantity,
			Delta:        delta,
		}
		if delta.IsZero() {
			result.Skipped = true
			return nil
		}

		entry, err := ledger.NewEntry(sku.ID, loc.ID, delta, ledger.EntryTypeSet, current)
		if err != nil {
			return err
		}
		return repos.Ledger().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ImportRows applies a bulk reset import row by row. A failing row is
// recorded and skipped; the remaining rows still apply.
func (s *LedgerService) ImportRows(ctx context.Context, storeCode string, rows []ResetRow) (*ImportReport, error) {
	report := &ImportReport{
		Results: make([]ResetResult, 0, len(rows)),
	}
	for i, row := range rows {
		result, err := s.ResetToQuantity(ctx, storeCode, row)
		if err != nil {
			report.Failed = append(report.Failed, RowError{
				Row:     i + 1,
				SkuCode: row.SkuCode,
				Message: err.Error(),
			})
			continue
		}
		if result.Skipped {
			report.Skipped++
		} else {
			report.Applied++
		}
		report.Results = append(report.Results, *result)
	}
	return report, nil
}

// OnHandReport returns the per-(sku, location) summary rows for a store
func (s *LedgerService) OnHandReport(ctx context.Context, storeCode string) ([]OnHandRowResponse, error) {
	rows, err := s.ledgerRepo.OnHandReport(ctx, storeCode)
	if err != nil {
		return nil, err
	}
	out := make([]OnHandRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, OnHandRowResponse{
			SkuCode:      row.SkuCode,
			MakerCode:    row.MakerCode,
			Name:         row.SkuName,
			LocationCode: row.LocationCode,
			OnHand:       row.OnHand.String(),
		})
	}
	return out, nil
}

// ForcedEntries lists the forced exception trail, newest first
func (s *LedgerService) ForcedEntries(ctx context.Context, filter shared.Filter) ([]*EntryResponse, error) {
	entries, err := s.ledgerRepo.FindForced(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewEntryResponse(&entries[i]))
	}
	return out, nil
}

// EntriesFor lists ledger history for a (sku, location) pair
func (s *LedgerService) EntriesFor(ctx context.Context, skuID, locationID uuid.UUID, filter shared.Filter) ([]*EntryResponse, error) {
	entries, err := s.ledgerRepo.FindBySkuAndLocation(ctx, skuID, locationID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewEntryResponse(&entries[i]))
	}
	return out, nil
}
