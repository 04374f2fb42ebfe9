package picking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stouper/wms-sub002/internal/application/resolve"
	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// ReasonOverpickAllowed is the ledger reason recorded when the job's standing
// overpick permission, rather than an explicit per-scan force, authorized a
// stock-guard override.
const ReasonOverpickAllowed = "overpick allowed on job"

// ReasonForcedScan is the fallback ledger reason for an explicit force scan
// that did not supply one.
const ReasonForcedScan = "forced by operator scan"

// ScanService drives the pick and receive scan protocol. Every scan runs two
// guards in order: the planned guard (does the job still want this SKU) and
// the stock guard (does the chosen slot hold enough). Overrides go through
// the overpick governor and always leave a forced ledger entry behind.
type ScanService struct {
	scope    TransactionScope
	resolver *resolve.ResolverService
	logger   *zap.Logger
}

// NewScanService creates a new ScanService
func NewScanService(scope TransactionScope, resolver *resolve.ResolverService, logger *zap.Logger) *ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScanService{
		scope:    scope,
		resolver: resolver,
		logger:   logger,
	}
}

// Scan processes one outbound pick scan. The guard reads, the ledger append
// and the job progress update commit atomically; a guard rejection rolls the
// whole scan back.
func (s *ScanService) Scan(ctx context.Context, input ScanInput) (*ScanResult, error) {
	quantity, err := normalizeScanQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}

	sku, err := s.resolver.ResolveSku(ctx, resolve.SkuInput{
		Value:     input.Value,
		MakerCode: input.MakerCode,
		Name:      input.Name,
	})
	if err != nil {
		return nil, err
	}

	var result *ScanResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		j, err := repos.Jobs().FindByID(ctx, input.JobID)
		if err != nil {
			return err
		}
		if !j.IsOpen() {
			return shared.ErrInvalidState
		}

		overpickAllowed := j.AllowOverpick || input.Force

		// Without overpick permission only a line with remaining quantity is
		// scannable; a satisfied line reads the same as an unplanned SKU.
		var item *job.Item
		if overpickAllowed {
			item, err = j.ItemForSku(sku.ID)
		} else {
			item, err = j.OpenItemForSku(sku.ID)
		}
		if err != nil {
			return err
		}
		if quantity.GreaterThan(item.Remaining()) && !overpickAllowed {
			return &RemainingExceededError{
				JobID:     j.ID,
				SkuID:     sku.ID,
				Planned:   item.QuantityPlanned,
				Picked:    item.QuantityPicked,
				Requested: quantity,
			}
		}

		loc, onHand, err := s.selectLocation(ctx, repos, j, sku.ID, input.LocationCode, quantity, input.Force)
		if err != nil {
			return err
		}

		forced := onHand.LessThan(quantity)
		if forced && !overpickAllowed {
			return &ledger.InsufficientStockError{
				SkuID:      sku.ID,
				LocationID: loc.ID,
				OnHand:     onHand,
				Requested:  quantity,
			}
		}

		entry, err := ledger.NewEntry(sku.ID, loc.ID, quantity.Neg(), ledger.EntryTypeOut, onHand)
		if err != nil {
			return err
		}
		if forced {
			if err := entry.MarkForced(s.forcedReason(input, j)); err != nil {
				return err
			}
			s.logger.Warn("forced pick recorded",
				zap.String("job_id", j.ID.String()),
				zap.String("sku_code", sku.Code),
				zap.String("location_code", loc.Code),
				zap.String("on_hand", onHand.String()),
				zap.String("requested", quantity.String()),
			)
		}
		entry.WithJob(j.ID, item.ID)

		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return err
		}

		remainingBefore := item.Remaining()
		done, err := j.RecordPick(item, quantity)
		if err != nil {
			return err
		}
		if err := repos.Jobs().SaveItem(ctx, item); err != nil {
			return err
		}
		if err := repos.Jobs().Save(ctx, j); err != nil {
			return err
		}

		result = newScanResult(j, item, &stockEntry{id: entry.ID, quantity: quantity, forced: forced}, loc.Code, done)
		result.SkuCode = sku.Code
		if forced || quantity.GreaterThan(remainingBefore) {
			shortage := quantity.Sub(onHand)
			if shortage.IsNegative() {
				shortage = decimal.Zero
			}
			result.Overpick = &OverpickSummary{
				Requested:    quantity,
				OnHandBefore: onHand,
				Shortage:     shortage,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// selectLocation picks the slot a scan draws from. An explicit code is
// honored as-is; otherwise the slot with the highest true on-hand wins. When
// no slot holds the SKU at all the scan needs an explicit force, which books
// the pick against the store's unassigned slot.
func (s *ScanService) selectLocation(ctx context.Context, repos TransactionalRepositories, j *job.Job, skuID uuid.UUID, locationCode string, quantity decimal.Decimal, force bool) (*warehouse.Location, decimal.Decimal, error) {
	if locationCode != "" {
		loc, err := repos.Locations().FindByStoreAndCode(ctx, j.StoreCode, warehouse.NormalizeCode(locationCode))
		if err != nil {
			return nil, decimal.Zero, err
		}
		onHand, err := repos.Ledger().SumQuantity(ctx, skuID, loc.ID, false)
		if err != nil {
			return nil, decimal.Zero, err
		}
		return loc, onHand, nil
	}

	candidates, err := repos.Ledger().FindCandidateLocations(ctx, skuID, j.StoreCode)
	if err != nil {
		return nil, decimal.Zero, err
	}
	for _, c := range candidates {
		if c.OnHand.GreaterThanOrEqual(quantity) {
			loc, err := repos.Locations().FindByID(ctx, c.LocationID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			return loc, c.OnHand, nil
		}
	}
	// No slot covers the full quantity. Fall back to the best-stocked slot so
	// a forced scan lands where the stock mostly was.
	if len(candidates) > 0 && candidates[0].OnHand.IsPositive() {
		loc, err := repos.Locations().FindByID(ctx, candidates[0].LocationID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		return loc, candidates[0].OnHand, nil
	}

	if !force {
		return nil, decimal.Zero, shared.ErrNeedForceOut
	}
	loc, err := reservedSlot(ctx, repos, j.StoreCode, warehouse.CodeUnassigned)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return loc, decimal.Zero, nil
}

// reservedSlot returns a store's system-reserved slot, creating it on first
// use. Operators cannot create reserved slots by hand, so lookups for them
// self-heal instead of failing on a fresh store.
func reservedSlot(ctx context.Context, repos TransactionalRepositories, storeCode, code string) (*warehouse.Location, error) {
	loc, err := repos.Locations().FindByStoreAndCode(ctx, storeCode, code)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	loc, err = warehouse.NewLocation(storeCode, code, "")
	if err != nil {
		return nil, err
	}
	if err := repos.Locations().Save(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *ScanService) forcedReason(input ScanInput, j *job.Job) string {
	if input.Reason != "" {
		return input.Reason
	}
	if !input.Force && j.AllowOverpick {
		return ReasonOverpickAllowed
	}
	return ReasonForcedScan
}

// Receive processes one inbound receiving scan. It mirrors Scan with the
// signs flipped: the entry is positive, there is no stock guard, and going
// past the planned quantity needs an explicit confirmation instead of the
// overpick governor.
func (s *ScanService) Receive(ctx context.Context, input ReceiveInput) (*ScanResult, error) {
	quantity, err := normalizeScanQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}
	if input.LocationCode == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION_CODE", "Receiving requires a location code")
	}

	sku, err := s.resolver.ResolveSku(ctx, resolve.SkuInput{
		Value:     input.Value,
		MakerCode: input.MakerCode,
		Name:      input.Name,
	})
	if err != nil {
		return nil, err
	}

	var result *ScanResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		j, err := repos.Jobs().FindByID(ctx, input.JobID)
		if err != nil {
			return err
		}
		if !j.IsOpen() {
			return shared.ErrInvalidState
		}

		item, err := j.ItemForSku(sku.ID)
		if err != nil {
			return err
		}
		if item.QuantityPicked.Add(quantity).GreaterThan(item.QuantityPlanned) && !input.ConfirmOverReceive {
			return shared.ErrOverReceive
		}

		code := warehouse.NormalizeCode(input.LocationCode)
		var loc *warehouse.Location
		if warehouse.IsReservedCode(code) {
			loc, err = reservedSlot(ctx, repos, j.StoreCode, code)
		} else {
			loc, err = repos.Locations().FindByStoreAndCode(ctx, j.StoreCode, code)
		}
		if err != nil {
			return err
		}

		onHand, err := repos.Ledger().SumQuantity(ctx, sku.ID, loc.ID, false)
		if err != nil {
			return err
		}

		entry, err := ledger.NewEntry(sku.ID, loc.ID, quantity, ledger.EntryTypeIn, onHand)
		if err != nil {
			return err
		}
		entry.WithJob(j.ID, item.ID)
		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return err
		}

		done, err := j.RecordPick(item, quantity)
		if err != nil {
			return err
		}
		if err := repos.Jobs().SaveItem(ctx, item); err != nil {
			return err
		}
		if err := repos.Jobs().Save(ctx, j); err != nil {
			return err
		}

		result = newScanResult(j, item, &stockEntry{id: entry.ID, quantity: quantity}, loc.Code, done)
		result.SkuCode = sku.Code
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// normalizeScanQuantity defaults a zero quantity to one unit and rejects
// anything that is not a positive whole number
func normalizeScanQuantity(quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	if !quantity.IsPositive() || !quantity.IsInteger() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Scan quantity must be a positive whole number")
	}
	return quantity, nil
}
