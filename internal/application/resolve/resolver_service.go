package resolve

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/stouper/wms-sub002/internal/domain/catalog"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// barcodeMinDigits is the minimum length for an all-digit value to be
// classified as a maker barcode rather than a canonical code
const barcodeMinDigits = 8

// SkuInput is the raw material a scan or import row supplies for resolution
type SkuInput struct {
	// Value is the scanned or imported text: a maker barcode or a canonical
	// code.
	Value string
	// MakerCode and Name, when supplied alongside a canonical code, are
	// backfilled onto an existing SKU whose fields are empty.
	MakerCode string
	Name      string
	// AllowCreate permits minting a new SKU when the canonical code has no
	// match. Barcode-only input never creates.
	AllowCreate bool
}

// ResolverService turns ambiguous scan/import input into canonical SKU and
// Location records. Input is classified first (looks-like-barcode or not)
// and then resolved along exactly one path, so an ambiguous maker code is
// surfaced instead of silently falling through.
type ResolverService struct {
	skuRepo      catalog.SkuRepository
	locationRepo warehouse.LocationRepository
}

// NewResolverService creates a new ResolverService
func NewResolverService(skuRepo catalog.SkuRepository, locationRepo warehouse.LocationRepository) *ResolverService {
	return &ResolverService{
		skuRepo:      skuRepo,
		locationRepo: locationRepo,
	}
}

// LooksLikeBarcode reports whether the value should be treated as a maker
// barcode: all digits and at least barcodeMinDigits long.
func LooksLikeBarcode(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) < barcodeMinDigits {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveSku resolves input to a canonical SKU record.
//
// Barcode-classified input is looked up by maker code first; more than one
// match is a data-integrity violation (AmbiguousMatch), zero matches fall
// back to the canonical-code path but never create. Canonical-code input is
// uppercase-normalized, looked up, and created only when AllowCreate is set.
// A hit may backfill empty Name/MakerCode fields from the input.
func (s *ResolverService) ResolveSku(ctx context.Context, input SkuInput) (*catalog.Sku, error) {
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return nil, shared.NewDomainError("INVALID_SCAN_VALUE", "Scan value cannot be empty")
	}

	isBarcode := LooksLikeBarcode(value)
	if isBarcode {
		matches, err := s.skuRepo.FindByMakerCode(ctx, value)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
			// fall through to the canonical-code path below
		case 1:
			return s.backfill(ctx, &matches[0], input)
		default:
			return nil, &AmbiguousMatchError{MakerCode: value, Count: len(matches)}
		}
	}

	code := catalog.NormalizeCode(value)
	sku, err := s.skuRepo.FindByCode(ctx, code)
	if err == nil {
		return s.backfill(ctx, sku, input)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// Barcode-only input with no match never mints an unknown item.
	if isBarcode || !input.AllowCreate {
		return nil, shared.ErrNotFound
	}

	created, err := catalog.NewSku(code, input.MakerCode, input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.skuRepo.Save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// backfill fills empty Name/MakerCode fields from the input and persists the
// SKU when anything changed
func (s *ResolverService) backfill(ctx context.Context, sku *catalog.Sku, input SkuInput) (*catalog.Sku, error) {
	if sku.Backfill(input.MakerCode, input.Name) {
		if err := s.skuRepo.Save(ctx, sku); err != nil {
			return nil, err
		}
	}
	return sku, nil
}

// ResolveLocation resolves a location code within a store. Bulk operations
// pass createIfMissing; picking scans must not, since scanning an unknown
// slot is a hard failure.
func (s *ResolverService) ResolveLocation(ctx context.Context, storeCode, code string, createIfMissing bool) (*warehouse.Location, error) {
	code = warehouse.NormalizeCode(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION_CODE", "Location code cannot be empty")
	}

	loc, err := s.locationRepo.FindByStoreAndCode(ctx, storeCode, code)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if !createIfMissing {
		return nil, shared.ErrNotFound
	}

	created, err := warehouse.NewLocation(storeCode, code, "")
	if err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// AmbiguousMatchError reports a maker code shared by more than one SKU. It
// unwraps to shared.ErrAmbiguousMatch.
type AmbiguousMatchError struct {
	MakerCode string
	Count     int
}

// Error implements the error interface
func (e *AmbiguousMatchError) Error() string {
	return "maker code " + e.MakerCode + " matches more than one SKU"
}

// Unwrap makes errors.Is(err, shared.ErrAmbiguousMatch) hold
func (e *AmbiguousMatchError) Unwrap() error {
	return shared.ErrAmbiguousMatch
}
