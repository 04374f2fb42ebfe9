package warehouse

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// LocationRepository provides persistence for the Location aggregate
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindByStoreAndCode(ctx context.Context, storeCode, code string) (*Location, error)
	FindByStore(ctx context.Context, storeCode string, filter shared.Filter) ([]Location, error)
	Save(ctx context.Context, loc *Location) error
	// Delete removes a slot. Implementations must refuse reserved codes.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, storeCode string, filter shared.Filter) (int64, error)
}

// EnsureReservedLocations creates any missing system-reserved slots for a
// store and returns the ones it created. Operators cannot create reserved
// slots by hand, so every path that brings a store into existence seeds them
// through this function.
func EnsureReservedLocations(ctx context.Context, repo LocationRepository, storeCode string) ([]*Location, error) {
	created := make([]*Location, 0)
	for _, code := range ReservedCodes() {
		_, err := repo.FindByStoreAndCode(ctx, storeCode, code)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}

		loc, err := NewLocation(storeCode, code, "")
		if err != nil {
			return nil, err
		}
		if err := repo.Save(ctx, loc); err != nil {
			return nil, err
		}
		created = append(created, loc)
	}
	return created, nil
}
