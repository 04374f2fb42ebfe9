package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// SkuRepository provides persistence for the Sku aggregate
type SkuRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sku, error)
	// FindByCode looks up a SKU by its uppercase-normalized canonical code.
	FindByCode(ctx context.Context, code string) (*Sku, error)
	// FindByMakerCode returns every SKU carrying the maker code. Callers must
	// treat more than one row as a data-integrity violation, never pick one.
	FindByMakerCode(ctx context.Context, makerCode string) ([]Sku, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sku, error)
	Save(ctx context.Context, sku *Sku) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
