package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stouper/wms-sub002/internal/domain/catalog"
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// SkuResponse is the API representation of a SKU
type SkuResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	MakerCode string    `json:"maker_code,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newSkuResponse(sku *catalog.Sku) *SkuResponse {
	return &SkuResponse{
		ID:        sku.ID.String(),
		Code:      sku.Code,
		MakerCode: sku.MakerCode,
		Name:      sku.Name,
		CreatedAt: sku.CreatedAt,
		UpdatedAt: sku.UpdatedAt,
	}
}

// SkuService provides catalog reads and explicit SKU creation. Most SKUs are
// minted implicitly by the resolver during imports and job planning; this
// service covers the management surface.
type SkuService struct {
	skuRepo catalog.SkuRepository
}

// NewSkuService creates a new SkuService
func NewSkuService(skuRepo catalog.SkuRepository) *SkuService {
	return &SkuService{skuRepo: skuRepo}
}

// Create mints a SKU with an explicit canonical code
func (s *SkuService) Create(ctx context.Context, code, makerCode, name string) (*SkuResponse, error) {
	normalized := catalog.NormalizeCode(code)
	if _, err := s.skuRepo.FindByCode(ctx, normalized); err == nil {
		return nil, shared.ErrAlreadyExists
	}

	sku, err := catalog.NewSku(normalized, makerCode, name)
	if err != nil {
		return nil, err
	}
	if err := s.skuRepo.Save(ctx, sku); err != nil {
		return nil, err
	}
	return newSkuResponse(sku), nil
}

// Get returns one SKU
func (s *SkuService) Get(ctx context.Context, id uuid.UUID) (*SkuResponse, error) {
	sku, err := s.skuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newSkuResponse(sku), nil
}

// GetByCode returns one SKU by canonical code
func (s *SkuService) GetByCode(ctx context.Context, code string) (*SkuResponse, error) {
	sku, err := s.skuRepo.FindByCode(ctx, catalog.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	return newSkuResponse(sku), nil
}

// List returns SKUs with the total count for pagination
func (s *SkuService) List(ctx context.Context, filter shared.Filter) ([]*SkuResponse, int64, error) {
	skus, err := s.skuRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.skuRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*SkuResponse, 0, len(skus))
	for i := range skus {
		out = append(out, newSkuResponse(&skus[i]))
	}
	return out, total, nil
}
