package catalog

import (
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeSkuCreated = "catalog.sku.created"
)

// SkuCreatedEvent is emitted when a new SKU is minted
type SkuCreatedEvent struct {
	shared.BaseDomainEvent
	Code      string `json:"code"`
	MakerCode string `json:"maker_code,omitempty"`
	Name      string `json:"name,omitempty"`
}

// NewSkuCreatedEvent creates a SkuCreatedEvent
func NewSkuCreatedEvent(sku *Sku) *SkuCreatedEvent {
	return &SkuCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSkuCreated, "Sku", sku.ID),
		Code:            sku.Code,
		MakerCode:       sku.MakerCode,
		Name:            sku.Name,
	}
}
