package warehouse

import (
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Event types for the warehouse context
const (
	EventTypeLocationCreated = "warehouse.location.created"
)

// LocationCreatedEvent is emitted when a storage slot is created
type LocationCreatedEvent struct {
	shared.BaseDomainEvent
	StoreCode string `json:"store_code"`
	Code      string `json:"code"`
}

// NewLocationCreatedEvent creates a LocationCreatedEvent
func NewLocationCreatedEvent(loc *Location) *LocationCreatedEvent {
	return &LocationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationCreated, "Location", loc.ID),
		StoreCode:       loc.StoreCode,
		Code:            loc.Code,
	}
}
