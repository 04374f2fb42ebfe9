package warehouse

import (
	"strings"
	"time"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// Reserved location codes. These slots always exist per store and cannot be
// deleted or renamed: returns land at CodeReturn, forced outbound with no
// stocked slot is booked against CodeUnassigned, CodeHold parks disputed
// stock and CodeDefect collects damaged units.
const (
	CodeReturn     = "RETURN"
	CodeUnassigned = "UNASSIGNED"
	CodeHold       = "HOLD"
	CodeDefect     = "DEFECT"
)

var reservedCodes = map[string]struct{}{
	CodeReturn:     {},
	CodeUnassigned: {},
	CodeHold:       {},
	CodeDefect:     {},
}

// IsReservedCode reports whether code is one of the system-reserved slots
func IsReservedCode(code string) bool {
	_, ok := reservedCodes[NormalizeCode(code)]
	return ok
}

// ReservedCodes returns the system-reserved slot codes in a stable order
func ReservedCodes() []string {
	return []string{CodeReturn, CodeUnassigned, CodeHold, CodeDefect}
}

// NormalizeCode uppercases and trims a raw location code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Location is a named storage slot scoped to one store. The code is unique
// within its store.
type Location struct {
	shared.BaseAggregateRoot
	StoreCode string `gorm:"type:varchar(32);not null;uniqueIndex:idx_locations_store_code,priority:1"`
	Code      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_locations_store_code,priority:2"`
	Name      string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location within a store
func NewLocation(storeCode, code, name string) (*Location, error) {
	storeCode = NormalizeCode(storeCode)
	code = NormalizeCode(code)
	if storeCode == "" {
		return nil, shared.NewDomainError("INVALID_STORE_CODE", "Store code cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION_CODE", "Location code cannot be empty")
	}
	if len(code) > 64 {
		return nil, shared.NewDomainError("INVALID_LOCATION_CODE", "Location code cannot exceed 64 characters")
	}

	loc := &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreCode:         storeCode,
		Code:              code,
		Name:              strings.TrimSpace(name),
	}
	loc.AddDomainEvent(NewLocationCreatedEvent(loc))
	return loc, nil
}

// IsReserved reports whether this location is a system-reserved slot
func (l *Location) IsReserved() bool {
	return IsReservedCode(l.Code)
}

// Rename updates the display name. Reserved slots keep their identity: the
// code never changes, but the human label may.
func (l *Location) Rename(name string) {
	l.Name = strings.TrimSpace(name)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
