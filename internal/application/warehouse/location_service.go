package warehouse

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// LocationResponse is the API representation of a location
type LocationResponse struct {
	ID        string    `json:"id"`
	StoreCode string    `json:"store_code"`
	Code      string    `json:"code"`
	Name      string    `json:"name,omitempty"`
	Reserved  bool      `json:"reserved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newLocationResponse(loc *warehouse.Location) *LocationResponse {
	return &LocationResponse{
		ID:        loc.ID.String(),
		StoreCode: loc.StoreCode,
		Code:      loc.Code,
		Name:      loc.Name,
		Reserved:  loc.IsReserved(),
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}

// LocationService manages storage slots and guarantees the system-reserved
// slots exist per store
type LocationService struct {
	locationRepo warehouse.LocationRepository
	logger       *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo warehouse.LocationRepository, logger *zap.Logger) *LocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationService{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// Create adds a new slot to a store. Reserved codes cannot be created by
// hand; EnsureReservedLocations owns them.
func (s *LocationService) Create(ctx context.Context, storeCode, code, name string) (*LocationResponse, error) {
	if warehouse.IsReservedCode(code) {
		return nil, shared.ErrProtectedLocation
	}

	if _, err := s.locationRepo.FindByStoreAndCode(ctx, storeCode, code); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	loc, err := warehouse.NewLocation(storeCode, code, name)
	if err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}
	return newLocationResponse(loc), nil
}

// Rename updates a slot's display name. Reserved slots keep their code but
// may be relabeled.
func (s *LocationService) Rename(ctx context.Context, id uuid.UUID, name string) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loc.Rename(name)
	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}
	return newLocationResponse(loc), nil
}

// Delete removes a slot. Reserved slots are refused.
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.locationRepo.Delete(ctx, id)
}

// Get returns one location
func (s *LocationService) Get(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newLocationResponse(loc), nil
}

// List returns a store's locations with the total count
func (s *LocationService) List(ctx context.Context, storeCode string, filter shared.Filter) ([]*LocationResponse, int64, error) {
	locations, err := s.locationRepo.FindByStore(ctx, storeCode, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.locationRepo.Count(ctx, storeCode, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*LocationResponse, 0, len(locations))
	for i := range locations {
		out = append(out, newLocationResponse(&locations[i]))
	}
	return out, total, nil
}

// EnsureReservedLocations creates any missing system-reserved slots for a
// store. Called when a store is first seen so RETURN, UNASSIGNED, HOLD and
// DEFECT always exist.
func (s *LocationService) EnsureReservedLocations(ctx context.Context, storeCode string) error {
	created, err := warehouse.EnsureReservedLocations(ctx, s.locationRepo, storeCode)
	if err != nil {
		return err
	}
	for _, loc := range created {
		s.logger.Info("created reserved location",
			zap.String("store_code", loc.StoreCode),
			zap.String("code", loc.Code),
		)
	}
	return nil
}
