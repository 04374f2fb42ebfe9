package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/shipping"
)

// GormReservationRepository implements shipping.ReservationRepository using
// GORM. The exactly-once guarantee rests on the partial unique index over
// (job_id) WHERE status <> 'cancelled'; CreatePending surfaces a violation of
// that index as ReservationInProgress.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID finds a reservation by its ID
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Reservation, error) {
	var reservation shipping.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// FindActiveByJob returns the single non-cancelled reservation for the job
func (r *GormReservationRepository) FindActiveByJob(ctx context.Context, jobID uuid.UUID) (*shipping.Reservation, error) {
	var reservation shipping.Reservation
	if err := r.db.WithContext(ctx).
		First(&reservation, "job_id = ? AND status <> ?", jobID, shipping.ReservationStatusCancelled).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// CreatePending inserts the placeholder row in its own short statement. Two
// concurrent claims race on the partial unique index; the loser gets
// ReservationInProgress instead of reaching the carrier.
func (r *GormReservationRepository) CreatePending(ctx context.Context, reservation *shipping.Reservation) error {
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrReservationInProgress
		}
		return err
	}
	return nil
}

// Save updates a reservation
func (r *GormReservationRepository) Save(ctx context.Context, reservation *shipping.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// Delete removes a placeholder whose external call failed
func (r *GormReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shipping.Reservation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// isUniqueViolation matches the unique-index error text of postgres and of
// the sqlite driver used in tests
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

var _ shipping.ReservationRepository = (*GormReservationRepository)(nil)
