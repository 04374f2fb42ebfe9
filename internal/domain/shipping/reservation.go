package shipping

import (
	"time"

	"github.com/google/uuid"

	"github.com/stouper/wms-sub002/internal/domain/shared"
)

// ReservationStatus represents the lifecycle state of a carrier reservation
type ReservationStatus string

const (
	// ReservationStatusPending is the durable lock inserted before the
	// external call; it carries no real tracking number yet
	ReservationStatusPending ReservationStatus = "pending"
	// ReservationStatusConfirmed means the carrier issued a real waybill
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	// ReservationStatusCancelled means the waybill was voided at the carrier
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation records one carrier waybill request for a job. At most one
// non-cancelled reservation may exist per job; a partial unique index on
// job_id is the backstop against concurrent creators.
type Reservation struct {
	shared.BaseEntity
	JobID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status         ReservationStatus `gorm:"type:varchar(16);not null;default:'pending';index"`
	CarrierCode    string            `gorm:"type:varchar(32);not null"`
	TrackingNumber string            `gorm:"type:varchar(64)"`
	BundleKey      string            `gorm:"type:varchar(64)"` // carrier-side grouping key for label pickup
	ReservedAt     *time.Time
}

// TableName returns the table name for GORM
func (Reservation) TableName() string {
	return "shipping_reservations"
}

// NewPendingReservation creates the placeholder row that locks the job
// before the external carrier call is made
func NewPendingReservation(jobID uuid.UUID, carrierCode string) (*Reservation, error) {
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Job ID cannot be empty")
	}
	if carrierCode == "" {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Carrier code cannot be empty")
	}

	return &Reservation{
		BaseEntity:  shared.NewBaseEntity(),
		JobID:       jobID,
		Status:      ReservationStatusPending,
		CarrierCode: carrierCode,
	}, nil
}

// Confirm stores the carrier's real identifiers and transitions the
// placeholder to confirmed
func (r *Reservation) Confirm(trackingNumber, bundleKey string, reservedAt time.Time) error {
	if r.Status != ReservationStatusPending {
		return shared.ErrInvalidState
	}
	if trackingNumber == "" {
		return shared.NewDomainError("INVALID_TRACKING", "Tracking number cannot be empty")
	}
	r.Status = ReservationStatusConfirmed
	r.TrackingNumber = trackingNumber
	r.BundleKey = bundleKey
	r.ReservedAt = &reservedAt
	r.UpdatedAt = time.Now()
	return nil
}

// Cancel marks a confirmed reservation cancelled. Cancelling twice is a
// hard failure.
func (r *Reservation) Cancel() error {
	if r.Status == ReservationStatusCancelled {
		return shared.ErrInvalidState
	}
	r.Status = ReservationStatusCancelled
	r.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the reservation still claims the job's slot
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationStatusCancelled
}
