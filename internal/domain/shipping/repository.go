package shipping

import (
	"context"

	"github.com/google/uuid"
)

// ReservationRepository provides persistence for reservations. CreatePending
// must be executed in its own short transaction so the placeholder row is
// durable before any network call starts.
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	// FindActiveByJob returns the single non-cancelled reservation for the
	// job, or shared.ErrNotFound.
	FindActiveByJob(ctx context.Context, jobID uuid.UUID) (*Reservation, error)
	// CreatePending inserts the placeholder. A uniqueness violation on the
	// partial (job_id, non-cancelled) index must surface as
	// shared.ErrReservationInProgress.
	CreatePending(ctx context.Context, r *Reservation) error
	Save(ctx context.Context, r *Reservation) error
	// Delete removes a placeholder whose external call failed, so a later
	// retry starts clean.
	Delete(ctx context.Context, id uuid.UUID) error
}
