package shipping

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/shipping"
)

// ReservationResponse is the API snapshot of a carrier reservation
type ReservationResponse struct {
	ID             string     `json:"id"`
	JobID          string     `json:"job_id"`
	Status         string     `json:"status"`
	CarrierCode    string     `json:"carrier_code"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	BundleKey      string     `json:"bundle_key,omitempty"`
	ReservedAt     *time.Time `json:"reserved_at,omitempty"`
}

func newReservationResponse(r *shipping.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:             r.ID.String(),
		JobID:          r.JobID.String(),
		Status:         string(r.Status),
		CarrierCode:    r.CarrierCode,
		TrackingNumber: r.TrackingNumber,
		BundleKey:      r.BundleKey,
		ReservedAt:     r.ReservedAt,
	}
}

// ReservationService coordinates exactly-once waybill issuance against a
// carrier whose Reserve call is not idempotent. The protocol is: claim the
// job with a durable pending row in a short transaction, make the external
// call with no transaction open, then confirm the row or delete it so a
// retry can start clean. The partial unique index behind CreatePending is
// what makes the claim exclusive under concurrency.
type ReservationService struct {
	reservationRepo shipping.ReservationRepository
	jobRepo         job.Repository
	carrier         shipping.Carrier
	logger          *zap.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(reservationRepo shipping.ReservationRepository, jobRepo job.Repository, carrier shipping.Carrier, logger *zap.Logger) *ReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		reservationRepo: reservationRepo,
		jobRepo:         jobRepo,
		carrier:         carrier,
		logger:          logger,
	}
}

// Reserve requests a waybill for a completed job. Concurrent callers race on
// the pending row: exactly one wins and reaches the carrier, the rest get
// ReservationInProgress or AlreadyReserved.
func (s *ReservationService) Reserve(ctx context.Context, jobID uuid.UUID) (*ReservationResponse, error) {
	j, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusDone {
		return nil, shared.NewDomainError("JOB_NOT_DONE", "Job must be completed before reserving a shipment")
	}
	if j.Parcel == nil {
		return nil, shared.NewDomainError("PARCEL_MISSING", "Job has no parcel details to ship")
	}

	existing, err := s.reservationRepo.FindActiveByJob(ctx, jobID)
	if err == nil {
		if existing.Status == shipping.ReservationStatusConfirmed {
			return nil, shared.ErrAlreadyReserved
		}
		return nil, shared.ErrReservationInProgress
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	pending, err := shipping.NewPendingReservation(jobID, s.carrier.Code())
	if err != nil {
		return nil, err
	}
	// The insert hits the partial unique index, so a concurrent claim loses
	// here rather than at the carrier.
	if err := s.reservationRepo.CreatePending(ctx, pending); err != nil {
		return nil, err
	}

	result, err := s.carrier.Reserve(ctx, shipping.ReserveRequest{
		JobID:      jobID.String(),
		Recipient:  j.Parcel.Recipient,
		Phone:      j.Parcel.Phone,
		PostalCode: j.Parcel.PostalCode,
		Address:    j.Parcel.Address,
	})
	if err != nil {
		// Compensate: drop the claim so the operator can retry, and surface
		// the carrier's error untouched.
		if delErr := s.reservationRepo.Delete(ctx, pending.ID); delErr != nil {
			s.logger.Error("failed to delete pending reservation after carrier error",
				zap.String("reservation_id", pending.ID.String()),
				zap.String("job_id", jobID.String()),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	if err := pending.Confirm(result.TrackingNumber, result.BundleKey, result.ReservedAt); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Save(ctx, pending); err != nil {
		// The waybill is live at the carrier but not recorded. This needs an
		// operator to reconcile, so shout.
		s.logger.Error("waybill issued but reservation not persisted",
			zap.String("job_id", jobID.String()),
			zap.String("tracking_number", result.TrackingNumber),
			zap.Error(err),
		)
		return nil, err
	}

	j.Parcel.SetTracking(s.carrier.Code(), result.TrackingNumber)
	if err := s.jobRepo.SaveParcel(ctx, j.Parcel); err != nil {
		s.logger.Error("reservation confirmed but parcel not stamped",
			zap.String("job_id", jobID.String()),
			zap.String("tracking_number", result.TrackingNumber),
			zap.Error(err),
		)
		return nil, err
	}

	return newReservationResponse(pending), nil
}

// Cancel voids the job's confirmed waybill at the carrier and releases the
// job for a fresh reservation.
func (s *ReservationService) Cancel(ctx context.Context, jobID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindActiveByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != shipping.ReservationStatusConfirmed {
		return nil, shared.ErrInvalidState
	}

	if err := s.carrier.CancelReservation(ctx, reservation.TrackingNumber, reservation.BundleKey); err != nil {
		return nil, err
	}

	if err := reservation.Cancel(); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		s.logger.Error("waybill voided at carrier but reservation not marked cancelled",
			zap.String("job_id", jobID.String()),
			zap.String("tracking_number", reservation.TrackingNumber),
			zap.Error(err),
		)
		return nil, err
	}

	j, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Parcel != nil {
		j.Parcel.ClearTracking()
		if err := s.jobRepo.SaveParcel(ctx, j.Parcel); err != nil {
			return nil, err
		}
	}

	return newReservationResponse(reservation), nil
}

// GetByJob returns the job's active reservation
func (s *ReservationService) GetByJob(ctx context.Context, jobID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindActiveByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return newReservationResponse(reservation), nil
}
