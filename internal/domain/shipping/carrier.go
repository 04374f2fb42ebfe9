package shipping

import (
	"context"
	"time"
)

// ReserveRequest is the shipment detail sent to the carrier when requesting
// a waybill
type ReserveRequest struct {
	JobID      string
	Recipient  string
	Phone      string
	PostalCode string
	Address    string
}

// ReserveResult is the carrier's answer to a successful reservation
type ReserveResult struct {
	TrackingNumber string
	BundleKey      string
	ReservedAt     time.Time
}

// Carrier is the port to the external courier system. Reserve is NOT
// idempotent: every successful call issues a new live waybill, which is why
// the reservation coordinator wraps it in the pending-lock protocol.
type Carrier interface {
	Code() string
	Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error)
	CancelReservation(ctx context.Context, trackingNumber, bundleKey string) error
}
