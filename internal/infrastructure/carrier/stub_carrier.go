package carrier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stouper/wms-sub002/internal/domain/shipping"
)

// StubCarrier is an in-process carrier for development and tests. It issues
// sequential fake waybill numbers and remembers which are live so cancels can
// be asserted against.
type StubCarrier struct {
	mu      sync.Mutex
	seq     int
	issued  map[string]bool
	failing bool
}

// NewStubCarrier creates a new StubCarrier
func NewStubCarrier() *StubCarrier {
	return &StubCarrier{issued: make(map[string]bool)}
}

// FailNext makes subsequent Reserve calls fail, simulating a carrier outage
func (c *StubCarrier) FailNext(failing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failing = failing
}

// Code returns the carrier identifier
func (c *StubCarrier) Code() string {
	return "stub"
}

// Reserve issues a fake waybill
func (c *StubCarrier) Reserve(_ context.Context, _ shipping.ReserveRequest) (*shipping.ReserveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failing {
		return nil, fmt.Errorf("carrier: reserve rejected: simulated outage")
	}

	c.seq++
	tracking := fmt.Sprintf("STUB-%08d", c.seq)
	c.issued[tracking] = true
	return &shipping.ReserveResult{
		TrackingNumber: tracking,
		BundleKey:      fmt.Sprintf("BUNDLE-%04d", c.seq),
		ReservedAt:     time.Now(),
	}, nil
}

// CancelReservation voids a fake waybill
func (c *StubCarrier) CancelReservation(_ context.Context, trackingNumber, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.issued[trackingNumber] {
		return fmt.Errorf("carrier: unknown tracking number %s", trackingNumber)
	}
	delete(c.issued, trackingNumber)
	return nil
}

// IssuedCount reports how many waybills are currently live
func (c *StubCarrier) IssuedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issued)
}

var _ shipping.Carrier = (*StubCarrier)(nil)
