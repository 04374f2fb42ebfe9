package carrier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stouper/wms-sub002/internal/domain/shipping"
)

func TestStubCarrier_Reserve(t *testing.T) {
	ctx := context.Background()
	stub := NewStubCarrier()

	first, err := stub.Reserve(ctx, shipping.ReserveRequest{JobID: "j1", Recipient: "Sato Taro"})
	require.NoError(t, err)
	assert.Equal(t, "STUB-00000001", first.TrackingNumber)
	assert.Equal(t, "BUNDLE-0001", first.BundleKey)
	assert.False(t, first.ReservedAt.IsZero())

	second, err := stub.Reserve(ctx, shipping.ReserveRequest{JobID: "j2", Recipient: "Sato Jiro"})
	require.NoError(t, err)
	assert.Equal(t, "STUB-00000002", second.TrackingNumber)

	assert.Equal(t, 2, stub.IssuedCount())
}

func TestStubCarrier_FailNext(t *testing.T) {
	ctx := context.Background()
	stub := NewStubCarrier()
	stub.FailNext(true)

	_, err := stub.Reserve(ctx, shipping.ReserveRequest{JobID: "j1"})
	require.Error(t, err)
	assert.Equal(t, 0, stub.IssuedCount())

	stub.FailNext(false)
	_, err = stub.Reserve(ctx, shipping.ReserveRequest{JobID: "j1"})
	assert.NoError(t, err)
}

func TestStubCarrier_CancelReservation(t *testing.T) {
	ctx := context.Background()
	stub := NewStubCarrier()

	result, err := stub.Reserve(ctx, shipping.ReserveRequest{JobID: "j1"})
	require.NoError(t, err)

	require.NoError(t, stub.CancelReservation(ctx, result.TrackingNumber, result.BundleKey))
	assert.Equal(t, 0, stub.IssuedCount())

	assert.Error(t, stub.CancelReservation(ctx, result.TrackingNumber, result.BundleKey))
	assert.Error(t, stub.CancelReservation(ctx, "STUB-99999999", ""))
}
