package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stouper/wms-sub002/internal/application/resolve"
	"github.com/stouper/wms-sub002/internal/domain/catalog"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// MockEntryRepository is a mock implementation of ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SumQuantity(ctx context.Context, skuID, locationID uuid.UUID, includeForced bool) (decimal.Decimal, error) {
	args := m.Called(ctx, skuID, locationID, includeForced)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) SumQuantityAcrossLocations(ctx context.Context, skuID uuid.UUID, storeCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, skuID, storeCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) FindCandidateLocations(ctx context.Context, skuID uuid.UUID, storeCode string) ([]ledger.CandidateLocation, error) {
	args := m.Called(ctx, skuID, storeCode)
	return args.Get(0).([]ledger.CandidateLocation), args.Error(1)
}

func (m *MockEntryRepository) FindBySkuAndLocation(ctx context.Context, skuID, locationID uuid.UUID, filter shared.Filter) ([]ledger.Entry, error) {
	args := m.Called(ctx, skuID, locationID, filter)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindForced(ctx context.Context, filter shared.Filter) ([]ledger.Entry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) OnHandReport(ctx context.Context, storeCode string) ([]ledger.OnHandRow, error) {
	args := m.Called(ctx, storeCode)
	return args.Get(0).([]ledger.OnHandRow), args.Error(1)
}

// MockSkuRepository is a mock implementation of catalog.SkuRepository
type MockSkuRepository struct {
	mock.Mock
}

func (m *MockSkuRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Sku, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Sku), args.Error(1)
}

func (m *MockSkuRepository) FindByCode(ctx context.Context, code string) (*catalog.Sku, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Sku), args.Error(1)
}

func (m *MockSkuRepository) FindByMakerCode(ctx context.Context, makerCode string) ([]catalog.Sku, error) {
	args := m.Called(ctx, makerCode)
	return args.Get(0).([]catalog.Sku), args.Error(1)
}

func (m *MockSkuRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Sku, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Sku), args.Error(1)
}

func (m *MockSkuRepository) Save(ctx context.Context, sku *catalog.Sku) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *MockSkuRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocationRepository is a mock implementation of warehouse.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByStoreAndCode(ctx context.Context, storeCode, code string) (*warehouse.Location, error) {
	args := m.Called(ctx, storeCode, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByStore(ctx context.Context, storeCode string, filter shared.Filter) ([]warehouse.Location, error) {
	args := m.Called(ctx, storeCode, filter)
	return args.Get(0).([]warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, loc *warehouse.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) Count(ctx context.Context, storeCode string, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeCode, filter)
	return args.Get(0).(int64), args.Error(1)
}

type ledgerFixture struct {
	entries   *MockEntryRepository
	skus      *MockSkuRepository
	locations *MockLocationRepository
	service   *LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		entries:   new(MockEntryRepository),
		skus:      new(MockSkuRepository),
		locations: new(MockLocationRepository),
	}
	scope := NewNoOpTransactionScope(f.entries)
	resolver := resolve.NewResolverService(f.skus, f.locations)
	f.service = NewLedgerService(scope, f.entries, resolver, zap.NewNop())
	return f
}

func TestLedgerService_Append(t *testing.T) {
	ctx := context.Background()
	skuID := uuid.New()
	locationID := uuid.New()

	t.Run("appends a signed delta with the observed balance", func(t *testing.T) {
		f := newLedgerFixture()
		f.entries.On("SumQuantity", ctx, skuID, locationID, false).Return(decimal.NewFromInt(5), nil)
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		entry, err := f.service.Append(ctx, AppendInput{
			SkuID:      skuID,
			LocationID: locationID,
			Quantity:   decimal.NewFromInt(-3),
			Type:       ledger.EntryTypeOut,
		})
		require.NoError(t, err)

		assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(-3)))
		assert.True(t, entry.BalanceBefore.Equal(decimal.NewFromInt(5)))
		assert.True(t, entry.BalanceAfter().Equal(decimal.NewFromInt(2)))
		f.entries.AssertExpectations(t)
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.service.Append(ctx, AppendInput{
			SkuID:      skuID,
			LocationID: locationID,
			Quantity:   decimal.Zero,
			Type:       ledger.EntryTypeAdjust,
		})
		assert.ErrorIs(t, err, shared.ErrInvalidDelta)
	})

	t.Run("refuses to drive on-hand negative", func(t *testing.T) {
		f := newLedgerFixture()
		f.entries.On("SumQuantity", ctx, skuID, locationID, false).Return(decimal.NewFromInt(2), nil)

		_, err := f.service.Append(ctx, AppendInput{
			SkuID:      skuID,
			LocationID: locationID,
			Quantity:   decimal.NewFromInt(-3),
			Type:       ledger.EntryTypeOut,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		var insufficient *ledger.InsufficientStockError
		require.True(t, errors.As(err, &insufficient))
		assert.True(t, insufficient.OnHand.Equal(decimal.NewFromInt(2)))
		assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(3)))
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("forced append bypasses the guard and freezes the balance", func(t *testing.T) {
		f := newLedgerFixture()
		f.entries.On("SumQuantity", ctx, skuID, locationID, false).Return(decimal.NewFromInt(2), nil)
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		entry, err := f.service.Append(ctx, AppendInput{
			SkuID:      skuID,
			LocationID: locationID,
			Quantity:   decimal.NewFromInt(-3),
			Type:       ledger.EntryTypeOut,
			Forced:     true,
			Reason:     "physical count mismatch",
		})
		require.NoError(t, err)

		assert.True(t, entry.Forced)
		assert.True(t, entry.BalanceAfter().Equal(decimal.NewFromInt(2)))
	})

	t.Run("forced append without a reason is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.entries.On("SumQuantity", ctx, skuID, locationID, false).Return(decimal.NewFromInt(2), nil)

		_, err := f.service.Append(ctx, AppendInput{
			SkuID:      skuID,
			LocationID: locationID,
			Quantity:   decimal.NewFromInt(-3),
			Type:       ledger.EntryTypeOut,
			Forced:     true,
		})
		require.Error(t, err)
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_ResetToQuantity(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, f *ledgerFixture) (*catalog.Sku, *warehouse.Location) {
		t.Helper()
		sku, err := catalog.NewSku("AB-01", "", "Widget")
		require.NoError(t, err)
		loc, err := warehouse.NewLocation("S1", "A-01", "")
		require.NoError(t, err)
		f.skus.On("FindByCode", ctx, "AB-01").Return(sku, nil)
		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		return sku, loc
	}

	t.Run("appends the delta that moves on-hand to the target", func(t *testing.T) {
		f := newLedgerFixture()
		sku, loc := setup(t, f)

		f.entries.On("SumQuantity", ctx, sku.ID, loc.ID, false).Return(decimal.NewFromInt(3), nil)
		var appended *ledger.Entry
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Run(func(args mock.Arguments) {
			appended = args.Get(1).(*ledger.Entry)
		}).Return(nil)

		result, err := f.service.ResetToQuantity(ctx, "S1", ResetRow{
			SkuCode:      "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(10),
		})
		require.NoError(t, err)

		assert.True(t, result.Before.Equal(decimal.NewFromInt(3)))
		assert.True(t, result.After.Equal(decimal.NewFromInt(10)))
		assert.True(t, result.Delta.Equal(decimal.NewFromInt(7)))
		assert.False(t, result.Skipped)

		require.NotNil(t, appended)
		assert.Equal(t, ledger.EntryTypeSet, appended.Type)
		assert.True(t, appended.Quantity.Equal(decimal.NewFromInt(7)))
	})

	t.Run("matching target skips the append", func(t *testing.T) {
		f := newLedgerFixture()
		sku, loc := setup(t, f)
		f.entries.On("SumQuantity", ctx, sku.ID, loc.ID, false).Return(decimal.NewFromInt(10), nil)

		result, err := f.service.ResetToQuantity(ctx, "S1", ResetRow{
			SkuCode:      "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative target", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.service.ResetToQuantity(ctx, "S1", ResetRow{
			SkuCode:      "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(-1),
		})
		require.Error(t, err)
	})

	t.Run("first import mints sku and location", func(t *testing.T) {
		f := newLedgerFixture()
		f.skus.On("FindByCode", ctx, "NEW-01").Return(nil, shared.ErrNotFound)
		f.skus.On("Save", ctx, mock.AnythingOfType("*catalog.Sku")).Return(nil)
		f.locations.On("FindByStoreAndCode", ctx, "S1", "B-02").Return(nil, shared.ErrNotFound)
		f.locations.On("Save", ctx, mock.AnythingOfType("*warehouse.Location")).Return(nil)
		f.entries.On("SumQuantity", ctx, mock.Anything, mock.Anything, false).Return(decimal.Zero, nil)
		f.entries.On("Append", ctx, mock.Anything).Return(nil)

		result, err := f.service.ResetToQuantity(ctx, "S1", ResetRow{
			SkuCode:      "new-01",
			Name:         "Fresh",
			LocationCode: "b-02",
			Quantity:     decimal.NewFromInt(4),
		})
		require.NoError(t, err)
		assert.Equal(t, "NEW-01", result.SkuCode)
		assert.Equal(t, "B-02", result.LocationCode)
		assert.True(t, result.Delta.Equal(decimal.NewFromInt(4)))
	})
}

func TestLedgerService_ImportRows(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()

	sku, err := catalog.NewSku("AB-01", "", "")
	require.NoError(t, err)
	loc, err := warehouse.NewLocation("S1", "A-01", "")
	require.NoError(t, err)
	f.skus.On("FindByCode", ctx, "AB-01").Return(sku, nil)
	f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
	f.entries.On("SumQuantity", ctx, sku.ID, loc.ID, false).Return(decimal.NewFromInt(2), nil)
	f.entries.On("Append", ctx, mock.Anything).Return(nil)

	report, err := f.service.ImportRows(ctx, "S1", []ResetRow{
		{SkuCode: "AB-01", LocationCode: "A-01", Quantity: decimal.NewFromInt(5)},
		{SkuCode: "AB-01", LocationCode: "A-01", Quantity: decimal.NewFromInt(-1)},
		{SkuCode: "AB-01", LocationCode: "A-01", Quantity: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 2, report.Failed[0].Row)
	assert.Equal(t, "AB-01", report.Failed[0].SkuCode)
	assert.Len(t, report.Results, 2)
}

func TestLedgerService_OnHandReport(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()

	f.entries.On("OnHandReport", ctx, "S1").Return([]ledger.OnHandRow{
		{SkuCode: "AB-01", SkuName: "Widget", LocationCode: "A-01", OnHand: decimal.NewFromInt(7)},
	}, nil)

	rows, err := f.service.OnHandReport(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AB-01", rows[0].SkuCode)
	assert.Equal(t, "Widget", rows[0].Name)
	assert.Equal(t, "7", rows[0].OnHand)
}

func TestLedgerService_ForcedEntries(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()

	entry, err := ledger.NewEntry(uuid.New(), uuid.New(), decimal.NewFromInt(-2), ledger.EntryTypeOut, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, entry.MarkForced("shelf empty"))

	filter := shared.DefaultFilter()
	f.entries.On("FindForced", ctx, filter).Return([]ledger.Entry{*entry}, nil)

	out, err := f.service.ForcedEntries(ctx, filter)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Forced)
	require.NotNil(t, out[0].ForcedReason)
	assert.Equal(t, "shelf empty", *out[0].ForcedReason)
	assert.Equal(t, out[0].BalanceBefore, out[0].BalanceAfter)
}
