package picking

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
	"github.com/stouper/wms-sub002/internal/domain/job"
	"github.com/stouper/wms-sub002/internal/domain/ledger"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/domain/warehouse"
)

// MockJobRepository is a mock implementation of job.Repository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]job.Job, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) SaveItem(ctx context.Context, item *job.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockJobRepository) SaveParcel(ctx context.Context, parcel *job.Parcel) error {
	args := m.Called(ctx, parcel)
	return args.Error(0)
}

func (m *MockJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

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

// scanFixture wires a ScanService over mocks with a no-op transaction scope
type scanFixture struct {
	jobs      *MockJobRepository
	entries   *MockEntryRepository
	locations *MockLocationRepository
	skus      *MockSkuRepository
	service   *ScanService

	sku *catalog.Sku
	job *job.Job
}

func newScanFixture(t *testing.T, planned int64) *scanFixture {
	t.Helper()
	f := &scanFixture{
		jobs:      new(MockJobRepository),
		entries:   new(MockEntryRepository),
		locations: new(MockLocationRepository),
		skus:      new(MockSkuRepository),
	}
	scope := NewNoOpTransactionScope(f.jobs, f.entries, f.locations)
	resolver := resolve.NewResolverService(f.skus, f.locations)
	f.service = NewScanService(scope, resolver, zap.NewNop())

	sku, err := catalog.NewSku("AB-01", "4901234567890", "Widget")
	require.NoError(t, err)
	f.sku = sku

	j, err := job.NewJob("S1", "", "")
	require.NoError(t, err)
	if planned > 0 {
		_, err = j.AddItem(sku.ID, decimal.NewFromInt(planned))
		require.NoError(t, err)
	}
	f.job = j

	f.skus.On("FindByCode", mock.Anything, "AB-01").Return(sku, nil)
	f.jobs.On("FindByID", mock.Anything, j.ID).Return(j, nil)
	return f
}

func (f *scanFixture) location(t *testing.T, code string) *warehouse.Location {
	t.Helper()
	loc, err := warehouse.NewLocation("S1", code, "")
	require.NoError(t, err)
	return loc
}

func TestScanService_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("picks from an explicit location", func(t *testing.T) {
		f := newScanFixture(t, 5)
		loc := f.location(t, "A-01")

		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.NewFromInt(10), nil)

		var appended *ledger.Entry
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Run(func(args mock.Arguments) {
			appended = args.Get(1).(*ledger.Entry)
		}).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.AnythingOfType("*job.Item")).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Scan(ctx, ScanInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "a-01",
			Quantity:     decimal.NewFromInt(2),
		})
		require.NoError(t, err)

		assert.Equal(t, "AB-01", result.SkuCode)
		assert.Equal(t, "A-01", result.LocationCode)
		assert.True(t, result.Quantity.Equal(decimal.NewFromInt(2)))
		assert.True(t, result.Picked.Equal(decimal.NewFromInt(2)))
		assert.True(t, result.Remaining.Equal(decimal.NewFromInt(3)))
		assert.False(t, result.Forced)
		assert.False(t, result.JobDone)
		assert.Nil(t, result.Overpick)

		require.NotNil(t, appended)
		assert.True(t, appended.Quantity.Equal(decimal.NewFromInt(-2)))
		assert.Equal(t, ledger.EntryTypeOut, appended.Type)
		assert.False(t, appended.Forced)
		require.NotNil(t, appended.JobID)
		assert.Equal(t, f.job.ID, *appended.JobID)
	})

	t.Run("zero quantity defaults to one unit", func(t *testing.T) {
		f := newScanFixture(t, 5)
		loc := f.location(t, "A-01")

		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.NewFromInt(10), nil)
		f.entries.On("Append", ctx, mock.Anything).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Scan(ctx, ScanInput{JobID: f.job.ID, Value: "AB-01", LocationCode: "A-01"})
		require.NoError(t, err)
		assert.True(t, result.Quantity.Equal(decimal.NewFromInt(1)))
	})

	t.Run("rejects fractional quantity", func(t *testing.T) {
		f := newScanFixture(t, 5)
		_, err := f.service.Scan(ctx, ScanInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromFloat(1.5),
		})
		require.Error(t, err)
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("planned guard rejects overpick without authorization", func(t *testing.T) {
		f := newScanFixture(t, 2)

		_, err := f.service.Scan(ctx, ScanInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromInt(3),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotInJob))

		var exceeded *RemainingExceededError
		require.True(t, errors.As(err, &exceeded))
		assert.True(t, exceeded.Planned.Equal(decimal.NewFromInt(2)))
		assert.True(t, exceeded.Requested.Equal(decimal.NewFromInt(3)))
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("satisfied line without overpick reads as not in job", func(t *testing.T) {
		f := newScanFixture(t, 2)
		other, err := catalog.NewSku("CD-02", "", "")
		require.NoError(t, err)
		_, err = f.job.AddItem(other.ID, decimal.NewFromInt(1))
		require.NoError(t, err)
		_, err = f.job.RecordPick(&f.job.Items[0], decimal.NewFromInt(2))
		require.NoError(t, err)

		_, err = f.service.Scan(ctx, ScanInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromInt(1),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotInJob))

		var notInJob *job.NotInJobError
		assert.True(t, errors.As(err, &notInJob))
		var exceeded *RemainingExceededError
		assert.False(t, errors.As(err, &exceeded))
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("unplanned sku is NotInJob", func(t *testing.T) {
		f := newScanFixture(t, 5)
		other, err := catalog.NewSku("ZZ-99", "", "")
		require.NoError(t, err)
		f.skus.On("FindByCode", mock.Anything, "ZZ-99").Return(other, nil)

		_, err = f.service.Scan(ctx, ScanInput{JobID: f.job.ID, Value: "ZZ-99", Quantity: decimal.NewFromInt(1)})
		assert.True(t, errors.Is(err, shared.ErrNotInJob))
	})

	t.Run("stock guard rejects shortage without authorization", func(t *testing.T) {
		f := newScanFixture(t, 5)
		loc := f.location(t, "A-01")

		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.NewFromInt(1), nil)

		_, err := f.service.Scan(ctx, ScanInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(2),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		var insufficient *ledger.InsufficientStockError
		require.True(t, errors.As(err, &insufficient))
		assert.True(t, insufficient.OnHand.Equal(decimal.NewFromInt(1)))
		assert.True(t, insufficient.Shortage().Equal(decimal.NewFromInt(1)))
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("job overpick permission turns shortage into a forced entry", func(t *testing.T) {
		f := newScanFixture(t, 5)
		f.job.SetAllowOverpick(true)
		loc := f.location(t, "A-01")

		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.NewFromInt(1), nil)

		var appended *ledger.Entry
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Run(func(args mock.Arguments) {
			appended = args.Get(1).(*ledger.Entry)
		}).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Scan(ctx, ScanInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(2),
		})
		require.NoError(t, err)

		assert.True(t, result.Forced)
		require.NotNil(t, result.Overpick)
		assert.True(t, result.Overpick.Shortage.Equal(decimal.NewFromInt(1)))
		assert.True(t, result.Overpick.OnHandBefore.Equal(decimal.NewFromInt(1)))

		require.NotNil(t, appended)
		assert.True(t, appended.Forced)
		require.NotNil(t, appended.ForcedReason)
		assert.Equal(t, ReasonOverpickAllowed, *appended.ForcedReason)
		assert.True(t, appended.BalanceAfter().Equal(appended.BalanceBefore))
	})

	t.Run("explicit force records the operator reason", func(t *testing.T) {
		f := newScanFixture(t, 5)
		loc := f.location(t, "A-01")

		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.Zero, nil)

		var appended *ledger.Entry
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Run(func(args mock.Arguments) {
			appended = args.Get(1).(*ledger.Entry)
		}).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		_, err := f.service.Scan(ctx, ScanInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(1),
			Force:        true,
			Reason:       "damaged box on shelf",
		})
		require.NoError(t, err)

		require.NotNil(t, appended)
		require.NotNil(t, appended.ForcedReason)
		assert.Equal(t, "damaged box on shelf", *appended.ForcedReason)
	})

	t.Run("auto selection takes the slot that covers the quantity", func(t *testing.T) {
		f := newScanFixture(t, 5)
		locA := f.location(t, "A-01")
		locB := f.location(t, "B-01")

		f.entries.On("FindCandidateLocations", ctx, f.sku.ID, "S1").Return([]ledger.CandidateLocation{
			{LocationID: locB.ID, OnHand: decimal.NewFromInt(5)},
			{LocationID: locA.ID, OnHand: decimal.NewFromInt(3)},
		}, nil)
		f.locations.On("FindByID", ctx, locB.ID).Return(locB, nil)
		f.entries.On("Append", ctx, mock.Anything).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Scan(ctx, ScanInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromInt(4),
		})
		require.NoError(t, err)
		assert.Equal(t, "B-01", result.LocationCode)
		assert.False(t, result.Forced)
	})

	t.Run("no stock anywhere needs an explicit force", func(t *testing.T) {
		f := newScanFixture(t, 5)
		f.entries.On("FindCandidateLocations", ctx, f.sku.ID, "S1").Return([]ledger.CandidateLocation{}, nil)

		_, err := f.service.Scan(ctx, ScanInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrNeedForceOut)
	})

	t.Run("forced scan with no stock books against the unassigned slot", func(t *testing.T) {
		f := newScanFixture(t, 5)

		f.entries.On("FindCandidateLocations", ctx, f.sku.ID, "S1").Return([]ledger.CandidateLocation{}, nil)
		f.locations.On("FindByStoreAndCode", ctx, "S1", warehouse.CodeUnassigned).Return(nil, shared.ErrNotFound)
		f.locations.On("Save", ctx, mock.AnythingOfType("*warehouse.Location")).Return(nil)

		var appended *ledger.Entry
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Run(func(args mock.Arguments) {
			appended = args.Get(1).(*ledger.Entry)
		}).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Scan(ctx, ScanInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromInt(1),
			Force:    true,
		})
		require.NoError(t, err)

		assert.Equal(t, warehouse.CodeUnassigned, result.LocationCode)
		assert.True(t, result.Forced)
		require.NotNil(t, appended)
		require.NotNil(t, appended.ForcedReason)
		assert.Equal(t, ReasonForcedScan, *appended.ForcedReason)
		f.locations.AssertCalled(t, "Save", ctx, mock.AnythingOfType("*warehouse.Location"))
	})

	t.Run("completing the last line closes the job", func(t *testing.T) {
		f := newScanFixture(t, 2)
		loc := f.location(t, "A-01")

		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.NewFromInt(2), nil)
		f.entries.On("Append", ctx, mock.Anything).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Scan(ctx, ScanInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		assert.True(t, result.JobDone)
		assert.Equal(t, job.StatusDone, f.job.Status)
	})

	t.Run("closed job refuses scans", func(t *testing.T) {
		f := newScanFixture(t, 1)
		item := &f.job.Items[0]
		_, err := f.job.RecordPick(item, decimal.NewFromInt(1))
		require.NoError(t, err)

		_, err = f.service.Scan(ctx, ScanInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestScanService_Receive(t *testing.T) {
	ctx := context.Background()

	t.Run("books inbound stock against the scanned slot", func(t *testing.T) {
		f := newScanFixture(t, 5)
		loc := f.location(t, "A-01")

		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.NewFromInt(3), nil)

		var appended *ledger.Entry
		f.entries.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Run(func(args mock.Arguments) {
			appended = args.Get(1).(*ledger.Entry)
		}).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Receive(ctx, ReceiveInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(2),
		})
		require.NoError(t, err)

		assert.True(t, result.Quantity.Equal(decimal.NewFromInt(2)))
		assert.True(t, result.Remaining.Equal(decimal.NewFromInt(3)))
		assert.False(t, result.JobDone)

		require.NotNil(t, appended)
		assert.True(t, appended.Quantity.Equal(decimal.NewFromInt(2)))
		assert.Equal(t, ledger.EntryTypeIn, appended.Type)
		assert.True(t, appended.BalanceAfter().Equal(decimal.NewFromInt(5)))
	})

	t.Run("first receive into a reserved slot creates it", func(t *testing.T) {
		f := newScanFixture(t, 5)

		f.locations.On("FindByStoreAndCode", ctx, "S1", warehouse.CodeReturn).Return(nil, shared.ErrNotFound)
		var created *warehouse.Location
		f.locations.On("Save", ctx, mock.AnythingOfType("*warehouse.Location")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*warehouse.Location)
		}).Return(nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, mock.Anything, false).Return(decimal.Zero, nil)
		f.entries.On("Append", ctx, mock.Anything).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Receive(ctx, ReceiveInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "return",
			Quantity:     decimal.NewFromInt(1),
		})
		require.NoError(t, err)

		assert.Equal(t, warehouse.CodeReturn, result.LocationCode)
		require.NotNil(t, created)
		assert.Equal(t, warehouse.CodeReturn, created.Code)
		assert.True(t, created.IsReserved())
	})

	t.Run("requires a location code", func(t *testing.T) {
		f := newScanFixture(t, 5)
		_, err := f.service.Receive(ctx, ReceiveInput{
			JobID:    f.job.ID,
			Value:    "AB-01",
			Quantity: decimal.NewFromInt(1),
		})
		require.Error(t, err)
	})

	t.Run("over-receive needs explicit confirmation", func(t *testing.T) {
		f := newScanFixture(t, 5)
		item := &f.job.Items[0]
		_, err := f.job.RecordPick(item, decimal.NewFromInt(4))
		require.NoError(t, err)

		_, err = f.service.Receive(ctx, ReceiveInput{
			JobID:        f.job.ID,
			Value:        "AB-01",
			LocationCode: "A-01",
			Quantity:     decimal.NewFromInt(2),
		})
		assert.ErrorIs(t, err, shared.ErrOverReceive)
		f.entries.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("confirmed over-receive goes through and closes the job", func(t *testing.T) {
		f := newScanFixture(t, 5)
		item := &f.job.Items[0]
		_, err := f.job.RecordPick(item, decimal.NewFromInt(4))
		require.NoError(t, err)

		loc := f.location(t, "A-01")
		f.locations.On("FindByStoreAndCode", ctx, "S1", "A-01").Return(loc, nil)
		f.entries.On("SumQuantity", ctx, f.sku.ID, loc.ID, false).Return(decimal.Zero, nil)
		f.entries.On("Append", ctx, mock.Anything).Return(nil)
		f.jobs.On("SaveItem", ctx, mock.Anything).Return(nil)
		f.jobs.On("Save", ctx, f.job).Return(nil)

		result, err := f.service.Receive(ctx, ReceiveInput{
			JobID:              f.job.ID,
			Value:              "AB-01",
			LocationCode:       "A-01",
			Quantity:           decimal.NewFromInt(2),
			ConfirmOverReceive: true,
		})
		require.NoError(t, err)
		assert.True(t, result.JobDone)
		assert.True(t, result.Picked.Equal(decimal.NewFromInt(6)))
	})
}
