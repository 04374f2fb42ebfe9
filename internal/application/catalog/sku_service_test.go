package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stouper/wms-sub002/internal/domain/catalog"
	"github.com/stouper/wms-sub002/internal/domain/shared"
)

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

func TestSkuService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a sku with normalized code", func(t *testing.T) {
		repo := new(MockSkuRepository)
		service := NewSkuService(repo)

		repo.On("FindByCode", ctx, "AB-01").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Sku")).Return(nil)

		resp, err := service.Create(ctx, " ab-01 ", "4901234567890", "Widget")
		require.NoError(t, err)
		assert.Equal(t, "AB-01", resp.Code)
		assert.Equal(t, "Widget", resp.Name)
	})

	t.Run("duplicate code is refused", func(t *testing.T) {
		repo := new(MockSkuRepository)
		service := NewSkuService(repo)

		existing, err := catalog.NewSku("AB-01", "", "")
		require.NoError(t, err)
		repo.On("FindByCode", ctx, "AB-01").Return(existing, nil)

		_, err = service.Create(ctx, "AB-01", "", "")
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSkuService_GetByCode(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSkuRepository)
	service := NewSkuService(repo)

	existing, err := catalog.NewSku("AB-01", "", "Widget")
	require.NoError(t, err)
	repo.On("FindByCode", ctx, "AB-01").Return(existing, nil)

	resp, err := service.GetByCode(ctx, " ab-01 ")
	require.NoError(t, err)
	assert.Equal(t, existing.ID.String(), resp.ID)
}

func TestSkuService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSkuRepository)
	service := NewSkuService(repo)

	a, err := catalog.NewSku("AB-01", "", "")
	require.NoError(t, err)
	b, err := catalog.NewSku("AB-02", "", "")
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindAll", ctx, filter).Return([]catalog.Sku{*a, *b}, nil)
	repo.On("Count", ctx, filter).Return(int64(2), nil)

	out, total, err := service.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, int64(2), total)
}
