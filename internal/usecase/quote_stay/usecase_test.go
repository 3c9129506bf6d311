package quote_stay

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-HotelBookingService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

type MockInventorySource struct {
	mock.Mock
}

func (m *MockInventorySource) GetSnapshot(ctx context.Context) (*domain.InventorySnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventorySnapshot), args.Error(1)
}

type MockServiceCatalogClient struct {
	mock.Mock
}

func (m *MockServiceCatalogClient) GetServices(ctx context.Context, ids []int64) (map[int64]domain.ExtraService, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.ExtraService), args.Error(1)
}

func snapshot() *domain.InventorySnapshot {
	return &domain.InventorySnapshot{
		Rooms: []domain.Room{
			{Number: "305", Floor: 3, Capacity: 2, ExtraBeds: 1, BasePrice: decimal.RequireFromString("2000"), RoomTypeID: ptr.Ptr(int64(3)), State: domain.StateInService},
		},
		RoomTypes: []domain.RoomType{
			{ID: 3, Name: "Deluxe", CustomPrice: ptr.Ptr(decimal.RequireFromString("3500.50"))},
		},
	}
}

func newUseCase(inv *MockInventorySource, catalog *MockServiceCatalogClient) *UseCase {
	return NewUseCase(inv, catalog, pricing.NewEngine(decimal.RequireFromString("800"), "RUB"), logger.Discard())
}

func validRequest() *Request {
	return &Request{
		RoomNumber: "305",
		CheckIn:    types.MustParseDate("2025-10-01"),
		CheckOut:   types.MustParseDate("2025-10-04"),
		Adults:     2,
		Children:   1,
	}
}

func TestExecute_QuotesWithServices(t *testing.T) {
	inv := new(MockInventorySource)
	catalog := new(MockServiceCatalogClient)

	inv.On("GetSnapshot", mock.Anything).Return(snapshot(), nil)
	catalog.On("GetServices", mock.Anything, []int64{1, 1}).Return(map[int64]domain.ExtraService{
		1: {ID: 1, Name: "Breakfast", Price: decimal.RequireFromString("450")},
	}, nil)

	req := validRequest()
	req.Services = []domain.ServiceSelection{{ServiceID: 1, Quantity: 3}, {ServiceID: 1, Quantity: 3}}

	resp, err := newUseCase(inv, catalog).Execute(context.Background(), req)
	require.NoError(t, err)

	q := resp.Quote
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, pricing.RateTypeCustom, q.RateSource)
	assert.Equal(t, "10501.5", q.BaseTotal.String())
	assert.Equal(t, "2400", q.ExtraGuestTotal.String())
	require.Len(t, q.Services, 1)
	assert.Equal(t, 6, q.Services[0].Quantity)
	assert.Equal(t, "2700", q.ServicesTotal.String())
	assert.Equal(t, "15601.5", q.Total.String())
	assert.NoError(t, q.Verify())
}

func TestExecute_NoServicesSkipsCatalog(t *testing.T) {
	inv := new(MockInventorySource)
	catalog := new(MockServiceCatalogClient)

	inv.On("GetSnapshot", mock.Anything).Return(snapshot(), nil)

	req := validRequest()
	req.Children = 0

	resp, err := newUseCase(inv, catalog).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "10501.5", resp.Quote.Total.String())
	catalog.AssertNotCalled(t, "GetServices", mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r *Request)
		snapshot   *domain.InventorySnapshot
		snapErr    error
		catalogErr error
		wantErr    error
	}{
		{
			name:    "reversed dates",
			mutate:  func(r *Request) { r.CheckOut = types.MustParseDate("2025-09-30") },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "no adults",
			mutate:  func(r *Request) { r.Adults = 0 },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "zero quantity",
			mutate:  func(r *Request) { r.Services = []domain.ServiceSelection{{ServiceID: 1}} },
			wantErr: domain.ErrValidation,
		},
		{
			name:     "unknown room",
			mutate:   func(r *Request) { r.RoomNumber = "999" },
			snapshot: snapshot(),
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "too many guests",
			mutate:   func(r *Request) { r.Children = 2 },
			snapshot: snapshot(),
			wantErr:  domain.ErrValidation,
		},
		{
			name:    "inventory failure",
			mutate:  func(r *Request) {},
			snapErr: errors.New("db down"),
			wantErr: ErrInternal,
		},
		{
			name:       "service not in catalog",
			mutate:     func(r *Request) { r.Services = []domain.ServiceSelection{{ServiceID: 7, Quantity: 1}} },
			snapshot:   snapshot(),
			catalogErr: catalogClient.ErrServiceNotFound,
			wantErr:    domain.ErrNotFound,
		},
		{
			name:       "catalog unavailable",
			mutate:     func(r *Request) { r.Services = []domain.ServiceSelection{{ServiceID: 7, Quantity: 1}} },
			snapshot:   snapshot(),
			catalogErr: catalogClient.ErrUnavailable,
			wantErr:    ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := new(MockInventorySource)
			catalog := new(MockServiceCatalogClient)

			if tt.snapshot != nil || tt.snapErr != nil {
				inv.On("GetSnapshot", mock.Anything).Return(tt.snapshot, tt.snapErr)
			}
			if tt.catalogErr != nil {
				catalog.On("GetServices", mock.Anything, mock.Anything).Return(nil, tt.catalogErr)
			}

			req := validRequest()
			tt.mutate(req)

			_, err := newUseCase(inv, catalog).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
