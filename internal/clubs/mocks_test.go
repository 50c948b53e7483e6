package clubs

import (
	"context"

	"clubly/internal/events"
	"clubly/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out a copy so recompute mutations do not leak between calls
	club := *args.Get(0).(*Club)
	return &club, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ClubFilter) ([]Club, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Club), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) UpdatePriceTier(ctx context.Context, club *Club) error {
	return m.Called(ctx, club).Error(0)
}

func (m *MockRepository) Create(ctx context.Context, club *Club) error {
	return m.Called(ctx, club).Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) AveragePricesForClub(ctx context.Context, clubID uuid.UUID) ([]decimal.Decimal, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

func (m *MockCatalog) SyncClubSnapshot(ctx context.Context, clubID uuid.UUID, snapshot events.ClubSnapshot) error {
	return m.Called(ctx, clubID, snapshot).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) SetCacheService(cache.Service) {}

func (m *MockService) GetClub(ctx context.Context, id uuid.UUID) (*ClubResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClubResponse), args.Error(1)
}

func (m *MockService) ListClubs(ctx context.Context, query ClubListQuery) (*PaginatedClubs, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaginatedClubs), args.Error(1)
}

func (m *MockService) GetPriceTier(ctx context.Context, id uuid.UUID) (*PriceTierResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PriceTierResponse), args.Error(1)
}

func (m *MockService) RecomputePriceTier(ctx context.Context, id uuid.UUID) (*PriceTierResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PriceTierResponse), args.Error(1)
}

func (m *MockService) RecomputeAll(ctx context.Context) (*RecomputeSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RecomputeSummary), args.Error(1)
}
