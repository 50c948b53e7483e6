package events

import (
	"context"

	"clubly/internal/availability"
	"clubly/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindForDiscovery(ctx context.Context, filter DiscoveryFilter) ([]Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Event), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

func (m *MockRepository) GetTicketTiers(ctx context.Context, eventID uuid.UUID) ([]TicketTier, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TicketTier), args.Error(1)
}

func (m *MockRepository) ListByClub(ctx context.Context, clubID uuid.UUID) ([]Event, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Event), args.Error(1)
}

func (m *MockRepository) UpdateClubSnapshot(ctx context.Context, clubID uuid.UUID, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, clubID, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, event *Event) error {
	return m.Called(ctx, event).Error(0)
}

type MockSalesReader struct {
	mock.Mock
}

func (m *MockSalesReader) Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(availability.SalesState), args.Error(1)
}

func (m *MockSalesReader) Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]availability.SalesState), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) SetCacheService(cache.Service) {}

func (m *MockService) SetSalesReader(SalesReader) {}

func (m *MockService) ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaginatedEvents), args.Error(1)
}

func (m *MockService) GetEvent(ctx context.Context, id uuid.UUID) (*EventDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EventDetail), args.Error(1)
}

func (m *MockService) GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AvailabilityResponse), args.Error(1)
}

func (m *MockService) TicketTiers(ctx context.Context, eventID uuid.UUID) ([]availability.TicketTier, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.TicketTier), args.Error(1)
}

func (m *MockService) InvalidateEvent(ctx context.Context, eventID uuid.UUID) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *MockService) AveragePricesForClub(ctx context.Context, clubID uuid.UUID) ([]decimal.Decimal, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

func (m *MockService) SyncClubSnapshot(ctx context.Context, clubID uuid.UUID, snapshot ClubSnapshot) error {
	return m.Called(ctx, clubID, snapshot).Error(0)
}
