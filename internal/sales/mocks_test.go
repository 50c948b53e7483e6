package sales

import (
	"context"

	"clubly/internal/availability"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(availability.SalesState), args.Error(1)
}

func (m *MockRepository) Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]availability.SalesState), args.Error(1)
}

func (m *MockRepository) ApplyPurchase(ctx context.Context, purchase *PurchaseCompleted) (int, bool, error) {
	args := m.Called(ctx, purchase)
	return args.Int(0), args.Bool(1), args.Error(2)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) TicketTiers(ctx context.Context, eventID uuid.UUID) ([]availability.TicketTier, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.TicketTier), args.Error(1)
}

func (m *MockCatalog) InvalidateEvent(ctx context.Context, eventID uuid.UUID) error {
	return m.Called(ctx, eventID).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAvailabilityChanged(ctx context.Context, change *AvailabilityChanged) error {
	return m.Called(ctx, change).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) RecordPurchase(ctx context.Context, purchase *PurchaseCompleted) (*PurchaseResult, error) {
	args := m.Called(ctx, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PurchaseResult), args.Error(1)
}

func (m *MockService) GetEventSales(ctx context.Context, eventID uuid.UUID) (*EventSalesResponse, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EventSalesResponse), args.Error(1)
}

func (m *MockService) Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(availability.SalesState), args.Error(1)
}

func (m *MockService) Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]availability.SalesState), args.Error(1)
}
