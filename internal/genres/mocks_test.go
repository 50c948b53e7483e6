package genres

import (
	"context"
	"time"

	"clubly/pkg/cache"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetActive(ctx context.Context) ([]Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Genre), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Genre), args.Error(1)
}

func (m *MockRepository) GetByNames(ctx context.Context, names []string) ([]Genre, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Genre), args.Error(1)
}

func (m *MockRepository) UpcomingEventCounts(ctx context.Context, now time.Time) (map[string]int64, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, genres []Genre) error {
	args := m.Called(ctx, genres)
	return args.Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) SetCacheService(cache.Service) {}

func (m *MockService) GetActiveGenres(ctx context.Context) ([]GenreResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GenreResponse), args.Error(1)
}

func (m *MockService) GetGenreBySlug(ctx context.Context, slug string) (*GenreResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GenreResponse), args.Error(1)
}

func (m *MockService) EnsureGenres(ctx context.Context, names []string) ([]Genre, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Genre), args.Error(1)
}

func (m *MockService) InvalidateCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
