package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubly/internal/availability"
	"clubly/internal/pricetier"
	"clubly/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 11, 5, 18, 30, 0, 0, time.UTC)

func newTestService(repo Repository, sales SalesReader) *service {
	svc := NewService(repo, testPresenter(), Options{DefaultPageSize: 20, MaxPageSize: 50}).(*service)
	svc.now = func() time.Time { return testNow }
	if sales != nil {
		svc.SetSalesReader(sales)
	}
	return svc
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}

func (m *MockCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	return m.Called(ctx, key, ttl, fetcher, dest).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func cardNames(cards []EventCard) []string {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return names
}

func TestListEventsRanksByClubRating(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	events := []Event{
		newEvent("Mid", 3.5, []string{"House"}),
		newEvent("Top", 4.9, []string{"Techno"}),
		newEvent("Low", 2.1, nil),
	}
	repo.On("FindForDiscovery", mock.Anything, mock.Anything).Return(events, nil)

	got, err := svc.ListEvents(context.Background(), EventListQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Top", "Mid", "Low"}, cardNames(got.Events))
	assert.Equal(t, []string{}, got.Genres)
	assert.Equal(t, int64(3), got.Pagination.Total)
	for _, card := range got.Events {
		assert.Equal(t, 1.0, card.Relevance)
	}
}

func TestListEventsDefaultsToToday(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	today := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
	repo.On("FindForDiscovery", mock.Anything, mock.MatchedBy(func(f DiscoveryFilter) bool {
		return f.From.Equal(today) && f.To == nil && f.City == "lisbon" && f.MaxCandidates == maxDiscoveryCandidates
	})).Return([]Event{}, nil)

	_, err := svc.ListEvents(context.Background(), EventListQuery{City: "  Lisbon "})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListEventsDateRangeIncludesLastDay(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	repo.On("FindForDiscovery", mock.Anything, mock.MatchedBy(func(f DiscoveryFilter) bool {
		return f.To != nil && f.To.Equal(time.Date(2026, 11, 9, 0, 0, 0, 0, time.UTC))
	})).Return([]Event{}, nil)

	_, err := svc.ListEvents(context.Background(), EventListQuery{DateFrom: "2026-11-06", DateTo: "2026-11-08"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListEventsGenreFilter(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	events := []Event{
		newEvent("Pop Night", 4.9, []string{"Pop"}),
		newEvent("Mixed", 4.2, []string{"Techno", "House"}),
		newEvent("Pure Techno", 4.0, []string{"Techno"}),
		newEvent("Old Techno", 2.5, []string{"Techno"}),
	}
	repo.On("FindForDiscovery", mock.Anything, mock.Anything).Return(events, nil)

	got, err := svc.ListEvents(context.Background(), EventListQuery{Genres: []string{" TECHNO,", "techno"}})

	require.NoError(t, err)
	// near ties on rating are decided by relevance, unrelated events are dropped
	assert.Equal(t, []string{"Pure Techno", "Mixed", "Old Techno"}, cardNames(got.Events))
	assert.Equal(t, []string{"techno"}, got.Genres)
	assert.InDelta(t, 1.06, got.Events[0].Relevance, 1e-9)
	assert.InDelta(t, 0.85, got.Events[1].Relevance, 1e-9)
}

func TestListEventsPostRankingFilters(t *testing.T) {
	cheap := newEvent("Cheap", 4.0, nil, tier("General", 0, bracket(100, "12")))
	pricey := newEvent("Pricey", 4.5, nil, tier("General", 0, bracket(100, "45")))
	gone := newEvent("Gone", 4.8, nil, tier("General", 0, bracket(50, "10")))
	free := newEvent("Door Only", 3.0, nil)
	cheap.ClubComputedTier = pricetier.Low
	pricey.ClubDeclaredTier = pricetier.High

	all := []Event{cheap, pricey, gone, free}
	sales := map[uuid.UUID]availability.SalesState{gone.ID: {"General": 50}}

	tests := []struct {
		name  string
		query EventListQuery
		want  []string
	}{
		{"no filters", EventListQuery{}, []string{"Gone", "Pricey", "Cheap", "Door Only"}},
		{"hide sold out", EventListQuery{HideSoldOut: true}, []string{"Pricey", "Cheap", "Door Only"}},
		{"max price drops unpriced and sold out", EventListQuery{MaxPrice: "20"}, []string{"Cheap"}},
		{"max price inclusive", EventListQuery{MaxPrice: "45"}, []string{"Pricey", "Cheap"}},
		{"price tier computed", EventListQuery{PriceTier: "low"}, []string{"Cheap"}},
		{"price tier declared", EventListQuery{PriceTier: "€€€"}, []string{"Pricey"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			reader := new(MockSalesReader)
			svc := newTestService(repo, reader)

			repo.On("FindForDiscovery", mock.Anything, mock.Anything).Return(all, nil)
			reader.On("Snapshots", mock.Anything, mock.Anything).Return(sales, nil)

			got, err := svc.ListEvents(context.Background(), tt.query)

			require.NoError(t, err)
			assert.Equal(t, tt.want, cardNames(got.Events))
		})
	}
}

func TestListEventsPagination(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	events := []Event{
		newEvent("A", 5.0, nil),
		newEvent("B", 4.0, nil),
		newEvent("C", 3.0, nil),
	}
	repo.On("FindForDiscovery", mock.Anything, mock.Anything).Return(events, nil)

	got, err := svc.ListEvents(context.Background(), EventListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, cardNames(got.Events))
	assert.Equal(t, 2, got.Pagination.TotalPages)

	got, err = svc.ListEvents(context.Background(), EventListQuery{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, got.Events)

	got, err = svc.ListEvents(context.Background(), EventListQuery{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, got.Pagination.Limit)
}

func TestListEventsInvalidQuery(t *testing.T) {
	tests := map[string]EventListQuery{
		"club id":          {ClubID: "not-a-uuid"},
		"date from":        {DateFrom: "05/11/2026"},
		"date to":          {DateTo: "tomorrow"},
		"reversed range":   {DateFrom: "2026-11-10", DateTo: "2026-11-08"},
		"negative price":   {MaxPrice: "-5"},
		"unparsable price": {MaxPrice: "cheap"},
		"unknown tier":     {PriceTier: "platinum"},
	}

	for name, query := range tests {
		t.Run(name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := newTestService(repo, nil)

			_, err := svc.ListEvents(context.Background(), query)

			assert.ErrorIs(t, err, ErrInvalidQuery)
			repo.AssertNotCalled(t, "FindForDiscovery", mock.Anything, mock.Anything)
		})
	}
}

func TestListEventsPropagatesSalesErrors(t *testing.T) {
	repo := new(MockRepository)
	reader := new(MockSalesReader)
	svc := newTestService(repo, reader)

	repo.On("FindForDiscovery", mock.Anything, mock.Anything).Return([]Event{newEvent("A", 4, nil)}, nil)
	reader.On("Snapshots", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.ListEvents(context.Background(), EventListQuery{})
	assert.ErrorContains(t, err, "failed to load sales")
}

func TestListingCacheKeyIsStable(t *testing.T) {
	svc := newTestService(new(MockRepository), nil)

	a, err := svc.normalizeQuery(EventListQuery{City: "Lisbon", Genres: []string{"House,Techno"}})
	require.NoError(t, err)
	b, err := svc.normalizeQuery(EventListQuery{City: " lisbon", Genres: []string{"house", "techno", "HOUSE"}})
	require.NoError(t, err)
	c, err := svc.normalizeQuery(EventListQuery{City: "Porto"})
	require.NoError(t, err)

	assert.Equal(t, a.cacheKey(), b.cacheKey())
	assert.NotEqual(t, a.cacheKey(), c.cacheKey())
}

func TestListEventsUsesCache(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := newTestService(repo, nil)
	svc.SetCacheService(cache)

	cache.On("GetOrSet", mock.Anything, mock.AnythingOfType("string"), svc.opts.ListingCacheTTL, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ListEvents(context.Background(), EventListQuery{})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "FindForDiscovery", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestGetEvent(t *testing.T) {
	repo := new(MockRepository)
	reader := new(MockSalesReader)
	svc := newTestService(repo, reader)

	event := newEvent("Warehouse", 4.4, []string{"Techno"}, tier("General", 0, bracket(100, "18")))
	missing := uuid.New()

	repo.On("GetByID", mock.Anything, event.ID).Return(&event, nil)
	repo.On("GetByID", mock.Anything, missing).Return(nil, ErrEventNotFound)
	reader.On("Snapshot", mock.Anything, event.ID).Return(availability.SalesState{"General": 10}, nil)

	detail, err := svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "from €18.00", detail.PriceLabel)
	require.Len(t, detail.Tiers, 1)
	assert.Equal(t, 10, detail.Tiers[0].Availability.UnitsSold)

	_, err = svc.GetEvent(context.Background(), missing)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetAvailability(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	event := newEvent("Warehouse", 4.4, nil)
	repo.On("GetByID", mock.Anything, event.ID).Return(&event, nil)

	resp, err := svc.GetAvailability(context.Background(), event.ID)

	require.NoError(t, err)
	assert.False(t, resp.SoldOut)
	assert.False(t, resp.HasTicketing)
	assert.Nil(t, resp.Cheapest)
	assert.Equal(t, "from €10.00", resp.PriceLabel)
}

func TestTicketTiersConvertsToEngineInput(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	eventID := uuid.New()
	repo.On("GetTicketTiers", mock.Anything, eventID).Return([]TicketTier{
		tier("VIP", 2, bracket(20, "60")),
		{Type: "General", Position: 1, Capacity: intPtr(300)},
	}, nil)

	tiers, err := svc.TicketTiers(context.Background(), eventID)

	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, "General", tiers[0].Type)
	assert.Equal(t, 300, *tiers[0].Capacity)
	assert.True(t, tiers[1].Brackets[0].Price.Equal(decimal.NewFromInt(60)))
}

func TestInvalidateEvent(t *testing.T) {
	svc := newTestService(new(MockRepository), nil)
	eventID := uuid.New()

	assert.NoError(t, svc.InvalidateEvent(context.Background(), eventID))

	cache := new(MockCache)
	svc.SetCacheService(cache)
	cache.On("Delete", mock.Anything, []string{
		constants.BuildEventDetailKey(eventID.String()),
		constants.BuildEventAvailabilityKey(eventID.String()),
	}).Return(nil)
	cache.On("DeletePattern", mock.Anything, constants.PATTERN_INVALIDATE_EVENT_LISTS).Return(nil)

	require.NoError(t, svc.InvalidateEvent(context.Background(), eventID))
	cache.AssertExpectations(t)
}

func TestAveragePricesForClub(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	clubID := uuid.New()
	repo.On("ListByClub", mock.Anything, clubID).Return([]Event{
		newEvent("A", 4, nil, tier("General", 0, bracket(100, "10"), bracket(200, "20"))),
		newEvent("B", 4, nil),
	}, nil)

	history, err := svc.AveragePricesForClub(context.Background(), clubID)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Equal(decimal.NewFromInt(15)), history[0].String())
	assert.True(t, history[1].IsZero())
}

func TestSyncClubSnapshot(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	svc := newTestService(repo, nil)
	svc.SetCacheService(cache)

	clubID := uuid.New()
	snapshot := ClubSnapshot{Name: "Lux", Rating: 4.7, DeclaredTier: pricetier.Medium, ComputedTier: pricetier.High}

	repo.On("UpdateClubSnapshot", mock.Anything, clubID, map[string]interface{}{
		"club_name":          "Lux",
		"club_rating":        4.7,
		"club_declared_tier": pricetier.Medium,
		"club_computed_tier": pricetier.High,
	}).Return(int64(3), nil)
	cache.On("DeletePattern", mock.Anything, constants.PATTERN_INVALIDATE_EVENT_ALL).Return(nil)

	require.NoError(t, svc.SyncClubSnapshot(context.Background(), clubID, snapshot))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
