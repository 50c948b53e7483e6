package clubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubly/internal/events"
	"clubly/internal/pricetier"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 1, 4, 0, 0, 0, time.UTC)

func newTestService(repo Repository, catalog EventCatalog) *service {
	svc := NewService(repo, catalog, 20, 50).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func prices(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.RequireFromString(v))
	}
	return out
}

func TestRecomputePriceTier(t *testing.T) {
	tests := []struct {
		name         string
		declared     pricetier.PriceTier
		history      []decimal.Decimal
		wantComputed pricetier.PriceTier
		wantTier     pricetier.PriceTier
		wantVerified bool
		wantSample   int
	}{
		{
			name:         "three priced events verify the tier",
			declared:     pricetier.Luxury,
			history:      prices("20", "25", "30"),
			wantComputed: pricetier.Medium,
			wantTier:     pricetier.Medium,
			wantVerified: true,
			wantSample:   3,
		},
		{
			name:         "unpriced events are ignored",
			declared:     pricetier.Low,
			history:      prices("0", "60", "0", "55"),
			wantComputed: pricetier.None,
			wantTier:     pricetier.Low,
			wantVerified: false,
			wantSample:   2,
		},
		{
			name:         "no history keeps the declared tier",
			declared:     pricetier.High,
			history:      nil,
			wantComputed: pricetier.None,
			wantTier:     pricetier.High,
			wantSample:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			catalog := new(MockCatalog)
			svc := newTestService(repo, catalog)

			club := &Club{ID: uuid.New(), Name: "Fabrik", Rating: 4.3, DeclaredTier: tt.declared, ComputedTier: pricetier.Luxury}

			repo.On("GetByID", mock.Anything, club.ID).Return(club, nil)
			catalog.On("AveragePricesForClub", mock.Anything, club.ID).Return(tt.history, nil)
			repo.On("UpdatePriceTier", mock.Anything, mock.MatchedBy(func(c *Club) bool {
				return c.ComputedTier == tt.wantComputed && c.TierSampleSize == tt.wantSample &&
					c.TierComputedAt != nil && c.TierComputedAt.Equal(fixedNow)
			})).Return(nil)
			catalog.On("SyncClubSnapshot", mock.Anything, club.ID, events.ClubSnapshot{
				Name:         "Fabrik",
				Rating:       4.3,
				DeclaredTier: tt.declared,
				ComputedTier: tt.wantComputed,
			}).Return(nil)

			resp, err := svc.RecomputePriceTier(context.Background(), club.ID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTier, resp.PriceTier.Tier)
			assert.Equal(t, tt.wantVerified, resp.PriceTier.Verified)
			assert.Equal(t, tt.wantSample, resp.SampleSize)
			assert.Equal(t, pricetier.VerificationThreshold, resp.Threshold)
			repo.AssertExpectations(t)
			catalog.AssertExpectations(t)
		})
	}
}

func TestRecomputePriceTierErrors(t *testing.T) {
	repo := new(MockRepository)
	catalog := new(MockCatalog)
	svc := newTestService(repo, catalog)

	missing := uuid.New()
	broken := uuid.New()
	repo.On("GetByID", mock.Anything, missing).Return(nil, ErrClubNotFound)
	repo.On("GetByID", mock.Anything, broken).Return(&Club{ID: broken}, nil)
	catalog.On("AveragePricesForClub", mock.Anything, broken).Return(nil, errors.New("db down"))

	_, err := svc.RecomputePriceTier(context.Background(), missing)
	assert.ErrorIs(t, err, ErrClubNotFound)

	_, err = svc.RecomputePriceTier(context.Background(), broken)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdatePriceTier", mock.Anything, mock.Anything)
}

func TestRecomputeAllCollectsFailures(t *testing.T) {
	repo := new(MockRepository)
	catalog := new(MockCatalog)
	svc := newTestService(repo, catalog)

	stable := &Club{ID: uuid.New(), Name: "Stable", ComputedTier: pricetier.Medium}
	moved := &Club{ID: uuid.New(), Name: "Moved"}
	failing := &Club{ID: uuid.New(), Name: "Failing"}

	repo.On("ListActiveIDs", mock.Anything).Return([]uuid.UUID{stable.ID, moved.ID, failing.ID}, nil)
	for _, c := range []*Club{stable, moved, failing} {
		repo.On("GetByID", mock.Anything, c.ID).Return(c, nil)
	}
	catalog.On("AveragePricesForClub", mock.Anything, stable.ID).Return(prices("20", "22", "28"), nil)
	catalog.On("AveragePricesForClub", mock.Anything, moved.ID).Return(prices("70", "80", "90"), nil)
	catalog.On("AveragePricesForClub", mock.Anything, failing.ID).Return(nil, errors.New("timeout"))
	repo.On("UpdatePriceTier", mock.Anything, mock.Anything).Return(nil)
	catalog.On("SyncClubSnapshot", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	summary, err := svc.RecomputeAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Verified)
	assert.Equal(t, 1, summary.Changed)
	assert.Equal(t, []string{failing.ID.String()}, summary.Failed)
}

func TestRecomputeAllStopsOnCancel(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockCatalog))

	repo.On("ListActiveIDs", mock.Anything).Return([]uuid.UUID{uuid.New()}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := svc.RecomputeAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Processed)
}

func TestListClubs(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	clubs := []Club{
		{ID: uuid.New(), Name: "Verified", Rating: 4.8, DeclaredTier: pricetier.Low, ComputedTier: pricetier.High},
		{ID: uuid.New(), Name: "Declared", Rating: 4.1, DeclaredTier: pricetier.High},
	}
	repo.On("List", mock.Anything, ClubFilter{City: "madrid", Tier: pricetier.High, Offset: 50, Limit: 50}).
		Return(clubs, int64(52), nil)

	got, err := svc.ListClubs(context.Background(), ClubListQuery{City: " Madrid", PriceTier: "HIGH", Page: 2, Limit: 80})

	require.NoError(t, err)
	require.Len(t, got.Clubs, 2)
	assert.True(t, got.Clubs[0].PriceTier.Verified)
	assert.False(t, got.Clubs[1].PriceTier.Verified)
	assert.Equal(t, "€€€", got.Clubs[1].PriceTier.Symbol)
	assert.Equal(t, 2, got.Pagination.TotalPages)
}

func TestListClubsRejectsUnknownTier(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	_, err := svc.ListClubs(context.Background(), ClubListQuery{PriceTier: "cheapish"})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetClubAndPriceTier(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, nil)

	computedAt := fixedNow.Add(-time.Hour)
	club := &Club{
		ID:             uuid.New(),
		Name:           "Razzmatazz",
		City:           "Barcelona",
		Rating:         4.6,
		DeclaredTier:   pricetier.Medium,
		AveragePrice:   decimal.RequireFromString("14.50"),
		TierSampleSize: 2,
		TierComputedAt: &computedAt,
	}
	repo.On("GetByID", mock.Anything, club.ID).Return(club, nil)

	detail, err := svc.GetClub(context.Background(), club.ID)
	require.NoError(t, err)
	assert.Equal(t, "Razzmatazz", detail.Name)
	assert.Equal(t, pricetier.Medium, detail.PriceTier.Tier)

	tier, err := svc.GetPriceTier(context.Background(), club.ID)
	require.NoError(t, err)
	assert.False(t, tier.PriceTier.Verified)
	assert.Equal(t, 2, tier.SampleSize)
	assert.True(t, tier.AveragePrice.Equal(decimal.RequireFromString("14.5")))
}
