package clubs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubly/internal/events"
	"clubly/internal/pricetier"
	"clubly/internal/shared/constants"
	"clubly/internal/shared/utils/response"
	"clubly/pkg/cache"
	"clubly/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuery = errors.New("invalid query")

// EventCatalog is the events side of a tier recompute
type EventCatalog interface {
	AveragePricesForClub(ctx context.Context, clubID uuid.UUID) ([]decimal.Decimal, error)
	SyncClubSnapshot(ctx context.Context, clubID uuid.UUID, snapshot events.ClubSnapshot) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)

	GetClub(ctx context.Context, id uuid.UUID) (*ClubResponse, error)
	ListClubs(ctx context.Context, query ClubListQuery) (*PaginatedClubs, error)
	GetPriceTier(ctx context.Context, id uuid.UUID) (*PriceTierResponse, error)

	RecomputePriceTier(ctx context.Context, id uuid.UUID) (*PriceTierResponse, error)
	RecomputeAll(ctx context.Context) (*RecomputeSummary, error)
}

type service struct {
	repo         Repository
	catalog      EventCatalog
	cacheService cache.Service
	pageSize     int
	maxPageSize  int
	log          *logger.Logger
	now          func() time.Time
}

func NewService(repo Repository, catalog EventCatalog, pageSize, maxPageSize int) Service {
	if pageSize <= 0 {
		pageSize = 20
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &service{
		repo:        repo,
		catalog:     catalog,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
		log:         logger.GetDefault(),
		now:         time.Now,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// cached reads key through the cache when one is configured
func (s *service) cached(ctx context.Context, key string, ttl time.Duration, load func() (interface{}, error), dest interface{}) (interface{}, error) {
	if s.cacheService == nil {
		return load()
	}
	if err := s.cacheService.GetOrSet(ctx, key, ttl, load, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (s *service) GetClub(ctx context.Context, id uuid.UUID) (*ClubResponse, error) {
	value, err := s.cached(ctx, constants.BuildClubDetailKey(id.String()), constants.TTL_CLUB_DETAIL, func() (interface{}, error) {
		club, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := club.ToResponse()
		return &resp, nil
	}, &ClubResponse{})
	if err != nil {
		return nil, err
	}
	return value.(*ClubResponse), nil
}

func (s *service) GetPriceTier(ctx context.Context, id uuid.UUID) (*PriceTierResponse, error) {
	value, err := s.cached(ctx, constants.BuildClubTierKey(id.String()), constants.TTL_CLUB_TIER, func() (interface{}, error) {
		club, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := club.ToPriceTierResponse()
		return &resp, nil
	}, &PriceTierResponse{})
	if err != nil {
		return nil, err
	}
	return value.(*PriceTierResponse), nil
}

func (s *service) ListClubs(ctx context.Context, query ClubListQuery) (*PaginatedClubs, error) {
	tier, err := pricetier.ParseTier(query.PriceTier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	filter := ClubFilter{
		City:      strings.ToLower(strings.TrimSpace(query.City)),
		Search:    strings.TrimSpace(query.Search),
		Tier:      tier,
		MinRating: query.MinRating,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	}

	load := func() (interface{}, error) {
		clubs, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list clubs: %w", err)
		}
		responses := make([]ClubResponse, 0, len(clubs))
		for i := range clubs {
			responses = append(responses, clubs[i].ToResponse())
		}
		return &PaginatedClubs{
			Clubs:      responses,
			Pagination: response.NewPagination(page, limit, total),
		}, nil
	}

	// free text and rating filters are not worth a cache entry
	if filter.Search != "" || filter.MinRating > 0 {
		value, err := load()
		if err != nil {
			return nil, err
		}
		return value.(*PaginatedClubs), nil
	}

	key := constants.BuildClubListKey(filter.City, tier.String(), page, limit)
	value, err := s.cached(ctx, key, constants.TTL_CLUBS_LIST, load, &PaginatedClubs{})
	if err != nil {
		return nil, err
	}
	return value.(*PaginatedClubs), nil
}

// RecomputePriceTier derives the club tier from the average prices of its
// events. The computed tier is only kept when the resolution is verified.
func (s *service) RecomputePriceTier(ctx context.Context, id uuid.UUID) (*PriceTierResponse, error) {
	club, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recompute(ctx, club)
}

func (s *service) recompute(ctx context.Context, club *Club) (*PriceTierResponse, error) {
	id := club.ID
	history, err := s.catalog.AveragePricesForClub(ctx, id)
	if err != nil {
		return nil, err
	}

	resolution := pricetier.ResolveVenueTier(history)
	computedAt := s.now().UTC()

	club.ComputedTier = pricetier.None
	if resolution.Verified {
		club.ComputedTier = resolution.Tier
	}
	club.AveragePrice = resolution.AveragePrice.Round(2)
	club.TierSampleSize = resolution.SampleSize
	club.TierComputedAt = &computedAt

	if err := s.repo.UpdatePriceTier(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to store price tier: %w", err)
	}

	if err := s.catalog.SyncClubSnapshot(ctx, id, club.Snapshot()); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.log.LogTierRecomputed(ctx, id.String(), resolution.Tier.String(), resolution.Verified, resolution.SampleSize)

	resp := club.ToPriceTierResponse()
	return &resp, nil
}

// RecomputeAll recomputes every active club. Failures are collected and do
// not stop the run.
func (s *service) RecomputeAll(ctx context.Context) (*RecomputeSummary, error) {
	ids, err := s.repo.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}

	summary := &RecomputeSummary{Failed: []string{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		club, err := s.repo.GetByID(ctx, id)
		if err != nil {
			summary.Failed = append(summary.Failed, id.String())
			continue
		}
		previous := club.ComputedTier

		resp, err := s.recompute(ctx, club)
		if err != nil {
			s.log.ErrorWithContext(ctx, "Price tier recompute failed", err, map[string]interface{}{
				"club_id": id.String(),
			})
			summary.Failed = append(summary.Failed, id.String())
			continue
		}

		summary.Processed++
		if resp.PriceTier.Verified {
			summary.Verified++
		}
		if resp.ComputedTier != previous {
			summary.Changed++
		}
	}

	return summary, nil
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildClubDetailKey(id.String()), constants.BuildClubTierKey(id.String())); err != nil {
		s.log.WarnWithContext(ctx, "Failed to invalidate club cache", map[string]interface{}{"club_id": id.String(), "error": err.Error()})
	}
	if err := s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_CLUBS_LIST+"*"); err != nil {
		s.log.WarnWithContext(ctx, "Failed to invalidate club lists", map[string]interface{}{"error": err.Error()})
	}
}
