package genres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clubly/internal/shared/constants"
	"clubly/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetActiveGenres(ctx context.Context) ([]GenreResponse, error)
	GetGenreBySlug(ctx context.Context, slug string) (*GenreResponse, error)
	EnsureGenres(ctx context.Context, names []string) ([]Genre, error)
	InvalidateCache(ctx context.Context) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	now          func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetActiveGenres(ctx context.Context) ([]GenreResponse, error) {
	var result []GenreResponse
	if s.cacheService == nil {
		return s.loadActiveGenres(ctx)
	}

	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_GENRES_ACTIVE, constants.TTL_GENRES_ACTIVE,
		func() (interface{}, error) { return s.loadActiveGenres(ctx) }, &result)
	return result, err
}

func (s *service) loadActiveGenres(ctx context.Context) ([]GenreResponse, error) {
	genres, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	counts, err := s.repo.UpcomingEventCounts(ctx, s.now())
	if err != nil {
		return nil, err
	}

	responses := make([]GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, genres[i].ToResponse(counts[genres[i].ID.String()]))
	}
	return responses, nil
}

func (s *service) GetGenreBySlug(ctx context.Context, slug string) (*GenreResponse, error) {
	slug = GenerateSlug(slug)
	if slug == "" {
		return nil, ErrGenreNotFound
	}

	load := func() (interface{}, error) {
		genre, err := s.repo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		resp := genre.ToResponse(0)
		return &resp, nil
	}

	if s.cacheService == nil {
		value, err := load()
		if err != nil {
			return nil, err
		}
		return value.(*GenreResponse), nil
	}

	var result GenreResponse
	if err := s.cacheService.GetOrSet(ctx, constants.BuildGenreBySlugKey(slug), constants.TTL_GENRE_DETAIL, load, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EnsureGenres returns catalogue entries for names, creating the missing ones
func (s *service) EnsureGenres(ctx context.Context, names []string) ([]Genre, error) {
	wanted := make(map[string]string)
	var normalized []string
	for _, name := range names {
		key := Normalize(name)
		if key == "" {
			continue
		}
		if _, ok := wanted[key]; !ok {
			wanted[key] = strings.TrimSpace(name)
			normalized = append(normalized, key)
		}
	}

	existing, err := s.repo.GetByNames(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up genres: %w", err)
	}
	for _, g := range existing {
		delete(wanted, Normalize(g.Name))
	}

	var missing []Genre
	for _, key := range normalized {
		if name, ok := wanted[key]; ok {
			missing = append(missing, Genre{Name: name, Slug: GenerateSlug(name), IsActive: true})
		}
	}
	if len(missing) > 0 {
		if err := s.repo.Upsert(ctx, missing); err != nil {
			return nil, fmt.Errorf("failed to create genres: %w", err)
		}
		if err := s.InvalidateCache(ctx); err != nil {
			return nil, err
		}
	}

	return append(existing, missing...), nil
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	return s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_GENRES_ALL)
}
