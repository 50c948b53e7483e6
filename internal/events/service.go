package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubly/internal/availability"
	"clubly/internal/genres"
	"clubly/internal/pricetier"
	"clubly/internal/ranking"
	"clubly/internal/shared/constants"
	"clubly/internal/shared/utils/response"
	"clubly/pkg/cache"
	"clubly/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuery = errors.New("invalid query")

const maxDiscoveryCandidates = 1000

// SalesReader provides the cumulative units sold per ticket type
type SalesReader interface {
	Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error)
	Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetSalesReader(salesReader SalesReader)

	ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*EventDetail, error)
	GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error)

	// Used by the sales pipeline
	TicketTiers(ctx context.Context, eventID uuid.UUID) ([]availability.TicketTier, error)
	InvalidateEvent(ctx context.Context, eventID uuid.UUID) error

	// Used by club price tier recomputation
	AveragePricesForClub(ctx context.Context, clubID uuid.UUID) ([]decimal.Decimal, error)
	SyncClubSnapshot(ctx context.Context, clubID uuid.UUID, snapshot ClubSnapshot) error
}

// ClubSnapshot is the club data copied onto its events
type ClubSnapshot struct {
	Name         string
	Rating       float64
	DeclaredTier pricetier.PriceTier
	ComputedTier pricetier.PriceTier
}

// Options configures listing defaults
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	ListingCacheTTL time.Duration
}

type service struct {
	repo         Repository
	salesReader  SalesReader
	cacheService cache.Service
	presenter    Presenter
	opts         Options
	log          *logger.Logger
	now          func() time.Time
}

func NewService(repo Repository, presenter Presenter, opts Options) Service {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 20
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	if opts.ListingCacheTTL <= 0 {
		opts.ListingCacheTTL = constants.TTL_EVENT_LIST
	}

	return &service{
		repo:      repo,
		presenter: presenter,
		opts:      opts,
		log:       logger.GetDefault(),
		now:       time.Now,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetSalesReader(salesReader SalesReader) {
	s.salesReader = salesReader
}

// listingRequest is a validated, normalised EventListQuery
type listingRequest struct {
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	Search      string              `json:"search"`
	City        string              `json:"city"`
	ClubID      *uuid.UUID          `json:"club_id"`
	From        time.Time           `json:"from"`
	To          *time.Time          `json:"to"`
	Genres      []string            `json:"genres"`
	MaxPrice    *decimal.Decimal    `json:"max_price"`
	Tier        pricetier.PriceTier `json:"tier"`
	HideSoldOut bool                `json:"hide_sold_out"`
}

func (s *service) normalizeQuery(query EventListQuery) (*listingRequest, error) {
	req := &listingRequest{
		Page:        query.Page,
		Limit:       query.Limit,
		Search:      strings.TrimSpace(query.Search),
		City:        strings.ToLower(strings.TrimSpace(query.City)),
		Genres:      genres.ParseQuery(query.Genres...),
		HideSoldOut: query.HideSoldOut,
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = s.opts.DefaultPageSize
	}
	if req.Limit > s.opts.MaxPageSize {
		req.Limit = s.opts.MaxPageSize
	}

	if query.ClubID != "" {
		clubID, err := uuid.Parse(query.ClubID)
		if err != nil {
			return nil, fmt.Errorf("%w: club_id: %v", ErrInvalidQuery, err)
		}
		req.ClubID = &clubID
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	req.From = today
	if query.DateFrom != "" {
		from, err := time.Parse(constants.DateLayout, query.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: date_from: %v", ErrInvalidQuery, err)
		}
		req.From = from
	}
	if query.DateTo != "" {
		to, err := time.Parse(constants.DateLayout, query.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: date_to: %v", ErrInvalidQuery, err)
		}
		// include the whole day
		to = to.Add(24 * time.Hour)
		if !to.After(req.From) {
			return nil, fmt.Errorf("%w: date_to must not be before date_from", ErrInvalidQuery)
		}
		req.To = &to
	}

	if query.MaxPrice != "" {
		maxPrice, err := decimal.NewFromString(query.MaxPrice)
		if err != nil || maxPrice.IsNegative() {
			return nil, fmt.Errorf("%w: max_price must be a non-negative number", ErrInvalidQuery)
		}
		req.MaxPrice = &maxPrice
	}

	tier, err := pricetier.ParseTier(query.PriceTier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	req.Tier = tier

	return req, nil
}

// cacheKey derives a stable listing key from the normalised request
func (r *listingRequest) cacheKey() string {
	payload, _ := json.Marshal(r)
	return constants.BuildEventListKey(uuid.NewSHA1(uuid.NameSpaceURL, payload).String())
}

func (s *service) ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	req, err := s.normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	if s.cacheService == nil {
		return s.buildListing(ctx, req)
	}

	var result PaginatedEvents
	err = s.cacheService.GetOrSet(ctx, req.cacheKey(), s.opts.ListingCacheTTL, func() (interface{}, error) {
		return s.buildListing(ctx, req)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) buildListing(ctx context.Context, req *listingRequest) (*PaginatedEvents, error) {
	events, err := s.repo.FindForDiscovery(ctx, DiscoveryFilter{
		City:          req.City,
		ClubID:        req.ClubID,
		Search:        req.Search,
		From:          req.From,
		To:            req.To,
		MaxCandidates: maxDiscoveryCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	sales, err := s.salesFor(ctx, events)
	if err != nil {
		return nil, err
	}

	cards := make([]EventCard, 0, len(events))
	for i := range events {
		cards = append(cards, s.presenter.Card(&events[i], sales[events[i].ID]))
	}

	ranked := ranking.Rank(cards, req.Genres,
		func(c EventCard) []string { return c.Genres },
		func(c EventCard) float64 { return c.ClubRating },
	)

	filtered := make([]EventCard, 0, len(ranked))
	for _, scored := range ranked {
		card := scored.Item
		card.Relevance = scored.Relevance
		if matchesFilters(card, req) {
			filtered = append(filtered, card)
		}
	}

	total := len(filtered)
	start := (req.Page - 1) * req.Limit
	if start > total {
		start = total
	}
	end := start + req.Limit
	if end > total {
		end = total
	}

	genresApplied := req.Genres
	if genresApplied == nil {
		genresApplied = []string{}
	}

	return &PaginatedEvents{
		Events:     filtered[start:end],
		Genres:     genresApplied,
		Pagination: response.NewPagination(req.Page, req.Limit, int64(total)),
	}, nil
}

// matchesFilters applies the filters that need the annotated card
func matchesFilters(card EventCard, req *listingRequest) bool {
	if len(req.Genres) > 0 && card.Relevance <= 0 {
		return false
	}
	if req.HideSoldOut && card.SoldOut {
		return false
	}
	if req.MaxPrice != nil && (card.FromPrice == nil || card.FromPrice.GreaterThan(*req.MaxPrice)) {
		return false
	}
	if req.Tier.IsSet() && card.PriceTier.Tier != req.Tier {
		return false
	}
	return true
}

func (s *service) salesFor(ctx context.Context, events []Event) (map[uuid.UUID]availability.SalesState, error) {
	if s.salesReader == nil || len(events) == 0 {
		return map[uuid.UUID]availability.SalesState{}, nil
	}

	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	sales, err := s.salesReader.Snapshots(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	return sales, nil
}

func (s *service) salesForEvent(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error) {
	if s.salesReader == nil {
		return availability.SalesState{}, nil
	}
	sales, err := s.salesReader.Snapshot(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	return sales, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*EventDetail, error) {
	load := func() (interface{}, error) {
		event, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		sales, err := s.salesForEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		detail := s.presenter.Detail(event, sales)
		return &detail, nil
	}

	if s.cacheService == nil {
		value, err := load()
		if err != nil {
			return nil, err
		}
		return value.(*EventDetail), nil
	}

	var detail EventDetail
	if err := s.cacheService.GetOrSet(ctx, constants.BuildEventDetailKey(id.String()), constants.TTL_EVENT_DETAIL, load, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *service) GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	load := func() (interface{}, error) {
		event, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		sales, err := s.salesForEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		resp := s.presenter.Availability(event, sales)
		return &resp, nil
	}

	if s.cacheService == nil {
		value, err := load()
		if err != nil {
			return nil, err
		}
		return value.(*AvailabilityResponse), nil
	}

	var resp AvailabilityResponse
	if err := s.cacheService.GetOrSet(ctx, constants.BuildEventAvailabilityKey(id.String()), constants.TTL_EVENT_AVAILABILITY, load, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) TicketTiers(ctx context.Context, eventID uuid.UUID) ([]availability.TicketTier, error) {
	stored, err := s.repo.GetTicketTiers(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return toDomainTiers(stored), nil
}

// InvalidateEvent drops every cached view that depends on the event's sales
func (s *service) InvalidateEvent(ctx context.Context, eventID uuid.UUID) error {
	if s.cacheService == nil {
		return nil
	}

	if err := s.cacheService.Delete(ctx,
		constants.BuildEventDetailKey(eventID.String()),
		constants.BuildEventAvailabilityKey(eventID.String()),
	); err != nil {
		return err
	}
	return s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_LISTS)
}

// AveragePricesForClub returns the average bracket price of each event the
// club has hosted or scheduled. Unpriced events yield zero.
func (s *service) AveragePricesForClub(ctx context.Context, clubID uuid.UUID) ([]decimal.Decimal, error) {
	events, err := s.repo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load club events: %w", err)
	}

	history := make([]decimal.Decimal, 0, len(events))
	for i := range events {
		history = append(history, pricetier.AverageEventPrice(events[i].Tiers()))
	}
	return history, nil
}

func (s *service) SyncClubSnapshot(ctx context.Context, clubID uuid.UUID, snapshot ClubSnapshot) error {
	updated, err := s.repo.UpdateClubSnapshot(ctx, clubID, map[string]interface{}{
		"club_name":          snapshot.Name,
		"club_rating":        snapshot.Rating,
		"club_declared_tier": snapshot.DeclaredTier,
		"club_computed_tier": snapshot.ComputedTier,
	})
	if err != nil {
		return fmt.Errorf("failed to sync club snapshot: %w", err)
	}

	s.log.DebugWithContext(ctx, "Club snapshot synced to events", map[string]interface{}{
		"club_id": clubID.String(),
		"events":  updated,
	})

	if s.cacheService == nil {
		return nil
	}
	return s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_ALL)
}
