package sales

import (
	"context"
	"fmt"
	"time"

	"clubly/internal/availability"
	"clubly/pkg/logger"

	"github.com/google/uuid"
)

// EventCatalog is the events side of purchase ingestion
type EventCatalog interface {
	TicketTiers(ctx context.Context, eventID uuid.UUID) ([]availability.TicketTier, error)
	InvalidateEvent(ctx context.Context, eventID uuid.UUID) error
}

type Service interface {
	RecordPurchase(ctx context.Context, purchase *PurchaseCompleted) (*PurchaseResult, error)
	GetEventSales(ctx context.Context, eventID uuid.UUID) (*EventSalesResponse, error)

	Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error)
	Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error)
}

// PurchaseResult describes what a purchase did to availability
type PurchaseResult struct {
	Duplicate    bool `json:"duplicate"`
	UnitsSold    int  `json:"units_sold"`
	TierSoldOut  bool `json:"tier_sold_out"`
	EventSoldOut bool `json:"event_sold_out"`
	Published    bool `json:"published"`
}

type EventSalesResponse struct {
	EventID    string                          `json:"event_id"`
	UnitsSold  availability.SalesState         `json:"units_sold"`
	TotalUnits int                             `json:"total_units"`
	SoldOut    bool                            `json:"sold_out"`
	Tiers      []availability.TierAvailability `json:"tiers"`
}

type service struct {
	repo      Repository
	catalog   EventCatalog
	publisher Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, catalog EventCatalog) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		log:     logger.GetDefault(),
		now:     time.Now,
	}
}

// NewServiceWithPublisher also announces sold out transitions
func NewServiceWithPublisher(repo Repository, catalog EventCatalog, publisher Publisher) Service {
	svc := NewService(repo, catalog).(*service)
	svc.publisher = publisher
	return svc
}

func (s *service) Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error) {
	return s.repo.Snapshot(ctx, eventID)
}

func (s *service) Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error) {
	return s.repo.Snapshots(ctx, eventIDs)
}

func (s *service) RecordPurchase(ctx context.Context, purchase *PurchaseCompleted) (*PurchaseResult, error) {
	if err := purchase.Validate(); err != nil {
		return nil, err
	}
	eventID, err := uuid.Parse(purchase.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPurchase, err)
	}

	tiers, err := s.catalog.TicketTiers(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket tiers: %w", err)
	}

	// Read outside the ApplyPurchase transaction. Purchases are partitioned by
	// event id, so one consumer owns an event's counters at a time.
	before, err := s.repo.Snapshot(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	unitsSold, applied, err := s.repo.ApplyPurchase(ctx, purchase)
	if err != nil {
		return nil, err
	}
	if !applied {
		s.log.DebugWithContext(ctx, "Duplicate purchase ignored", map[string]interface{}{
			"purchase_id": purchase.PurchaseID,
		})
		return &PurchaseResult{Duplicate: true, UnitsSold: unitsSold}, nil
	}

	after := make(availability.SalesState, len(before)+1)
	for ticketType, units := range before {
		after[ticketType] = units
	}
	after[purchase.TicketType] = unitsSold

	result := &PurchaseResult{
		UnitsSold:    unitsSold,
		EventSoldOut: availability.IsEventSoldOut(tiers, after),
	}
	eventWasSoldOut := availability.IsEventSoldOut(tiers, before)

	tierWasSoldOut := false
	for _, tier := range tiers {
		if tier.Type == purchase.TicketType {
			tierWasSoldOut = availability.IsTierSoldOut(tier, before)
			result.TierSoldOut = availability.IsTierSoldOut(tier, after)
			break
		}
	}

	s.log.LogPurchaseApplied(ctx, purchase.PurchaseID, purchase.EventID, purchase.TicketType, unitsSold)

	if result.TierSoldOut != tierWasSoldOut || result.EventSoldOut != eventWasSoldOut {
		s.log.LogAvailabilityChanged(ctx, purchase.EventID, purchase.TicketType, result.TierSoldOut, result.EventSoldOut)
		result.Published = s.publish(ctx, &AvailabilityChanged{
			EventID:     purchase.EventID,
			TicketType:  purchase.TicketType,
			SoldOut:     result.EventSoldOut,
			TierSoldOut: result.TierSoldOut,
			UnitsSold:   unitsSold,
			OccurredAt:  s.now().UTC(),
		})
	}

	if err := s.catalog.InvalidateEvent(ctx, eventID); err != nil {
		s.log.WarnWithContext(ctx, "Failed to invalidate event cache", map[string]interface{}{
			"event_id": purchase.EventID,
			"error":    err.Error(),
		})
	}

	return result, nil
}

// publish reports whether the change was handed to the broker. A failure
// is logged only; the counter is already committed.
func (s *service) publish(ctx context.Context, change *AvailabilityChanged) bool {
	if s.publisher == nil {
		return false
	}
	if err := s.publisher.PublishAvailabilityChanged(ctx, change); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish availability change", err, map[string]interface{}{
			"event_id":    change.EventID,
			"ticket_type": change.TicketType,
		})
		return false
	}
	return true
}

func (s *service) GetEventSales(ctx context.Context, eventID uuid.UUID) (*EventSalesResponse, error) {
	tiers, err := s.catalog.TicketTiers(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket tiers: %w", err)
	}

	state, err := s.repo.Snapshot(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	total := 0
	for _, units := range state {
		total += units
	}

	return &EventSalesResponse{
		EventID:    eventID.String(),
		UnitsSold:  state,
		TotalUnits: total,
		SoldOut:    availability.IsEventSoldOut(tiers, state),
		Tiers:      availability.Statuses(tiers, state),
	}, nil
}
