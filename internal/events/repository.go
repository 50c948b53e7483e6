package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"clubly/internal/shared/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

// DiscoveryFilter holds the filters that can be answered in SQL
type DiscoveryFilter struct {
	City          string
	ClubID        *uuid.UUID
	Search        string
	From          time.Time
	To            *time.Time
	MaxCandidates int
}

type Repository interface {
	FindForDiscovery(ctx context.Context, filter DiscoveryFilter) ([]Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetTicketTiers(ctx context.Context, eventID uuid.UUID) ([]TicketTier, error)
	ListByClub(ctx context.Context, clubID uuid.UUID) ([]Event, error)
	UpdateClubSnapshot(ctx context.Context, clubID uuid.UUID, updates map[string]interface{}) (int64, error)
	Create(ctx context.Context, event *Event) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withPricing(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Genres").
		Preload("TicketTiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("TicketTiers.Brackets", func(db *gorm.DB) *gorm.DB { return db.Order("up_to ASC") })
}

func (r *repository) FindForDiscovery(ctx context.Context, filter DiscoveryFilter) ([]Event, error) {
	var events []Event

	db := r.db.WithContext(ctx).Model(&Event{}).
		Where("status = ?", constants.EventStatusPublished).
		Where("starts_at >= ?", filter.From)

	if filter.To != nil {
		db = db.Where("starts_at < ?", *filter.To)
	}

	if filter.City != "" {
		db = db.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(filter.City)))
	}

	if filter.ClubID != nil {
		db = db.Where("club_id = ?", *filter.ClubID)
	}

	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(club_name) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if filter.MaxCandidates > 0 {
		db = db.Limit(filter.MaxCandidates)
	}

	err := r.withPricing(db).Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.withPricing(r.db.WithContext(ctx)).
		Where("id = ? AND status <> ?", id, constants.EventStatusDraft).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetTicketTiers(ctx context.Context, eventID uuid.UUID) ([]TicketTier, error) {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", eventID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrEventNotFound
	}

	var tiers []TicketTier
	err := r.db.WithContext(ctx).
		Preload("Brackets", func(db *gorm.DB) *gorm.DB { return db.Order("up_to ASC") }).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&tiers).Error
	return tiers, err
}

// ListByClub returns every non-cancelled event of a club with its pricing
func (r *repository) ListByClub(ctx context.Context, clubID uuid.UUID) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Preload("TicketTiers").
		Preload("TicketTiers.Brackets").
		Where("club_id = ? AND status <> ?", clubID, constants.EventStatusCancelled).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// UpdateClubSnapshot rewrites the denormalised club columns of a club's events
func (r *repository) UpdateClubSnapshot(ctx context.Context, clubID uuid.UUID, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Event{}).Where("club_id = ?", clubID).Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}
