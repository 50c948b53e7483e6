package events

import (
	"time"

	"clubly/internal/availability"
	"clubly/internal/pricetier"
	"clubly/internal/shared/utils/response"

	"github.com/shopspring/decimal"
)

type EventListQuery struct {
	Page        int      `form:"page" binding:"omitempty,min=1"`
	Limit       int      `form:"limit" binding:"omitempty,min=1"`
	Search      string   `form:"search" binding:"omitempty,max=100"`
	City        string   `form:"city" binding:"omitempty,max=100"`
	ClubID      string   `form:"club_id" binding:"omitempty,uuid"`
	DateFrom    string   `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string   `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Genres      []string `form:"genres"`
	MaxPrice    string   `form:"max_price" binding:"omitempty,numeric"`
	PriceTier   string   `form:"price_tier"`
	HideSoldOut bool     `form:"hide_sold_out"`
}

// TierInfo is the price tier block shown on cards and club pages
type TierInfo struct {
	Tier        pricetier.PriceTier `json:"tier"`
	Symbol      string              `json:"symbol"`
	Label       string              `json:"label"`
	Description string              `json:"description"`
	Verified    bool                `json:"verified"`
}

// NewTierInfo expands an effective tier for presentation
func NewTierInfo(effective pricetier.Effective) TierInfo {
	return TierInfo{
		Tier:        effective.Tier,
		Symbol:      effective.Tier.Symbol(),
		Label:       effective.Tier.Label(),
		Description: effective.Tier.Description(),
		Verified:    effective.Verified,
	}
}

// EventCard is an annotated listing entry
type EventCard struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	ClubID       string           `json:"club_id"`
	ClubName     string           `json:"club_name"`
	ClubRating   float64          `json:"club_rating"`
	City         string           `json:"city"`
	StartsAt     time.Time        `json:"starts_at"`
	ImageURL     string           `json:"image_url,omitempty"`
	Genres       []string         `json:"genres"`
	HasTicketing bool             `json:"has_ticketing"`
	SoldOut      bool             `json:"sold_out"`
	FromPrice    *decimal.Decimal `json:"from_price,omitempty"`
	PriceLabel   string           `json:"price_label"`
	PriceTier    TierInfo         `json:"price_tier"`
	Relevance    float64          `json:"relevance"`
}

// TierView is a ticket tier with its price ladder and live availability
type TierView struct {
	Type         string                        `json:"type"`
	Brackets     []availability.PriceBracket   `json:"price_bracket"`
	Availability availability.TierAvailability `json:"availability"`
}

type EventDetail struct {
	EventCard
	Description string     `json:"description"`
	Address     string     `json:"address"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Status      string     `json:"status"`
	Tiers       []TierView `json:"tiers"`
}

type AvailabilityResponse struct {
	EventID      string                          `json:"event_id"`
	HasTicketing bool                            `json:"has_ticketing"`
	SoldOut      bool                            `json:"sold_out"`
	Cheapest     *availability.Offer             `json:"cheapest,omitempty"`
	PriceLabel   string                          `json:"price_label"`
	Tiers        []availability.TierAvailability `json:"tiers"`
}

type PaginatedEvents struct {
	Events     []EventCard         `json:"events"`
	Genres     []string            `json:"genres"`
	Pagination response.Pagination `json:"pagination"`
}
