package events

import (
	"fmt"

	"clubly/internal/availability"
	"clubly/internal/shared/constants"

	"github.com/shopspring/decimal"
)

// Presenter turns event snapshots and sales into annotated cards. It owns the
// display fallback price used when nothing is computable.
type Presenter struct {
	DefaultFromPrice decimal.Decimal
	Currency         string
}

func NewPresenter(defaultFromPrice decimal.Decimal, currency string) Presenter {
	if currency == "" {
		currency = "€"
	}
	return Presenter{DefaultFromPrice: defaultFromPrice, Currency: currency}
}

// PriceLabel renders "SOLD OUT" or "from €X.XX"
func (p Presenter) PriceLabel(soldOut bool, price decimal.Decimal, ok bool) string {
	if soldOut {
		return constants.SoldOutLabel
	}
	if !ok {
		price = p.DefaultFromPrice
	}
	return fmt.Sprintf(constants.FromLabelFormat, p.Currency, price.StringFixed(2))
}

// Card annotates an event for listings. Relevance is filled in by ranking.
func (p Presenter) Card(e *Event, sales availability.SalesState) EventCard {
	tiers := e.Tiers()
	soldOut := availability.IsEventSoldOut(tiers, sales)
	price, ok := availability.CheapestAvailablePrice(tiers, sales)

	card := EventCard{
		ID:           e.ID.String(),
		Name:         e.Name,
		ClubID:       e.ClubID.String(),
		ClubName:     e.ClubName,
		ClubRating:   e.ClubRating,
		City:         e.City,
		StartsAt:     e.StartsAt,
		ImageURL:     e.ImageURL,
		Genres:       e.GenreNames(),
		HasTicketing: len(tiers) > 0,
		SoldOut:      soldOut,
		PriceLabel:   p.PriceLabel(soldOut, price, ok),
		PriceTier:    NewTierInfo(e.EffectiveTier()),
		Relevance:    1,
	}
	if ok {
		card.FromPrice = &price
	}
	return card
}

// Detail annotates a single event with per-tier availability
func (p Presenter) Detail(e *Event, sales availability.SalesState) EventDetail {
	tiers := e.Tiers()

	views := make([]TierView, 0, len(tiers))
	for _, tier := range tiers {
		views = append(views, TierView{
			Type:         tier.Type,
			Brackets:     tier.Brackets,
			Availability: availability.TierStatus(tier, sales),
		})
	}

	return EventDetail{
		EventCard:   p.Card(e, sales),
		Description: e.Description,
		Address:     e.Address,
		EndsAt:      e.EndsAt,
		Status:      e.Status,
		Tiers:       views,
	}
}

// Availability builds the availability-only view of an event
func (p Presenter) Availability(e *Event, sales availability.SalesState) AvailabilityResponse {
	tiers := e.Tiers()
	soldOut := availability.IsEventSoldOut(tiers, sales)

	resp := AvailabilityResponse{
		EventID:      e.ID.String(),
		HasTicketing: len(tiers) > 0,
		SoldOut:      soldOut,
		Tiers:        availability.Statuses(tiers, sales),
	}

	offer, ok := availability.CheapestAvailable(tiers, sales)
	if ok {
		resp.Cheapest = &offer
	}
	resp.PriceLabel = p.PriceLabel(soldOut, offer.Price, ok)
	return resp
}
