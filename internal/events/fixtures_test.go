package events

import (
	"time"

	"clubly/internal/genres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func bracket(upTo int, price string) PriceBracket {
	return PriceBracket{UpTo: upTo, Price: decimal.RequireFromString(price)}
}

func tier(ticketType string, position int, brackets ...PriceBracket) TicketTier {
	return TicketTier{Type: ticketType, Position: position, Brackets: brackets}
}

func newEvent(name string, rating float64, genreNames []string, tiers ...TicketTier) Event {
	event := Event{
		ID:         uuid.New(),
		Name:       name,
		City:       "Lisbon",
		StartsAt:   time.Date(2026, 11, 7, 23, 0, 0, 0, time.UTC),
		Status:     "published",
		ClubID:     uuid.New(),
		ClubName:   name + " Club",
		ClubRating: rating,
	}
	for _, g := range genreNames {
		event.Genres = append(event.Genres, genres.Genre{Name: g, Slug: genres.GenerateSlug(g)})
	}
	event.TicketTiers = tiers
	return event
}
