package availability

import (
	"strings"

	"github.com/shopspring/decimal"
)

const preferredTierKeyword = "general"

// IsBracketExhausted reports whether a bracket has no stock left. Explicit
// sold/capacity counters win; otherwise the tier's cumulative sales are
// compared against the bracket ceiling.
func IsBracketExhausted(bracket PriceBracket, unitsSold int) bool {
	if bracket.Capacity != nil && bracket.Sold != nil {
		return *bracket.Sold >= *bracket.Capacity
	}
	return unitsSold >= bracket.UpTo
}

// IsTierSoldOut reports whether every bracket of the tier is exhausted.
// A tier without brackets is only sold out when it carries a capacity that
// has been reached.
func IsTierSoldOut(tier TicketTier, sales SalesState) bool {
	unitsSold := sales.UnitsSold(tier.Type)

	if len(tier.Brackets) == 0 {
		if tier.Capacity == nil {
			return false
		}
		return unitsSold >= *tier.Capacity
	}

	for _, bracket := range tier.Brackets {
		if !IsBracketExhausted(bracket, unitsSold) {
			return false
		}
	}
	return true
}

// IsEventSoldOut reports whether all tiers are sold out. An event without
// tiers has no ticketing configured and is never sold out.
func IsEventSoldOut(tiers []TicketTier, sales SalesState) bool {
	if len(tiers) == 0 {
		return false
	}
	for _, tier := range tiers {
		if !IsTierSoldOut(tier, sales) {
			return false
		}
	}
	return true
}

// CheapestAvailable returns the lowest priced open bracket. On equal prices a
// "general" tier is preferred over the others.
func CheapestAvailable(tiers []TicketTier, sales SalesState) (Offer, bool) {
	var (
		best     Offer
		found    bool
		bestPref bool
	)

	for _, tier := range tiers {
		if IsTierSoldOut(tier, sales) {
			continue
		}
		unitsSold := sales.UnitsSold(tier.Type)
		preferred := isPreferredTier(tier.Type)

		for _, bracket := range tier.Brackets {
			if IsBracketExhausted(bracket, unitsSold) {
				continue
			}
			switch {
			case !found,
				bracket.Price.LessThan(best.Price),
				bracket.Price.Equal(best.Price) && preferred && !bestPref:
				best = Offer{TierType: tier.Type, Price: bracket.Price, UpTo: bracket.UpTo}
				bestPref = preferred
				found = true
			}
		}
	}

	return best, found
}

// CheapestAvailablePrice is CheapestAvailable without the tier details.
func CheapestAvailablePrice(tiers []TicketTier, sales SalesState) (decimal.Decimal, bool) {
	offer, ok := CheapestAvailable(tiers, sales)
	if !ok {
		return decimal.Zero, false
	}
	return offer.Price, true
}

// TierStatus builds the per-tier availability summary.
func TierStatus(tier TicketTier, sales SalesState) TierAvailability {
	unitsSold := sales.UnitsSold(tier.Type)
	status := TierAvailability{
		Type:       tier.Type,
		UnitsSold:  unitsSold,
		SoldOut:    IsTierSoldOut(tier, sales),
		HasBracket: len(tier.Brackets) > 0,
	}

	if capacity, ok := tierCeiling(tier); ok {
		remaining := capacity - unitsSold
		if remaining < 0 {
			remaining = 0
		}
		status.Remaining = &remaining
	}

	if !status.SoldOut {
		if offer, ok := CheapestAvailable([]TicketTier{tier}, sales); ok {
			price := offer.Price
			status.PriceFrom = &price
		}
	}

	return status
}

// Statuses maps TierStatus over an event's tiers.
func Statuses(tiers []TicketTier, sales SalesState) []TierAvailability {
	statuses := make([]TierAvailability, 0, len(tiers))
	for _, tier := range tiers {
		statuses = append(statuses, TierStatus(tier, sales))
	}
	return statuses
}

// tierCeiling returns the highest cumulative unit count the tier can sell.
// Brackets with explicit counters carry their own capacity and make the
// ceiling unknown.
func tierCeiling(tier TicketTier) (int, bool) {
	if len(tier.Brackets) == 0 {
		if tier.Capacity == nil {
			return 0, false
		}
		return *tier.Capacity, true
	}

	ceiling := 0
	for _, bracket := range tier.Brackets {
		if bracket.Capacity != nil && bracket.Sold != nil {
			return 0, false
		}
		if bracket.UpTo > ceiling {
			ceiling = bracket.UpTo
		}
	}
	return ceiling, true
}

func isPreferredTier(ticketType string) bool {
	return strings.Contains(strings.ToLower(ticketType), preferredTierKeyword)
}
