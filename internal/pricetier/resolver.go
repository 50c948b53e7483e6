package pricetier

import (
	"clubly/internal/availability"

	"github.com/shopspring/decimal"
)

// VerificationThreshold is the number of priced events needed before a
// computed tier is considered representative.
const VerificationThreshold = 3

// Resolution is the outcome of deriving a club tier from its event history.
type Resolution struct {
	Tier         PriceTier       `json:"tier"`
	Verified     bool            `json:"verified"`
	AveragePrice decimal.Decimal `json:"average_price"`
	SampleSize   int             `json:"sample_size"`
}

// Effective is the tier shown to users and whether it is backed by sales data.
type Effective struct {
	Tier     PriceTier `json:"tier"`
	Verified bool      `json:"verified"`
}

// AverageEventPrice is the mean of every bracket price of every tier, or zero
// when the event has no priced brackets.
func AverageEventPrice(tiers []availability.TicketTier) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, tier := range tiers {
		for _, bracket := range tier.Brackets {
			sum = sum.Add(bracket.Price)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// ResolveVenueTier derives a tier from per-event average prices. Events
// without a price signal are ignored.
func ResolveVenueTier(history []decimal.Decimal) Resolution {
	sum := decimal.Zero
	qualifying := 0
	for _, avg := range history {
		if !avg.IsPositive() {
			continue
		}
		sum = sum.Add(avg)
		qualifying++
	}

	if qualifying == 0 {
		return Resolution{Tier: None, AveragePrice: decimal.Zero}
	}

	mean := sum.Div(decimal.NewFromInt(int64(qualifying)))
	return Resolution{
		Tier:         CalculatePriceRange(mean),
		Verified:     qualifying >= VerificationThreshold,
		AveragePrice: mean,
		SampleSize:   qualifying,
	}
}

// EffectiveTier picks the computed tier over the declared one. Only the
// computed tier is verified.
func EffectiveTier(computed, declared PriceTier) Effective {
	if computed.IsSet() {
		return Effective{Tier: computed, Verified: true}
	}
	if declared.IsSet() {
		return Effective{Tier: declared, Verified: false}
	}
	return Effective{Tier: None}
}
