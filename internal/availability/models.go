package availability

import "github.com/shopspring/decimal"

// PriceBracket is one step of a tier's price ladder. UpTo is the cumulative
// number of units of the tier that can be sold at Price.
type PriceBracket struct {
	UpTo     int             `json:"up_to"`
	Price    decimal.Decimal `json:"price"`
	Capacity *int            `json:"capacity,omitempty"`
	Sold     *int            `json:"sold,omitempty"`
}

// TicketTier is a named ticket type ("General", "VIP") with ascending brackets.
// Capacity only applies to tiers without brackets.
type TicketTier struct {
	Type     string         `json:"type"`
	Capacity *int           `json:"capacity,omitempty"`
	Brackets []PriceBracket `json:"price_bracket"`
}

// SalesState maps a ticket type name to the cumulative units sold.
type SalesState map[string]int

// UnitsSold returns the units sold for a ticket type, 0 when unknown.
func (s SalesState) UnitsSold(ticketType string) int {
	if s == nil {
		return 0
	}
	return s[ticketType]
}

// Offer is the cheapest open bracket across an event's tiers.
type Offer struct {
	TierType string          `json:"tier_type"`
	Price    decimal.Decimal `json:"price"`
	UpTo     int             `json:"up_to"`
}

// TierAvailability summarises a single tier for clients.
type TierAvailability struct {
	Type       string           `json:"type"`
	UnitsSold  int              `json:"units_sold"`
	SoldOut    bool             `json:"sold_out"`
	Remaining  *int             `json:"remaining,omitempty"`
	PriceFrom  *decimal.Decimal `json:"price_from,omitempty"`
	HasBracket bool             `json:"has_brackets"`
}
