package pricetier

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceTier is the ordinal price category of a club. The zero value means no
// tier is known.
type PriceTier int

const (
	None PriceTier = iota
	Low
	Medium
	High
	Luxury
)

var (
	lowCeiling    = decimal.NewFromInt(15)
	mediumCeiling = decimal.NewFromInt(30)
	highCeiling   = decimal.NewFromInt(50)
)

var tierNames = map[PriceTier]string{
	Low:    "LOW",
	Medium: "MEDIUM",
	High:   "HIGH",
	Luxury: "LUXURY",
}

var tierLabels = map[PriceTier]string{
	Low:    "Budget",
	Medium: "Moderate",
	High:   "Upscale",
	Luxury: "Luxury",
}

var tierDescriptions = map[PriceTier]string{
	Low:    "Average ticket up to €15",
	Medium: "Average ticket between €15 and €30",
	High:   "Average ticket between €30 and €50",
	Luxury: "Average ticket above €50",
}

// CalculatePriceRange maps an average ticket price onto a tier. Boundaries
// are inclusive on the upper side.
func CalculatePriceRange(avg decimal.Decimal) PriceTier {
	switch {
	case avg.LessThanOrEqual(lowCeiling):
		return Low
	case avg.LessThanOrEqual(mediumCeiling):
		return Medium
	case avg.LessThanOrEqual(highCeiling):
		return High
	default:
		return Luxury
	}
}

// Valid reports whether t is a known tier, None included.
func (t PriceTier) Valid() bool {
	return t >= None && t <= Luxury
}

// IsSet reports whether t names an actual tier.
func (t PriceTier) IsSet() bool {
	return t > None && t <= Luxury
}

func (t PriceTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return ""
}

// Symbol renders the tier as repeated euro signs.
func (t PriceTier) Symbol() string {
	if !t.IsSet() {
		return ""
	}
	return strings.Repeat("€", int(t))
}

func (t PriceTier) Label() string {
	return tierLabels[t]
}

func (t PriceTier) Description() string {
	return tierDescriptions[t]
}

func (t PriceTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PriceTier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier accepts a tier name (any case), its euro symbol, or its ordinal.
// The empty string parses to None.
func ParseTier(raw string) (PriceTier, error) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "0" || strings.EqualFold(value, "none") {
		return None, nil
	}

	upper := strings.ToUpper(value)
	for tier, name := range tierNames {
		if upper == name || value == tier.Symbol() || value == fmt.Sprint(int(tier)) {
			return tier, nil
		}
	}

	return None, fmt.Errorf("invalid price tier %q", raw)
}

// Value stores the tier as its ordinal
func (t PriceTier) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PriceTier) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = None
	case int64:
		*t = PriceTier(v)
	case int32:
		*t = PriceTier(v)
	case []byte:
		parsed, err := ParseTier(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case string:
		parsed, err := ParseTier(v)
		if err != nil {
			return err
		}
		*t = parsed
	default:
		return fmt.Errorf("cannot scan %T into PriceTier", src)
	}
	if !t.Valid() {
		return fmt.Errorf("price tier %d out of range", int(*t))
	}
	return nil
}
