package clubs

import (
	"time"

	"clubly/internal/events"
	"clubly/internal/pricetier"
	"clubly/internal/shared/utils/response"

	"github.com/shopspring/decimal"
)

type ClubListQuery struct {
	Page      int     `form:"page" binding:"omitempty,min=1"`
	Limit     int     `form:"limit" binding:"omitempty,min=1"`
	City      string  `form:"city" binding:"omitempty,max=100"`
	Search    string  `form:"search" binding:"omitempty,max=100"`
	PriceTier string  `form:"price_tier"`
	MinRating float64 `form:"min_rating" binding:"omitempty,min=0,max=5"`
}

type ClubResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	City      string          `json:"city"`
	Address   string          `json:"address"`
	ImageURL  string          `json:"image_url,omitempty"`
	Rating    float64         `json:"rating"`
	PriceTier events.TierInfo `json:"price_tier"`
}

// PriceTierResponse explains where a club's tier comes from
type PriceTierResponse struct {
	ClubID       string              `json:"club_id"`
	PriceTier    events.TierInfo     `json:"price_tier"`
	DeclaredTier pricetier.PriceTier `json:"declared_tier"`
	ComputedTier pricetier.PriceTier `json:"computed_tier"`
	AveragePrice decimal.Decimal     `json:"average_price"`
	SampleSize   int                 `json:"sample_size"`
	Threshold    int                 `json:"verification_threshold"`
	ComputedAt   *time.Time          `json:"computed_at,omitempty"`
}

type PaginatedClubs struct {
	Clubs      []ClubResponse      `json:"clubs"`
	Pagination response.Pagination `json:"pagination"`
}

// RecomputeSummary reports a bulk recompute run
type RecomputeSummary struct {
	Processed int      `json:"processed"`
	Verified  int      `json:"verified"`
	Changed   int      `json:"changed"`
	Failed    []string `json:"failed"`
}
