package clubs

import (
	"time"

	"clubly/internal/events"
	"clubly/internal/pricetier"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Club is the discovery snapshot of a venue. DeclaredTier comes from the
// owner, ComputedTier from recomputation over hosted event prices.
type Club struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string    `json:"name" gorm:"not null;size:255"`
	City     string    `json:"city" gorm:"not null;size:100;index"`
	Address  string    `json:"address" gorm:"size:255"`
	ImageURL string    `json:"image_url" gorm:"size:500"`
	Rating   float64   `json:"rating" gorm:"default:0;index"`
	IsActive bool      `json:"is_active" gorm:"default:true"`

	DeclaredTier   pricetier.PriceTier `json:"declared_tier" gorm:"type:smallint;default:0"`
	ComputedTier   pricetier.PriceTier `json:"computed_tier" gorm:"type:smallint;default:0"`
	AveragePrice   decimal.Decimal     `json:"average_price" gorm:"type:numeric(10,2);default:0"`
	TierSampleSize int                 `json:"tier_sample_size" gorm:"default:0"`
	TierComputedAt *time.Time          `json:"tier_computed_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Club) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Club) TableName() string {
	return "clubs"
}

func (c *Club) EffectiveTier() pricetier.Effective {
	return pricetier.EffectiveTier(c.ComputedTier, c.DeclaredTier)
}

// Snapshot is the part of the club denormalised onto its events
func (c *Club) Snapshot() events.ClubSnapshot {
	return events.ClubSnapshot{
		Name:         c.Name,
		Rating:       c.Rating,
		DeclaredTier: c.DeclaredTier,
		ComputedTier: c.ComputedTier,
	}
}

func (c *Club) ToResponse() ClubResponse {
	return ClubResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		City:      c.City,
		Address:   c.Address,
		ImageURL:  c.ImageURL,
		Rating:    c.Rating,
		PriceTier: events.NewTierInfo(c.EffectiveTier()),
	}
}

func (c *Club) ToPriceTierResponse() PriceTierResponse {
	return PriceTierResponse{
		ClubID:       c.ID.String(),
		PriceTier:    events.NewTierInfo(c.EffectiveTier()),
		DeclaredTier: c.DeclaredTier,
		ComputedTier: c.ComputedTier,
		AveragePrice: c.AveragePrice,
		SampleSize:   c.TierSampleSize,
		Threshold:    pricetier.VerificationThreshold,
		ComputedAt:   c.TierComputedAt,
	}
}
