package events

import (
	"sort"
	"time"

	"clubly/internal/availability"
	"clubly/internal/genres"
	"clubly/internal/pricetier"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Event is the discovery snapshot of an upstream event. Club fields are
// denormalised so listings never join clubs.
type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	City        string     `json:"city" gorm:"not null;size:100;index"`
	Address     string     `json:"address" gorm:"size:255"`
	StartsAt    time.Time  `json:"starts_at" gorm:"not null;index"`
	EndsAt      *time.Time `json:"ends_at"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	ImageURL    string     `json:"image_url" gorm:"size:500"`

	ClubID           uuid.UUID           `json:"club_id" gorm:"type:uuid;not null;index"`
	ClubName         string              `json:"club_name" gorm:"size:255"`
	ClubRating       float64             `json:"club_rating" gorm:"default:0"`
	ClubDeclaredTier pricetier.PriceTier `json:"club_declared_tier" gorm:"type:smallint;default:0"`
	ClubComputedTier pricetier.PriceTier `json:"club_computed_tier" gorm:"type:smallint;default:0"`

	Genres      []genres.Genre `json:"-" gorm:"many2many:event_genres;constraint:OnDelete:CASCADE;"`
	TicketTiers []TicketTier   `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TicketTier is a ticket type of an event
type TicketTier struct {
	ID       uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	EventID  uuid.UUID      `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_event_ticket_type"`
	Type     string         `json:"type" gorm:"not null;size:100;uniqueIndex:idx_event_ticket_type"`
	Capacity *int           `json:"capacity"`
	Position int            `json:"position" gorm:"default:0"`
	Brackets []PriceBracket `json:"brackets" gorm:"foreignKey:TicketTierID;constraint:OnDelete:CASCADE;"`
}

// PriceBracket is one price step of a ticket tier
type PriceBracket struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	TicketTierID uuid.UUID       `json:"ticket_tier_id" gorm:"type:uuid;not null;index"`
	UpTo         int             `json:"up_to" gorm:"not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Capacity     *int            `json:"capacity"`
	Sold         *int            `json:"sold"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (t *TicketTier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (b *PriceBracket) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Event) TableName() string {
	return "events"
}

func (TicketTier) TableName() string {
	return "ticket_tiers"
}

func (PriceBracket) TableName() string {
	return "price_brackets"
}

// Tiers converts the stored tiers into engine input, ordered by position with
// brackets ascending by UpTo.
func (e *Event) Tiers() []availability.TicketTier {
	return toDomainTiers(e.TicketTiers)
}

// GenreNames returns the display names of the event genres
func (e *Event) GenreNames() []string {
	return genres.Names(e.Genres)
}

// EffectiveTier resolves the denormalised club tiers
func (e *Event) EffectiveTier() pricetier.Effective {
	return pricetier.EffectiveTier(e.ClubComputedTier, e.ClubDeclaredTier)
}

func toDomainTiers(stored []TicketTier) []availability.TicketTier {
	ordered := make([]TicketTier, len(stored))
	copy(ordered, stored)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	tiers := make([]availability.TicketTier, 0, len(ordered))
	for _, t := range ordered {
		brackets := make([]availability.PriceBracket, 0, len(t.Brackets))
		for _, b := range t.Brackets {
			brackets = append(brackets, availability.PriceBracket{
				UpTo:     b.UpTo,
				Price:    b.Price,
				Capacity: b.Capacity,
				Sold:     b.Sold,
			})
		}
		sort.SliceStable(brackets, func(i, j int) bool { return brackets[i].UpTo < brackets[j].UpTo })

		tiers = append(tiers, availability.TicketTier{
			Type:     t.Type,
			Capacity: t.Capacity,
			Brackets: brackets,
		})
	}
	return tiers
}
