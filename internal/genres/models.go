package genres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genre is a catalogue entry used to tag events and drive genre filters
type Genre struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"size:500"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// GenreCount is a genre with the number of upcoming published events using it
type GenreCount struct {
	GenreID    uuid.UUID
	EventCount int64
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Slug == "" {
		g.Slug = GenerateSlug(g.Name)
	}
	return nil
}

func (Genre) TableName() string {
	return "genres"
}

// EventGenresTable is the join table between events and genres
const EventGenresTable = "event_genres"

func (g *Genre) ToResponse(eventCount int64) GenreResponse {
	return GenreResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Slug:        g.Slug,
		Normalized:  Normalize(g.Name),
		Description: g.Description,
		EventCount:  eventCount,
	}
}
