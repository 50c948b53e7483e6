package database

import (
	"clubly/internal/clubs"
	"clubly/internal/events"
	"clubly/internal/genres"
	"clubly/internal/sales"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&genres.Genre{},
		&clubs.Club{},
		&events.Event{},
		&events.TicketTier{},
		&events.PriceBracket{},
		&sales.TicketSale{},
		&sales.ProcessedPurchase{},
	)
}
