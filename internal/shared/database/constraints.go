package database

import (
	"fmt"

	"gorm.io/gorm"
)

type checkConstraint struct {
	table string
	name  string
	check string
}

var checkConstraints = []checkConstraint{
	{"ticket_sales", "chk_ticket_sales_units_sold", "units_sold >= 0"},
	{"processed_purchases", "chk_processed_purchases_quantity", "quantity > 0"},
	{"clubs", "chk_clubs_rating", "rating >= 0 AND rating <= 5"},
	{"clubs", "chk_clubs_declared_tier", "declared_tier BETWEEN 0 AND 4"},
	{"clubs", "chk_clubs_computed_tier", "computed_tier BETWEEN 0 AND 4"},
	{"events", "chk_events_club_rating", "club_rating >= 0 AND club_rating <= 5"},
	{"price_brackets", "chk_price_brackets_up_to", "up_to > 0"},
	{"price_brackets", "chk_price_brackets_price", "price >= 0"},
}

// MigrateConstraints adds the check constraints AutoMigrate cannot express.
// Postgres has no ADD CONSTRAINT IF NOT EXISTS, so existing ones are skipped.
func MigrateConstraints(db *gorm.DB) error {
	for _, c := range checkConstraints {
		var exists bool
		err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name).Scan(&exists).Error
		if err != nil {
			return fmt.Errorf("failed to inspect constraint %s: %w", c.name, err)
		}
		if exists {
			continue
		}

		stmt := fmt.Sprintf(`ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)`, c.table, c.name, c.check)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add constraint %s: %w", c.name, err)
		}
	}

	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_events_discovery ON events (status, starts_at, city)`).Error
}
