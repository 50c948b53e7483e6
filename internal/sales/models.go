package sales

import (
	"time"

	"clubly/internal/availability"

	"github.com/google/uuid"
)

// TicketSale is the running count of units sold for one ticket type of an event
type TicketSale struct {
	EventID    uuid.UUID `json:"event_id" gorm:"type:uuid;primaryKey"`
	TicketType string    `json:"ticket_type" gorm:"primaryKey;size:100"`
	UnitsSold  int       `json:"units_sold" gorm:"not null;default:0"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TicketSale) TableName() string {
	return "ticket_sales"
}

// ProcessedPurchase records an applied purchase so redeliveries are ignored
type ProcessedPurchase struct {
	PurchaseID  string    `json:"purchase_id" gorm:"primaryKey;size:100"`
	EventID     uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	TicketType  string    `json:"ticket_type" gorm:"not null;size:100"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	CompletedAt time.Time `json:"completed_at"`
	ProcessedAt time.Time `json:"processed_at" gorm:"autoCreateTime"`
}

func (ProcessedPurchase) TableName() string {
	return "processed_purchases"
}

func toSalesState(rows []TicketSale) availability.SalesState {
	state := make(availability.SalesState, len(rows))
	for _, row := range rows {
		state[row.TicketType] = row.UnitsSold
	}
	return state
}
