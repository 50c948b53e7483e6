package sales

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidPurchase = errors.New("invalid purchase message")

var validate = validator.New(validator.WithRequiredStructEnabled())

// PurchaseCompleted is consumed from the purchase topic, one message per
// completed checkout line.
type PurchaseCompleted struct {
	EventID     string    `json:"event_id" validate:"required,uuid"`
	TicketType  string    `json:"ticket_type" validate:"required,max=100"`
	Quantity    int       `json:"quantity" validate:"required,min=1,max=1000"`
	PurchaseID  string    `json:"purchase_id" validate:"required,max=100"`
	CompletedAt time.Time `json:"completed_at" validate:"required"`
}

// Validate checks the message shape
func (p *PurchaseCompleted) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPurchase, err)
	}
	return nil
}

// DecodePurchase parses and validates a purchase message
func DecodePurchase(data []byte) (*PurchaseCompleted, error) {
	var purchase PurchaseCompleted
	if err := json.Unmarshal(data, &purchase); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPurchase, err)
	}
	if err := purchase.Validate(); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// AvailabilityChanged is published when a purchase flips a tier or the
// whole event to sold out.
type AvailabilityChanged struct {
	EventID     string    `json:"event_id"`
	TicketType  string    `json:"ticket_type"`
	SoldOut     bool      `json:"sold_out"`
	TierSoldOut bool      `json:"tier_sold_out"`
	UnitsSold   int       `json:"units_sold"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (a *AvailabilityChanged) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}
