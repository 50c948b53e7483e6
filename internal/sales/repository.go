package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubly/internal/availability"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error)
	Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error)

	// ApplyPurchase adds the purchase to the ticket type counter and returns
	// the new total. applied is false when the purchase was already counted.
	ApplyPurchase(ctx context.Context, purchase *PurchaseCompleted) (unitsSold int, applied bool, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Snapshot(ctx context.Context, eventID uuid.UUID) (availability.SalesState, error) {
	var rows []TicketSale
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSalesState(rows), nil
}

func (r *repository) Snapshots(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]availability.SalesState, error) {
	result := make(map[uuid.UUID]availability.SalesState, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	var rows []TicketSale
	if err := r.db.WithContext(ctx).Where("event_id IN ?", eventIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		state, ok := result[row.EventID]
		if !ok {
			state = availability.SalesState{}
			result[row.EventID] = state
		}
		state[row.TicketType] = row.UnitsSold
	}
	return result, nil
}

func (r *repository) ApplyPurchase(ctx context.Context, purchase *PurchaseCompleted) (int, bool, error) {
	eventID, err := uuid.Parse(purchase.EventID)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrInvalidPurchase, err)
	}

	var (
		unitsSold int
		applied   bool
	)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := ProcessedPurchase{
			PurchaseID:  purchase.PurchaseID,
			EventID:     eventID,
			TicketType:  purchase.TicketType,
			Quantity:    purchase.Quantity,
			CompletedAt: purchase.CompletedAt,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
		if result.Error != nil {
			return fmt.Errorf("failed to record purchase: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			var sale TicketSale
			err := tx.Where("event_id = ? AND ticket_type = ?", eventID, purchase.TicketType).First(&sale).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			unitsSold = sale.UnitsSold
			return nil
		}

		sale := TicketSale{
			EventID:    eventID,
			TicketType: purchase.TicketType,
			UnitsSold:  purchase.Quantity,
			UpdatedAt:  time.Now(),
		}
		err := tx.Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "event_id"}, {Name: "ticket_type"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"units_sold": gorm.Expr("ticket_sales.units_sold + EXCLUDED.units_sold"),
					"updated_at": gorm.Expr("EXCLUDED.updated_at"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "units_sold"}}},
		).Create(&sale).Error
		if err != nil {
			return fmt.Errorf("failed to update ticket sales: %w", err)
		}

		unitsSold = sale.UnitsSold
		applied = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	return unitsSold, applied, nil
}
