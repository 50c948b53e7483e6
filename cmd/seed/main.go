package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"clubly/internal/clubs"
	"clubly/internal/events"
	"clubly/internal/genres"
	"clubly/internal/pricetier"
	"clubly/internal/sales"
	"clubly/internal/shared/config"
	"clubly/internal/shared/constants"
	"clubly/internal/shared/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Seeder struct {
	db     *database.DB
	genres genres.Service
	events events.Repository
	clubs  clubs.Repository
	sales  sales.Service
	tiers  clubs.Service
}

type bracketSeed struct {
	upTo  int
	price string
}

type tierSeed struct {
	ticketType string
	capacity   *int
	brackets   []bracketSeed
}

type eventSeed struct {
	name     string
	daysOut  int
	genres   []string
	tiers    []tierSeed
	soldUnit map[string]int
}

type clubSeed struct {
	name     string
	city     string
	address  string
	rating   float64
	declared pricetier.PriceTier
	events   []eventSeed
}

func intPtr(v int) *int { return &v }

func main() {
	fmt.Println("Starting clubly seeder...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	eventService := events.NewService(
		events.NewRepository(db.PostgreSQL),
		events.NewPresenter(cfg.Discovery.DefaultFromPrice, cfg.Discovery.Currency),
		events.Options{},
	)
	salesService := sales.NewService(sales.NewRepository(db.PostgreSQL), eventService)
	eventService.SetSalesReader(salesService)
	clubRepo := clubs.NewRepository(db.PostgreSQL)

	seeder := &Seeder{
		db:     db,
		genres: genres.NewService(genres.NewRepository(db.PostgreSQL)),
		events: events.NewRepository(db.PostgreSQL),
		clubs:  clubRepo,
		sales:  salesService,
		tiers:  clubs.NewService(clubRepo, eventService, cfg.Discovery.DefaultPageSize, cfg.Discovery.MaxPageSize),
	}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed")
}

// CleanDatabase truncates the discovery tables, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"processed_purchases",
		"ticket_sales",
		"price_brackets",
		"ticket_tiers",
		"event_genres",
		"events",
		"genres",
		"clubs",
	}

	tx := s.db.PostgreSQL.Begin()
	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit().Error
}

func (s *Seeder) SeedAll(ctx context.Context) error {
	for _, cs := range seedData() {
		club := clubs.Club{
			Name:         cs.name,
			City:         cs.city,
			Address:      cs.address,
			Rating:       cs.rating,
			IsActive:     true,
			DeclaredTier: cs.declared,
		}
		if err := s.clubs.Create(ctx, &club); err != nil {
			return fmt.Errorf("failed to create club %s: %w", cs.name, err)
		}
		fmt.Printf("  Created club: %s (%s)\n", club.Name, club.City)

		for _, es := range cs.events {
			if err := s.seedEvent(ctx, &club, es); err != nil {
				return err
			}
		}
	}

	fmt.Println("  Recomputing price tiers...")
	summary, err := s.tiers.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to recompute price tiers: %w", err)
	}
	fmt.Printf("  Price tiers: %d processed, %d verified\n", summary.Processed, summary.Verified)

	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: failed to clear Redis cache: %v", err)
	}
	return nil
}

func (s *Seeder) seedEvent(ctx context.Context, club *clubs.Club, es eventSeed) error {
	eventGenres, err := s.genres.EnsureGenres(ctx, es.genres)
	if err != nil {
		return fmt.Errorf("failed to ensure genres: %w", err)
	}

	startsAt := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, es.daysOut).Add(23 * time.Hour)
	event := events.Event{
		Name:             es.name,
		Description:      fmt.Sprintf("%s at %s", es.name, club.Name),
		City:             club.City,
		Address:          club.Address,
		StartsAt:         startsAt,
		Status:           constants.EventStatusPublished,
		ClubID:           club.ID,
		ClubName:         club.Name,
		ClubRating:       club.Rating,
		ClubDeclaredTier: club.DeclaredTier,
		Genres:           eventGenres,
	}

	for position, ts := range es.tiers {
		tier := events.TicketTier{Type: ts.ticketType, Capacity: ts.capacity, Position: position}
		for _, bs := range ts.brackets {
			tier.Brackets = append(tier.Brackets, events.PriceBracket{
				UpTo:  bs.upTo,
				Price: decimal.RequireFromString(bs.price),
			})
		}
		event.TicketTiers = append(event.TicketTiers, tier)
	}

	if err := s.events.Create(ctx, &event); err != nil {
		return fmt.Errorf("failed to create event %s: %w", es.name, err)
	}

	for ticketType, units := range es.soldUnit {
		_, err := s.sales.RecordPurchase(ctx, &sales.PurchaseCompleted{
			EventID:     event.ID.String(),
			TicketType:  ticketType,
			Quantity:    units,
			PurchaseID:  "seed-" + uuid.NewString(),
			CompletedAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to record sales for %s: %w", es.name, err)
		}
	}

	fmt.Printf("    Created event: %s\n", event.Name)
	return nil
}

func seedData() []clubSeed {
	general := func(steps ...bracketSeed) tierSeed {
		return tierSeed{ticketType: "General", brackets: steps}
	}

	return []clubSeed{
		{
			name: "Fabrik", city: "Madrid", address: "Av. de la Industria 82", rating: 4.6, declared: pricetier.Medium,
			events: []eventSeed{
				{name: "Techno Marathon", daysOut: 2, genres: []string{"Techno", "Hard Techno"},
					tiers:    []tierSeed{general(bracketSeed{200, "18"}, bracketSeed{500, "25"}), {ticketType: "VIP", capacity: intPtr(40), brackets: []bracketSeed{{40, "60"}}}},
					soldUnit: map[string]int{"General": 230}},
				{name: "House Sessions", daysOut: 9, genres: []string{"House", "Tech House"},
					tiers: []tierSeed{general(bracketSeed{300, "20"}, bracketSeed{600, "28"})}},
				{name: "Closing Party", daysOut: 16, genres: []string{"Techno"},
					tiers:    []tierSeed{general(bracketSeed{100, "22"})},
					soldUnit: map[string]int{"General": 100}},
			},
		},
		{
			name: "Teatro Kapital", city: "Madrid", address: "Calle de Atocha 125", rating: 4.1, declared: pricetier.High,
			events: []eventSeed{
				{name: "Reggaeton Fridays", daysOut: 1, genres: []string{"Reggaeton", "Latin"},
					tiers: []tierSeed{{ticketType: "Early Bird", brackets: []bracketSeed{{100, "12"}}}, general(bracketSeed{800, "18"})}},
				{name: "Commercial Saturdays", daysOut: 2, genres: []string{"Commercial", "Pop"}},
			},
		},
		{
			name: "Razzmatazz", city: "Barcelona", address: "Carrer dels Almogàvers 122", rating: 4.4, declared: pricetier.None,
			events: []eventSeed{
				{name: "Indie Night", daysOut: 3, genres: []string{"Indie", "Rock"},
					tiers: []tierSeed{general(bracketSeed{400, "14"})}},
				{name: "Bass Culture", daysOut: 10, genres: []string{"Drum and Bass", "Dubstep"},
					tiers: []tierSeed{general(bracketSeed{300, "16"})}},
				{name: "Electro Pop", daysOut: 17, genres: []string{"Pop", "Electronic"},
					tiers: []tierSeed{general(bracketSeed{300, "13"})}},
			},
		},
		{
			name: "Opium", city: "Barcelona", address: "Passeig Marítim 34", rating: 3.9, declared: pricetier.Luxury,
			events: []eventSeed{
				{name: "Beach Club Opening", daysOut: 5, genres: []string{"House", "Deep House"},
					tiers:    []tierSeed{general(bracketSeed{150, "45"}), {ticketType: "Table", capacity: intPtr(10), brackets: []bracketSeed{{10, "400"}}}},
					soldUnit: map[string]int{"Table": 10}},
			},
		},
	}
}
