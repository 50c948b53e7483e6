package clubs

import (
	"context"
	"errors"
	"strings"

	"clubly/internal/pricetier"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrClubNotFound = errors.New("club not found")

// ClubFilter holds normalised list filters
type ClubFilter struct {
	City      string
	Search    string
	Tier      pricetier.PriceTier
	MinRating float64
	Offset    int
	Limit     int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Club, error)
	List(ctx context.Context, filter ClubFilter) ([]Club, int64, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdatePriceTier(ctx context.Context, club *Club) error
	Create(ctx context.Context, club *Club) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Club, error) {
	var club Club
	err := r.db.WithContext(ctx).First(&club, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

func (r *repository) List(ctx context.Context, filter ClubFilter) ([]Club, int64, error) {
	var clubs []Club
	var total int64

	query := r.db.WithContext(ctx).Model(&Club{}).Where("is_active = ?", true)

	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}

	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", searchTerm, searchTerm)
	}

	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}

	// effective tier: computed when set, declared otherwise
	if filter.Tier.IsSet() {
		query = query.Where("COALESCE(NULLIF(computed_tier, 0), declared_tier) = ?", filter.Tier)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("rating DESC").
		Order("name ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&clubs).Error
	if err != nil {
		return nil, 0, err
	}

	return clubs, total, nil
}

func (r *repository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Club{}).
		Where("is_active = ?", true).
		Order("name ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) UpdatePriceTier(ctx context.Context, club *Club) error {
	result := r.db.WithContext(ctx).Model(&Club{}).
		Where("id = ?", club.ID).
		Updates(map[string]interface{}{
			"computed_tier":    club.ComputedTier,
			"average_price":    club.AveragePrice,
			"tier_sample_size": club.TierSampleSize,
			"tier_computed_at": club.TierComputedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClubNotFound
	}
	return nil
}

func (r *repository) Create(ctx context.Context, club *Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}
