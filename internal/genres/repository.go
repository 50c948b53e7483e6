package genres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubly/internal/shared/constants"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrGenreNotFound = errors.New("genre not found")

type Repository interface {
	GetActive(ctx context.Context) ([]Genre, error)
	GetBySlug(ctx context.Context, slug string) (*Genre, error)
	GetByNames(ctx context.Context, names []string) ([]Genre, error)
	UpcomingEventCounts(ctx context.Context, now time.Time) (map[string]int64, error)
	Upsert(ctx context.Context, genres []Genre) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActive(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Genre, error) {
	var genre Genre
	err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &genre, nil
}

func (r *repository) GetByNames(ctx context.Context, names []string) ([]Genre, error) {
	var genres []Genre
	if len(names) == 0 {
		return genres, nil
	}
	err := r.db.WithContext(ctx).Where("LOWER(name) IN ?", names).Find(&genres).Error
	return genres, err
}

// UpcomingEventCounts counts published events from now on per genre id
func (r *repository) UpcomingEventCounts(ctx context.Context, now time.Time) (map[string]int64, error) {
	var rows []GenreCount
	err := r.db.WithContext(ctx).
		Table(EventGenresTable+" AS eg").
		Select("eg.genre_id AS genre_id, COUNT(*) AS event_count").
		Joins("JOIN events e ON e.id = eg.event_id").
		Where("e.status = ? AND e.starts_at >= ?", constants.EventStatusPublished, now).
		Group("eg.genre_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count events per genre: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GenreID.String()] = row.EventCount
	}
	return counts, nil
}

// Upsert inserts genres, refreshing description and active flag on slug conflicts
func (r *repository) Upsert(ctx context.Context, genres []Genre) error {
	if len(genres) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "is_active", "updated_at"}),
	}).Create(&genres).Error
}
