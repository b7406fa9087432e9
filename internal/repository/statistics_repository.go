package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
)

// RatingAggregate is the recomputed rating summary for one item
type RatingAggregate struct {
	ItemID       int64
	AvgRating    float64
	RatingsCount int64
}

// TemplateItemCount is the number of items instantiated against one template
type TemplateItemCount struct {
	Name  string
	Count int64
}

// StatisticsRepository defines the interface for statistics reads and the
// recalculation writes performed by the rating ingestion job.
type StatisticsRepository interface {
	CountItems(ctx context.Context) (int64, error)
	CountItemsByTemplate(ctx context.Context) ([]TemplateItemCount, error)
	OverallRating(ctx context.Context) (avgRating float64, totalRatings int64, err error)
	AggregateRatings(ctx context.Context) ([]RatingAggregate, error)
	UpsertStatistics(ctx context.Context, stats *domain.ItemStatistics) error
}

// statisticsRepositoryImpl is the GORM implementation of StatisticsRepository
type statisticsRepositoryImpl struct {
	db *gorm.DB
}

// NewStatisticsRepository creates a new instance of StatisticsRepository
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepositoryImpl{db: db}
}

// CountItems returns the total number of items
func (r *statisticsRepositoryImpl) CountItems(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Item{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountItemsByTemplate returns the item count per template, including
// templates without items.
func (r *statisticsRepositoryImpl) CountItemsByTemplate(ctx context.Context) ([]TemplateItemCount, error) {
	counts := make([]TemplateItemCount, 0)
	if err := r.db.WithContext(ctx).
		Table("templates").
		Select("templates.name AS name, COUNT(items.id) AS count").
		Joins("LEFT JOIN items ON items.template_id = templates.id").
		Group("templates.name").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// OverallRating returns the average rating and total rating count across all
// item statistics rows.
func (r *statisticsRepositoryImpl) OverallRating(ctx context.Context) (float64, int64, error) {
	var row struct {
		AvgRating    *float64
		TotalRatings *int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.ItemStatistics{}).
		Select("AVG(avg_rating) AS avg_rating, SUM(ratings_count) AS total_ratings").
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}

	var avg float64
	var total int64
	if row.AvgRating != nil {
		avg = *row.AvgRating
	}
	if row.TotalRatings != nil {
		total = *row.TotalRatings
	}
	return avg, total, nil
}

// AggregateRatings recomputes per-item averages and counts from the raw
// rating rows.
func (r *statisticsRepositoryImpl) AggregateRatings(ctx context.Context) ([]RatingAggregate, error) {
	aggregates := make([]RatingAggregate, 0)
	if err := r.db.WithContext(ctx).
		Model(&domain.Rating{}).
		Select("item_id AS item_id, AVG(rating) AS avg_rating, COUNT(id) AS ratings_count").
		Group("item_id").
		Scan(&aggregates).Error; err != nil {
		return nil, err
	}
	return aggregates, nil
}

// UpsertStatistics writes one recomputed statistics row, preserving the
// views counter an existing row may carry.
func (r *statisticsRepositoryImpl) UpsertStatistics(ctx context.Context, stats *domain.ItemStatistics) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.ItemStatistics
		err := tx.Where("item_id = ?", stats.ItemID).First(&existing).Error

		switch {
		case err == nil:
			stats.ViewsCount = existing.ViewsCount
			return tx.Model(&domain.ItemStatistics{}).
				Where("item_id = ?", stats.ItemID).
				Updates(map[string]interface{}{
					"avg_rating":         stats.AvgRating,
					"ratings_count":      stats.RatingsCount,
					"views_count":        stats.ViewsCount,
					"last_calculated_at": stats.LastCalculatedAt,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(stats).Error
		default:
			return err
		}
	})
}
