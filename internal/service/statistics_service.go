package service

import (
	"context"
	"time"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

// StatisticsService defines the interface for cross-item statistics
type StatisticsService interface {
	GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error)
	RecalculateRatings(ctx context.Context) (int, error)
}

// statisticsServiceImpl is the implementation of StatisticsService
type statisticsServiceImpl struct {
	statsRepo repository.StatisticsRepository
}

// NewStatisticsService creates a new instance of StatisticsService
func NewStatisticsService(statsRepo repository.StatisticsRepository) StatisticsService {
	return &statisticsServiceImpl{statsRepo: statsRepo}
}

// GetStatistics returns the total item count, a per-template breakdown and
// the overall rating aggregates.
func (s *statisticsServiceImpl) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	totalItems, err := s.statsRepo.CountItems(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count items", err.Error())
	}

	byTemplate, err := s.statsRepo.CountItemsByTemplate(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count items by template", err.Error())
	}

	avgRating, totalRatings, err := s.statsRepo.OverallRating(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate ratings", err.Error())
	}

	itemsByTemplate := make(map[string]int64, len(byTemplate))
	for _, entry := range byTemplate {
		itemsByTemplate[entry.Name] = entry.Count
	}

	return &dto.StatisticsResponse{
		TotalItems:      totalItems,
		ItemsByTemplate: itemsByTemplate,
		Overall: dto.OverallStats{
			AverageRating: avgRating,
			TotalRatings:  totalRatings,
		},
	}, nil
}

// RecalculateRatings recomputes each item's rating aggregates from the raw
// user ratings and upserts the statistics rows. View counts are maintained
// elsewhere and are preserved. Returns the number of items updated.
func (s *statisticsServiceImpl) RecalculateRatings(ctx context.Context) (int, error) {
	aggregates, err := s.statsRepo.AggregateRatings(ctx)
	if err != nil {
		return 0, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate ratings", err.Error())
	}

	now := time.Now()
	updated := 0
	for _, agg := range aggregates {
		stats := &domain.ItemStatistics{
			ItemID:           agg.ItemID,
			AvgRating:        agg.AvgRating,
			RatingsCount:     agg.RatingsCount,
			LastCalculatedAt: now,
		}
		if err := s.statsRepo.UpsertStatistics(ctx, stats); err != nil {
			return updated, response.NewAppError(response.ErrCodeInternal, "Failed to update item statistics", err.Error())
		}
		updated++
	}
	return updated, nil
}
