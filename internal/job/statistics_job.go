package job

import (
	"context"

	"go.uber.org/zap"

	"github.com/gaojianqi6/rating-admin-api/internal/service"
)

// StatisticsJob periodically recomputes item rating statistics from the raw
// user ratings. Ratings arrive from the public-facing application, so the
// admin's denormalized view can drift between runs.
type StatisticsJob struct {
	statisticsService service.StatisticsService
	logger            *zap.Logger
}

// NewStatisticsJob creates a new StatisticsJob instance
func NewStatisticsJob(statisticsService service.StatisticsService, logger *zap.Logger) *StatisticsJob {
	return &StatisticsJob{
		statisticsService: statisticsService,
		logger:            logger,
	}
}

// Run executes one recalculation pass
func (j *StatisticsJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting statistics recalculation job")

	updated, err := j.statisticsService.RecalculateRatings(ctx)
	if err != nil {
		j.logger.Error("Statistics recalculation failed",
			zap.Int("items_updated", updated),
			zap.Error(err),
		)
		return
	}

	j.logger.Info("Statistics recalculation completed",
		zap.Int("items_updated", updated),
	)
}
