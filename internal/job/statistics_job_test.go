package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
)

// MockStatisticsService is a mock implementation of StatisticsService
type MockStatisticsService struct {
	GetStatisticsFunc      func(ctx context.Context) (*dto.StatisticsResponse, error)
	RecalculateRatingsFunc func(ctx context.Context) (int, error)
}

func (m *MockStatisticsService) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatisticsService) RecalculateRatings(ctx context.Context) (int, error) {
	if m.RecalculateRatingsFunc != nil {
		return m.RecalculateRatingsFunc(ctx)
	}
	return 0, nil
}

func TestStatisticsJob_RunRecalculates(t *testing.T) {
	ran := false
	svc := &MockStatisticsService{
		RecalculateRatingsFunc: func(ctx context.Context) (int, error) {
			ran = true
			return 3, nil
		},
	}
	job := NewStatisticsJob(svc, zap.NewNop())

	job.Run()

	assert.True(t, ran)
}

func TestStatisticsJob_RunSurvivesErrors(t *testing.T) {
	svc := &MockStatisticsService{
		RecalculateRatingsFunc: func(ctx context.Context) (int, error) {
			return 0, errors.New("database unavailable")
		},
	}
	job := NewStatisticsJob(svc, zap.NewNop())

	// The scheduler keeps calling Run; a failing pass must not panic
	assert.NotPanics(t, job.Run)
}
