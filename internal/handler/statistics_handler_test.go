package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

func statisticsTestRouter(svc *MockStatisticsService) *gin.Engine {
	h := NewStatisticsHandler(svc)
	r := gin.New()
	r.GET("/statistics", h.GetStatistics)
	return r
}

func TestStatisticsHandler_GetStatistics(t *testing.T) {
	svc := &MockStatisticsService{
		GetStatisticsFunc: func(ctx context.Context) (*dto.StatisticsResponse, error) {
			return &dto.StatisticsResponse{
				TotalItems:      42,
				ItemsByTemplate: map[string]int64{"book_review": 30, "movie_review": 12},
				Overall:         dto.OverallStats{AverageRating: 4.2, TotalRatings: 360},
			}, nil
		},
	}
	router := statisticsTestRouter(svc)

	w := performRequest(router, http.MethodGet, "/statistics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.StatisticsResponse
	decodeData(t, w, &resp)
	assert.Equal(t, int64(42), resp.TotalItems)
	assert.Equal(t, int64(30), resp.ItemsByTemplate["book_review"])
	assert.Equal(t, 4.2, resp.Overall.AverageRating)
}

func TestStatisticsHandler_GetStatisticsError(t *testing.T) {
	svc := &MockStatisticsService{
		GetStatisticsFunc: func(ctx context.Context) (*dto.StatisticsResponse, error) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count items", "")
		},
	}
	router := statisticsTestRouter(svc)

	w := performRequest(router, http.MethodGet, "/statistics", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
