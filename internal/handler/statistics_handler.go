package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaojianqi6/rating-admin-api/internal/response"
	"github.com/gaojianqi6/rating-admin-api/internal/service"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsService: statisticsService,
	}
}

// GetStatistics godoc
// @Summary      Get aggregate statistics
// @Description  Returns total item counts, per-template breakdown and overall rating aggregates
// @Tags         statistics
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.StatisticsResponse} "Statistics"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statisticsService.GetStatistics(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}
