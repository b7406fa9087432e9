package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
	"github.com/gaojianqi6/rating-admin-api/internal/service"
)

type DataSourceHandler struct {
	dataSourceService service.DataSourceService
}

func NewDataSourceHandler(dataSourceService service.DataSourceService) *DataSourceHandler {
	return &DataSourceHandler{
		dataSourceService: dataSourceService,
	}
}

// CreateDataSource godoc
// @Summary      Create a data source
// @Description  Registers a controlled vocabulary with its options
// @Tags         data-sources
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateDataSourceRequest true "Data source payload"
// @Success      201 {object} response.SuccessResponse{data=dto.DataSourceResponse} "Data source created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      409 {object} response.ErrorResponse "Duplicate name"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /datasources [post]
func (h *DataSourceHandler) CreateDataSource(c *gin.Context) {
	var req dto.CreateDataSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	dataSource, err := h.dataSourceService.CreateDataSource(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, dataSource)
}

// ListDataSources godoc
// @Summary      List data sources
// @Description  Returns every registered data source with its options
// @Tags         data-sources
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.DataSourceResponse} "Data source list"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /datasources [get]
func (h *DataSourceHandler) ListDataSources(c *gin.Context) {
	dataSources, err := h.dataSourceService.ListDataSources(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dataSources)
}
