package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
	"github.com/gaojianqi6/rating-admin-api/internal/service"
)

type ItemHandler struct {
	itemService       service.ItemService
	fieldValueService service.FieldValueService
}

func NewItemHandler(itemService service.ItemService, fieldValueService service.FieldValueService) *ItemHandler {
	return &ItemHandler{
		itemService:       itemService,
		fieldValueService: fieldValueService,
	}
}

// CreateItem godoc
// @Summary      Create an item
// @Description  Creates an item against a published template
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateItemRequest true "Item payload"
// @Success      201 {object} response.SuccessResponse{data=dto.ItemResponse} "Item created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Template not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, item)
}

// GetItem godoc
// @Summary      Get an item
// @Description  Returns an item with its template name, statistics and field values
// @Tags         items
// @Produce      json
// @Param        itemId path int true "Item ID"
// @Success      200 {object} response.SuccessResponse{data=dto.ItemResponse} "Item"
// @Failure      400 {object} response.ErrorResponse "Invalid item ID"
// @Failure      404 {object} response.ErrorResponse "Item not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /items/{itemId} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, item)
}

// ListItems godoc
// @Summary      List items
// @Description  Returns a filtered, sorted, paginated item list
// @Tags         items
// @Produce      json
// @Param        pageNo query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(10)
// @Param        title query string false "Case-insensitive title search"
// @Param        templateId query int false "Filter by template"
// @Param        createdTimeStart query string false "Creation window start (RFC3339 or YYYY-MM-DD)"
// @Param        createdTimeEnd query string false "Creation window end (RFC3339 or YYYY-MM-DD, date-only is inclusive)"
// @Param        sortField query string false "Sort column" default(created_at)
// @Param        sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} response.SuccessResponse{data=dto.ItemListResponse} "Item list"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	pageNo := queryInt(c, "pageNo", 1)
	pageSize := queryInt(c, "pageSize", 10)

	filters := dto.ItemListFilters{
		Title:     c.Query("title"),
		SortField: c.Query("sortField"),
		SortOrder: c.Query("sortOrder"),
	}
	if raw := c.Query("templateId"); raw != "" {
		if templateID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.TemplateID = &templateID
		}
	}
	if raw := c.Query("createdTimeStart"); raw != "" {
		if start, ok := parseTimeFilter(raw, false); ok {
			filters.CreatedTimeStart = &start
		}
	}
	if raw := c.Query("createdTimeEnd"); raw != "" {
		if end, ok := parseTimeFilter(raw, true); ok {
			filters.CreatedTimeEnd = &end
		}
	}

	list, err := h.itemService.ListItems(c.Request.Context(), filters, pageNo, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// ListRatings godoc
// @Summary      List an item's ratings
// @Description  Returns the item's user ratings, newest first
// @Tags         items
// @Produce      json
// @Param        itemId path int true "Item ID"
// @Param        pageNo query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(10)
// @Success      200 {object} response.SuccessResponse{data=dto.RatingListResponse} "Rating list"
// @Failure      400 {object} response.ErrorResponse "Invalid item ID"
// @Failure      404 {object} response.ErrorResponse "Item not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /items/{itemId}/ratings [get]
func (h *ItemHandler) ListRatings(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	pageNo := queryInt(c, "pageNo", 1)
	pageSize := queryInt(c, "pageSize", 10)

	list, err := h.itemService.ListRatings(c.Request.Context(), itemID, pageNo, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// DeleteItem godoc
// @Summary      Delete an item
// @Description  Removes an item with its field values, ratings and statistics
// @Tags         items
// @Produce      json
// @Param        itemId path int true "Item ID"
// @Success      200 {object} response.SuccessResponse "Item deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid item ID"
// @Failure      404 {object} response.ErrorResponse "Item not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /items/{itemId} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), itemID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// SetFieldValues godoc
// @Summary      Set field values
// @Description  Upserts a batch of typed field values on an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        itemId path int true "Item ID"
// @Param        request body dto.SetFieldValuesRequest true "Field values payload"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldValueResponse} "Stored field values"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Item not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /items/{itemId}/values [put]
func (h *ItemHandler) SetFieldValues(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req dto.SetFieldValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	values, err := h.fieldValueService.SetFieldValues(c.Request.Context(), itemID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, values)
}

// GetFieldValues godoc
// @Summary      Get field values
// @Description  Returns an item's stored field values typed per their definitions
// @Tags         items
// @Produce      json
// @Param        itemId path int true "Item ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FieldValueResponse} "Stored field values"
// @Failure      400 {object} response.ErrorResponse "Invalid item ID"
// @Failure      404 {object} response.ErrorResponse "Item not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /items/{itemId}/values [get]
func (h *ItemHandler) GetFieldValues(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	values, err := h.fieldValueService.GetFieldValues(c.Request.Context(), itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, values)
}

// parseTimeFilter accepts RFC3339 timestamps or date-only values. A date-only
// end bound covers its whole day inclusively.
func parseTimeFilter(raw string, endOfDay bool) (time.Time, bool) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Millisecond)
	}
	return parsed, true
}
