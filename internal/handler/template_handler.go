package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
	"github.com/gaojianqi6/rating-admin-api/internal/service"
)

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// CreateTemplate godoc
// @Summary      Create a template
// @Description  Creates a draft template with its field definitions
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTemplateRequest true "Template payload"
// @Success      201 {object} response.SuccessResponse{data=dto.TemplateResponse} "Template created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      409 {object} response.ErrorResponse "Duplicate name"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, template)
}

// GetTemplate godoc
// @Summary      Get a template
// @Description  Returns a template with its fields in display order
// @Tags         templates
// @Produce      json
// @Param        templateId path int true "Template ID"
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateResponse} "Template"
// @Failure      400 {object} response.ErrorResponse "Invalid template ID"
// @Failure      404 {object} response.ErrorResponse "Template not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates/{templateId} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, ok := pathID(c, "templateId")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// UpdateTemplate godoc
// @Summary      Update a template
// @Description  Updates template attributes and reconciles the field list
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        templateId path int true "Template ID"
// @Param        request body dto.UpdateTemplateRequest true "Template payload"
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateResponse} "Template updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Template not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates/{templateId} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	templateID, ok := pathID(c, "templateId")
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), templateID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// CloneTemplate godoc
// @Summary      Clone a template
// @Description  Copies a template and its fields into a new draft
// @Tags         templates
// @Produce      json
// @Param        templateId path int true "Template ID"
// @Success      201 {object} response.SuccessResponse{data=dto.TemplateResponse} "Template cloned"
// @Failure      400 {object} response.ErrorResponse "Invalid template ID"
// @Failure      404 {object} response.ErrorResponse "Template not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates/{templateId}/clone [post]
func (h *TemplateHandler) CloneTemplate(c *gin.Context) {
	templateID, ok := pathID(c, "templateId")
	if !ok {
		return
	}

	clone, err := h.templateService.CloneTemplate(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, clone)
}

// PublishTemplate godoc
// @Summary      Publish a template
// @Description  Marks a template as published; a no-op when already published
// @Tags         templates
// @Produce      json
// @Param        templateId path int true "Template ID"
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateResponse} "Template published"
// @Failure      400 {object} response.ErrorResponse "Invalid template ID"
// @Failure      404 {object} response.ErrorResponse "Template not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates/{templateId}/publish [post]
func (h *TemplateHandler) PublishTemplate(c *gin.Context) {
	templateID, ok := pathID(c, "templateId")
	if !ok {
		return
	}

	template, err := h.templateService.PublishTemplate(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// UnpublishTemplate godoc
// @Summary      Unpublish a template
// @Description  Returns a template to draft; a no-op when already a draft
// @Tags         templates
// @Produce      json
// @Param        templateId path int true "Template ID"
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateResponse} "Template unpublished"
// @Failure      400 {object} response.ErrorResponse "Invalid template ID"
// @Failure      404 {object} response.ErrorResponse "Template not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates/{templateId}/unpublish [post]
func (h *TemplateHandler) UnpublishTemplate(c *gin.Context) {
	templateID, ok := pathID(c, "templateId")
	if !ok {
		return
	}

	template, err := h.templateService.UnpublishTemplate(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// DeleteTemplate godoc
// @Summary      Delete a template
// @Description  Removes a template and its field definitions
// @Tags         templates
// @Produce      json
// @Param        templateId path int true "Template ID"
// @Success      200 {object} response.SuccessResponse "Template deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid template ID"
// @Failure      404 {object} response.ErrorResponse "Template not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates/{templateId} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	templateID, ok := pathID(c, "templateId")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), templateID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Template deleted successfully"})
}

// ListTemplates godoc
// @Summary      List templates
// @Description  Returns a filtered, paginated template list
// @Tags         templates
// @Produce      json
// @Param        pageNo query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(10)
// @Param        search query string false "Case-insensitive search over name, display name and description"
// @Param        isPublished query bool false "Filter by published flag"
// @Param        status query string false "Filter by status" Enums(published, draft)
// @Success      200 {object} response.SuccessResponse{data=dto.TemplateListResponse} "Template list"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	pageNo := queryInt(c, "pageNo", 1)
	pageSize := queryInt(c, "pageSize", 10)

	filters := dto.TemplateListFilters{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if raw := c.Query("isPublished"); raw != "" {
		if published, err := strconv.ParseBool(raw); err == nil {
			filters.IsPublished = &published
		}
	}

	list, err := h.templateService.ListTemplates(c.Request.Context(), filters, pageNo, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// pathID parses an integer id path parameter, responding with a validation
// error on bad input.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt parses an integer query parameter, falling back to def
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
