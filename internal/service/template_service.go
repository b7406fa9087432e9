package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/metrics"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

// TemplateService defines the interface for template business logic
type TemplateService interface {
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id int64, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	CloneTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	PublishTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	UnpublishTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id int64) error
	ListTemplates(ctx context.Context, filters dto.TemplateListFilters, pageNo, pageSize int) (*dto.TemplateListResponse, error)
}

// templateServiceImpl is the implementation of TemplateService
type templateServiceImpl struct {
	templateRepo repository.TemplateRepository
	userRepo     repository.UserRepository
	metrics      *metrics.Metrics
}

// NewTemplateService creates a new instance of TemplateService. The metrics
// instance may be nil.
func NewTemplateService(templateRepo repository.TemplateRepository, userRepo repository.UserRepository, m *metrics.Metrics) TemplateService {
	return &templateServiceImpl{
		templateRepo: templateRepo,
		userRepo:     userRepo,
		metrics:      m,
	}
}

// CreateTemplate creates a template with its initial field definitions
func (s *templateServiceImpl) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.templateRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate template name", err.Error())
	}
	if existing != nil {
		return nil, response.NewConflictError(fmt.Sprintf("Template with name '%s' already exists", req.Name), "")
	}

	fullMarks := req.FullMarks
	if fullMarks == 0 {
		fullMarks = 10
	}

	template := &domain.Template{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		FullMarks:   fullMarks,
		IsPublished: false,
		CreatedBy:   &actorID,
		UpdatedBy:   &actorID,
	}
	for i := range req.Fields {
		field, err := fieldFromRequest(&req.Fields[i])
		if err != nil {
			return nil, err
		}
		template.Fields = append(template.Fields, *field)
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create template", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTemplateCreated()
	}

	return s.toTemplateResponse(ctx, template), nil
}

// GetTemplate returns a template with its fields in display order
func (s *templateServiceImpl) GetTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	template, err := s.findTemplateWithFields(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toTemplateResponse(ctx, template), nil
}

// UpdateTemplate replaces the template's attributes and reconciles the
// submitted field list against its current fields. Fields carrying an
// existing id are updated in place, fields without one are created, and
// fields absent from the payload are removed. The whole reconciliation
// commits as one transaction.
func (s *templateServiceImpl) UpdateTemplate(ctx context.Context, id int64, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	template, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	existingFields, err := s.templateRepo.FindFieldsByTemplateID(ctx, id)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load template fields", err.Error())
	}

	existingByID := make(map[int64]*domain.TemplateField, len(existingFields))
	for i := range existingFields {
		existingByID[existingFields[i].ID] = &existingFields[i]
	}

	var updates, creates []*domain.TemplateField
	seenIDs := make(map[int64]bool)

	for i := range req.Fields {
		fieldReq := &req.Fields[i]

		if !fieldReq.IsNew() {
			existing, ok := existingByID[*fieldReq.ID]
			if !ok {
				return nil, response.NewValidationError(
					fmt.Sprintf("Field with id %d does not exist on template %d", *fieldReq.ID, id), "")
			}
			if err := applyFieldRequest(existing, fieldReq); err != nil {
				return nil, err
			}
			updates = append(updates, existing)
			seenIDs[existing.ID] = true
			continue
		}

		// The name check runs against the current state of the existing
		// fields, so a rename in the same payload frees the old name for a
		// new field.
		for _, existing := range existingByID {
			if existing.Name == fieldReq.Name {
				return nil, response.NewValidationError(
					fmt.Sprintf("Field with name '%s' already exists on this template", fieldReq.Name), "")
			}
		}
		field, err := fieldFromRequest(fieldReq)
		if err != nil {
			return nil, err
		}
		creates = append(creates, field)
	}

	var deleteIDs []int64
	for fieldID := range existingByID {
		if !seenIDs[fieldID] {
			deleteIDs = append(deleteIDs, fieldID)
		}
	}

	template.Name = req.Name
	template.DisplayName = req.DisplayName
	template.Description = req.Description
	template.FullMarks = req.FullMarks
	template.UpdatedBy = &actorID

	if err := s.templateRepo.ApplyFieldChanges(ctx, template, updates, creates, deleteIDs); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update template", err.Error())
	}

	return s.GetTemplate(ctx, id)
}

// CloneTemplate copies a template and all its fields into a new draft. The
// clone's name gets a " (Copy)" suffix and the copy never inherits the
// published flag.
func (s *templateServiceImpl) CloneTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	source, err := s.findTemplateWithFields(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := &domain.Template{
		Name:        source.Name + " (Copy)",
		DisplayName: source.DisplayName + " (Copy)",
		Description: source.Description,
		FullMarks:   source.FullMarks,
		IsPublished: false,
		CreatedBy:   &actorID,
		UpdatedBy:   &actorID,
	}

	fields := make([]*domain.TemplateField, 0, len(source.Fields))
	for i := range source.Fields {
		src := source.Fields[i]
		fields = append(fields, &domain.TemplateField{
			Name:            src.Name,
			DisplayName:     src.DisplayName,
			Description:     src.Description,
			FieldType:       src.FieldType,
			IsRequired:      src.IsRequired,
			IsSearchable:    src.IsSearchable,
			IsFilterable:    src.IsFilterable,
			DisplayOrder:    src.DisplayOrder,
			DataSourceID:    src.DataSourceID,
			ValidationRules: src.ValidationRules,
		})
	}

	if err := s.templateRepo.CloneWithFields(ctx, clone, fields); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to clone template", err.Error())
	}

	return s.GetTemplate(ctx, clone.ID)
}

// PublishTemplate marks a template as published; publishing an already
// published template is a no-op.
func (s *templateServiceImpl) PublishTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	return s.setPublished(ctx, id, true)
}

// UnpublishTemplate returns a template to draft; unpublishing a draft is a
// no-op.
func (s *templateServiceImpl) UnpublishTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	return s.setPublished(ctx, id, false)
}

func (s *templateServiceImpl) setPublished(ctx context.Context, id int64, published bool) (*dto.TemplateResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	template, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if template.IsPublished != published {
		template.IsPublished = published
		template.UpdatedBy = &actorID
		if err := s.templateRepo.Update(ctx, template); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update template", err.Error())
		}
	}

	return s.GetTemplate(ctx, id)
}

// DeleteTemplate removes the template and its field definitions. Items built
// from the template are left in place and keep their stored values.
func (s *templateServiceImpl) DeleteTemplate(ctx context.Context, id int64) error {
	if _, err := s.findTemplate(ctx, id); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete template", err.Error())
	}
	return nil
}

// ListTemplates returns one page of templates matching the filters
func (s *templateServiceImpl) ListTemplates(ctx context.Context, filters dto.TemplateListFilters, pageNo, pageSize int) (*dto.TemplateListResponse, error) {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	filters.Status = strings.ToLower(filters.Status)

	templates, total, err := s.templateRepo.List(ctx, filters, (pageNo-1)*pageSize, pageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch templates", err.Error())
	}

	list := make([]*dto.TemplateResponse, len(templates))
	for i, template := range templates {
		list[i] = s.toTemplateResponse(ctx, template)
	}

	return &dto.TemplateListResponse{
		List:     list,
		PageNo:   pageNo,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func (s *templateServiceImpl) findTemplate(ctx context.Context, id int64) (*domain.Template, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFoundError(fmt.Sprintf("Template with id %d not found", id), "")
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch template", err.Error())
	}
	return template, nil
}

func (s *templateServiceImpl) findTemplateWithFields(ctx context.Context, id int64) (*domain.Template, error) {
	template, err := s.templateRepo.FindByIDWithFields(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFoundError(fmt.Sprintf("Template with id %d not found", id), "")
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch template", err.Error())
	}
	return template, nil
}

// fieldFromRequest builds a new field definition from a payload entry
func fieldFromRequest(req *dto.TemplateFieldRequest) (*domain.TemplateField, error) {
	fieldType := domain.FieldType(req.FieldType)
	if !fieldType.IsValid() {
		return nil, response.NewValidationError(fmt.Sprintf("Invalid field type: %s", req.FieldType), "")
	}

	rules, err := toJSONDocument(req.ValidationRules)
	if err != nil {
		return nil, response.NewValidationError("Validation rules are not a valid JSON document", err.Error())
	}

	return &domain.TemplateField{
		Name:            req.Name,
		DisplayName:     req.DisplayName,
		Description:     req.Description,
		FieldType:       fieldType,
		IsRequired:      req.IsRequired,
		IsSearchable:    req.IsSearchable,
		IsFilterable:    req.IsFilterable,
		DisplayOrder:    req.DisplayOrder,
		DataSourceID:    req.DataSourceID,
		ValidationRules: rules,
	}, nil
}

// applyFieldRequest overwrites an existing field's attributes from a payload
// entry. The field keeps its id and template binding.
func applyFieldRequest(field *domain.TemplateField, req *dto.TemplateFieldRequest) error {
	fieldType := domain.FieldType(req.FieldType)
	if !fieldType.IsValid() {
		return response.NewValidationError(fmt.Sprintf("Invalid field type: %s", req.FieldType), "")
	}

	rules, err := toJSONDocument(req.ValidationRules)
	if err != nil {
		return response.NewValidationError("Validation rules are not a valid JSON document", err.Error())
	}

	field.Name = req.Name
	field.DisplayName = req.DisplayName
	field.Description = req.Description
	field.FieldType = fieldType
	field.IsRequired = req.IsRequired
	field.IsSearchable = req.IsSearchable
	field.IsFilterable = req.IsFilterable
	field.DisplayOrder = req.DisplayOrder
	field.DataSourceID = req.DataSourceID
	field.ValidationRules = rules
	return nil
}

// toTemplateResponse converts a domain template to its response DTO,
// resolving creator and updater display names when available.
func (s *templateServiceImpl) toTemplateResponse(ctx context.Context, template *domain.Template) *dto.TemplateResponse {
	status := "draft"
	if template.IsPublished {
		status = "published"
	}

	resp := &dto.TemplateResponse{
		ID:          template.ID,
		Name:        template.Name,
		DisplayName: template.DisplayName,
		Description: template.Description,
		FullMarks:   template.FullMarks,
		IsPublished: template.IsPublished,
		Status:      status,
		CreatedAt:   template.CreatedAt,
		UpdatedAt:   template.UpdatedAt,
		CreatedBy:   template.CreatedBy,
		UpdatedBy:   template.UpdatedBy,
		FieldCount:  len(template.Fields),
		Fields:      make([]dto.TemplateFieldResponse, 0, len(template.Fields)),
	}
	resp.CreatorName = s.adminName(ctx, template.CreatedBy)
	resp.UpdaterName = s.adminName(ctx, template.UpdatedBy)

	for _, field := range template.Fields {
		resp.Fields = append(resp.Fields, dto.TemplateFieldResponse{
			ID:              field.ID,
			Name:            field.Name,
			DisplayName:     field.DisplayName,
			Description:     field.Description,
			FieldType:       string(field.FieldType),
			IsRequired:      field.IsRequired,
			IsSearchable:    field.IsSearchable,
			IsFilterable:    field.IsFilterable,
			DisplayOrder:    field.DisplayOrder,
			DataSourceID:    field.DataSourceID,
			ValidationRules: fromJSONDocument(field.ValidationRules),
		})
	}
	return resp
}

func (s *templateServiceImpl) adminName(ctx context.Context, adminID *int64) string {
	if adminID == nil {
		return ""
	}
	admin, err := s.userRepo.FindAdminByID(ctx, *adminID)
	if err != nil || admin == nil {
		return ""
	}
	return admin.Username
}
