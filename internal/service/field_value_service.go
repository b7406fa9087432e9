package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

// FieldValueService defines the interface for item field value business logic
type FieldValueService interface {
	SetFieldValues(ctx context.Context, itemID int64, req *dto.SetFieldValuesRequest) ([]dto.FieldValueResponse, error)
	GetFieldValues(ctx context.Context, itemID int64) ([]dto.FieldValueResponse, error)
}

// fieldValueServiceImpl is the implementation of FieldValueService
type fieldValueServiceImpl struct {
	fieldValueRepo repository.FieldValueRepository
	itemRepo       repository.ItemRepository
	templateRepo   repository.TemplateRepository
}

// NewFieldValueService creates a new instance of FieldValueService
func NewFieldValueService(
	fieldValueRepo repository.FieldValueRepository,
	itemRepo repository.ItemRepository,
	templateRepo repository.TemplateRepository,
) FieldValueService {
	return &fieldValueServiceImpl{
		fieldValueRepo: fieldValueRepo,
		itemRepo:       itemRepo,
		templateRepo:   templateRepo,
	}
}

// SetFieldValues upserts a batch of field values on an item. Every referenced
// field must belong to the item's template; each value is routed into the
// storage column matching the field's declared type and the batch commits
// atomically.
func (s *fieldValueServiceImpl) SetFieldValues(ctx context.Context, itemID int64, req *dto.SetFieldValuesRequest) ([]dto.FieldValueResponse, error) {
	item, fields, err := s.loadItemFields(ctx, itemID)
	if err != nil {
		return nil, err
	}

	values, err := buildFieldValues(item.TemplateID, fields, req.FieldValues)
	if err != nil {
		return nil, err
	}
	for _, value := range values {
		value.ItemID = itemID
	}

	if err := s.fieldValueRepo.UpsertBatch(ctx, values); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save field values", err.Error())
	}

	return s.GetFieldValues(ctx, itemID)
}

// GetFieldValues returns the item's stored values typed per their field
// definitions and ordered by the template's display order. Fields without a
// stored value, and values whose field definition has since been removed,
// are omitted.
func (s *fieldValueServiceImpl) GetFieldValues(ctx context.Context, itemID int64) ([]dto.FieldValueResponse, error) {
	_, fields, err := s.loadItemFields(ctx, itemID)
	if err != nil {
		return nil, err
	}

	stored, err := s.fieldValueRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch field values", err.Error())
	}

	storedByField := make(map[int64]*domain.FieldValue, len(stored))
	for _, value := range stored {
		storedByField[value.FieldID] = value
	}

	responses := make([]dto.FieldValueResponse, 0, len(stored))
	for i := range fields {
		field := &fields[i]
		value, ok := storedByField[field.ID]
		if !ok {
			continue
		}
		typed, err := value.Value(field.FieldType)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal,
				fmt.Sprintf("Stored value for field '%s' is unreadable", field.Name), err.Error())
		}
		responses = append(responses, dto.FieldValueResponse{
			FieldID:     field.ID,
			FieldName:   field.Name,
			DisplayName: field.DisplayName,
			FieldType:   string(field.FieldType),
			Value:       typed,
		})
	}

	return responses, nil
}

// buildFieldValues validates each input against the template's fields and
// routes it into a typed FieldValue row. Nothing is written; callers decide
// how the rows are persisted.
func buildFieldValues(templateID int64, fields []domain.TemplateField, inputs []dto.FieldValueInput) ([]*domain.FieldValue, error) {
	fieldsByID := make(map[int64]*domain.TemplateField, len(fields))
	for i := range fields {
		fieldsByID[fields[i].ID] = &fields[i]
	}

	values := make([]*domain.FieldValue, 0, len(inputs))
	for _, input := range inputs {
		field, ok := fieldsByID[input.FieldID]
		if !ok {
			return nil, response.NewValidationError(
				fmt.Sprintf("Field %d does not belong to template %d", input.FieldID, templateID), "")
		}

		value := &domain.FieldValue{FieldID: field.ID}
		if err := value.SetValue(field.FieldType, input.Value); err != nil {
			return nil, response.NewValidationError(
				fmt.Sprintf("Invalid value for field '%s'", field.Name), err.Error())
		}
		values = append(values, value)
	}
	return values, nil
}

// loadItemFields resolves the item and its template's fields in display order
func (s *fieldValueServiceImpl) loadItemFields(ctx context.Context, itemID int64) (*domain.Item, []domain.TemplateField, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, response.NewNotFoundError(fmt.Sprintf("Item with id %d not found", itemID), "")
	}
	if err != nil {
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch item", err.Error())
	}

	fields, err := s.templateRepo.FindFieldsByTemplateID(ctx, item.TemplateID)
	if err != nil {
		return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch template fields", err.Error())
	}
	return item, fields, nil
}
