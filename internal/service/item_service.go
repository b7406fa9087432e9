package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/metrics"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// ItemService defines the interface for item business logic
type ItemService interface {
	CreateItem(ctx context.Context, req *dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetItem(ctx context.Context, id int64) (*dto.ItemResponse, error)
	ListItems(ctx context.Context, filters dto.ItemListFilters, pageNo, pageSize int) (*dto.ItemListResponse, error)
	ListRatings(ctx context.Context, itemID int64, pageNo, pageSize int) (*dto.RatingListResponse, error)
	DeleteItem(ctx context.Context, id int64) error
}

// itemServiceImpl is the implementation of ItemService
type itemServiceImpl struct {
	itemRepo          repository.ItemRepository
	templateRepo      repository.TemplateRepository
	userRepo          repository.UserRepository
	fieldValueService FieldValueService
	metrics           *metrics.Metrics
}

// NewItemService creates a new instance of ItemService. The metrics instance
// may be nil.
func NewItemService(
	itemRepo repository.ItemRepository,
	templateRepo repository.TemplateRepository,
	userRepo repository.UserRepository,
	fieldValueService FieldValueService,
	m *metrics.Metrics,
) ItemService {
	return &itemServiceImpl{
		itemRepo:          itemRepo,
		templateRepo:      templateRepo,
		userRepo:          userRepo,
		fieldValueService: fieldValueService,
		metrics:           m,
	}
}

// CreateItem creates an item against a published template, derives a unique
// slug from the title and stores any submitted field values.
func (s *itemServiceImpl) CreateItem(ctx context.Context, req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	template, err := s.templateRepo.FindByID(ctx, req.TemplateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFoundError(fmt.Sprintf("Template with id %d not found", req.TemplateID), "")
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch template", err.Error())
	}
	if !template.IsPublished {
		return nil, response.NewValidationError("Items can only be created against a published template", "")
	}

	// Validate and type-route the submitted values before anything is
	// written, so a bad value leaves no item behind.
	var values []*domain.FieldValue
	if len(req.FieldValues) > 0 {
		fields, err := s.templateRepo.FindFieldsByTemplateID(ctx, req.TemplateID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch template fields", err.Error())
		}
		if values, err = buildFieldValues(req.TemplateID, fields, req.FieldValues); err != nil {
			return nil, err
		}
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		TemplateID: req.TemplateID,
		Title:      req.Title,
		Slug:       slug,
		CreatedBy:  actorID,
	}
	if err := s.itemRepo.CreateWithValues(ctx, item, values); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create item", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementItemCreated()
	}

	return s.GetItem(ctx, item.ID)
}

// GetItem returns an item joined with its template name, statistics and
// stored field values.
func (s *itemServiceImpl) GetItem(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	row, err := s.itemRepo.FindRowByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFoundError(fmt.Sprintf("Item with id %d not found", id), "")
	}
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch item", err.Error())
	}

	resp := s.toItemResponse(ctx, row)

	values, err := s.fieldValueService.GetFieldValues(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.FieldValues = values

	return resp, nil
}

// ListItems returns one page of items matching the filters. Unknown sort
// fields fall back to creation time.
func (s *itemServiceImpl) ListItems(ctx context.Context, filters dto.ItemListFilters, pageNo, pageSize int) (*dto.ItemListResponse, error) {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	rows, total, err := s.itemRepo.List(ctx, filters, (pageNo-1)*pageSize, pageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch items", err.Error())
	}

	list := make([]*dto.ItemResponse, len(rows))
	for i, row := range rows {
		list[i] = s.toItemResponse(ctx, row)
	}

	return &dto.ItemListResponse{
		List:     list,
		PageNo:   pageNo,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// ListRatings returns one page of an item's ratings, newest first, each
// enriched with the rating author's username.
func (s *itemServiceImpl) ListRatings(ctx context.Context, itemID int64, pageNo, pageSize int) (*dto.RatingListResponse, error) {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError(fmt.Sprintf("Item with id %d not found", itemID), "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch item", err.Error())
	}

	ratings, total, err := s.itemRepo.FindRatings(ctx, itemID, (pageNo-1)*pageSize, pageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch ratings", err.Error())
	}

	userIDs := make([]int64, 0, len(ratings))
	for _, rating := range ratings {
		userIDs = append(userIDs, rating.UserID)
	}
	users, err := s.userRepo.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch rating authors", err.Error())
	}

	list := make([]*dto.RatingResponse, len(ratings))
	for i, rating := range ratings {
		username := "Unknown"
		if user, ok := users[rating.UserID]; ok {
			username = user.Username
		}
		list[i] = &dto.RatingResponse{
			ID:         rating.ID,
			ItemID:     rating.ItemID,
			UserID:     rating.UserID,
			Username:   username,
			Rating:     rating.Rating,
			ReviewText: rating.ReviewText,
			CreatedAt:  rating.CreatedAt,
			UpdatedAt:  rating.UpdatedAt,
		}
	}

	return &dto.RatingListResponse{
		List:     list,
		PageNo:   pageNo,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// DeleteItem removes an item together with its field values, ratings and
// statistics in one transaction.
func (s *itemServiceImpl) DeleteItem(ctx context.Context, id int64) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError(fmt.Sprintf("Item with id %d not found", id), "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch item", err.Error())
	}
	if err := s.itemRepo.DeleteCascade(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete item", err.Error())
	}
	return nil
}

// uniqueSlug derives a URL slug from the title, appending a short random
// suffix when the plain slug is already taken.
func (s *itemServiceImpl) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "item"
	}

	existing, err := s.itemRepo.FindBySlug(ctx, slug)
	if err != nil {
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to check slug uniqueness", err.Error())
	}
	if existing == nil {
		return slug, nil
	}
	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8]), nil
}

// toItemResponse converts a joined item row to its response DTO, resolving
// the creating admin's username when available.
func (s *itemServiceImpl) toItemResponse(ctx context.Context, row *repository.ItemRow) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:           row.ID,
		Title:        row.Title,
		Slug:         row.Slug,
		TemplateID:   row.TemplateID,
		TemplateName: row.TemplateName,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.AvgRating != nil {
		resp.AvgRating = *row.AvgRating
	}
	if row.RatingsCount != nil {
		resp.RatingsCount = *row.RatingsCount
	}
	if row.ViewsCount != nil {
		resp.ViewsCount = *row.ViewsCount
	}

	if admin, err := s.userRepo.FindAdminByID(ctx, row.CreatedBy); err == nil && admin != nil {
		resp.CreatedByName = admin.Username
	}

	return resp
}
