package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
)

// ItemRow is one item joined with its template display name and statistics.
// Statistics columns are pointers because the join is outer; a missing
// statistics row reads as zero.
type ItemRow struct {
	ID           int64
	TemplateID   int64
	Title        string
	Slug         string
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TemplateName string
	AvgRating    *float64
	RatingsCount *int64
	ViewsCount   *int64
}

// sortColumns is the allow-list for item list sorting; anything else falls
// back to created_at.
var sortColumns = map[string]string{
	"id":            "items.id",
	"title":         "items.title",
	"created_at":    "items.created_at",
	"updated_at":    "items.updated_at",
	"avg_rating":    "item_statistics.avg_rating",
	"ratings_count": "item_statistics.ratings_count",
	"views_count":   "item_statistics.views_count",
}

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	CreateWithValues(ctx context.Context, item *domain.Item, values []*domain.FieldValue) error
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Item, error)
	FindRowByID(ctx context.Context, id int64) (*ItemRow, error)
	List(ctx context.Context, filters dto.ItemListFilters, offset, limit int) ([]*ItemRow, int64, error)
	FindRatings(ctx context.Context, itemID int64, offset, limit int) ([]*domain.Rating, int64, error)
	DeleteCascade(ctx context.Context, id int64) error
}

// itemRepositoryImpl is the GORM implementation of ItemRepository
type itemRepositoryImpl struct {
	db *gorm.DB
}

// NewItemRepository creates a new instance of ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepositoryImpl{db: db}
}

// Create persists a new item
func (r *itemRepositoryImpl) Create(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateWithValues persists a new item together with its initial field values
// as one unit; if any value fails to store, the item row is rolled back too.
func (r *itemRepositoryImpl) CreateWithValues(ctx context.Context, item *domain.Item, values []*domain.FieldValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		for _, value := range values {
			value.ItemID = item.ID
			if err := tx.Create(value).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds an item by id
func (r *itemRepositoryImpl) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySlug finds an item by its unique slug; nil when absent
func (r *itemRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindRowByID returns a single joined item row
func (r *itemRepositoryImpl) FindRowByID(ctx context.Context, id int64) (*ItemRow, error) {
	var row ItemRow
	if err := r.joined(ctx).
		Where("items.id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns one page of joined item rows plus the total count under the
// same filter predicate.
func (r *itemRepositoryImpl) List(ctx context.Context, filters dto.ItemListFilters, offset, limit int) ([]*ItemRow, int64, error) {
	base := r.applyFilters(r.joined(ctx), filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]*ItemRow, 0)
	if err := base.Session(&gorm.Session{}).
		Order(orderClause(filters.SortField, filters.SortOrder)).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// FindRatings returns one page of ratings for an item, newest first
func (r *itemRepositoryImpl) FindRatings(ctx context.Context, itemID int64, offset, limit int) ([]*domain.Rating, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Rating{}).Where("item_id = ?", itemID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ratings := make([]*domain.Rating, 0)
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

// DeleteCascade removes the item's field values, ratings, statistics row and
// finally the item itself as one unit.
func (r *itemRepositoryImpl) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.FieldValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.ItemStatistics{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Item{}, id).Error
	})
}

// joined builds the base item query joined with templates and statistics
func (r *itemRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("items").
		Select("items.id, items.template_id, items.title, items.slug, items.created_by, items.created_at, items.updated_at, " +
			"templates.display_name AS template_name, " +
			"item_statistics.avg_rating, item_statistics.ratings_count, item_statistics.views_count").
		Joins("JOIN templates ON templates.id = items.template_id").
		Joins("LEFT JOIN item_statistics ON item_statistics.item_id = items.id")
}

// applyFilters builds the shared predicate for both the count and page queries
func (r *itemRepositoryImpl) applyFilters(q *gorm.DB, filters dto.ItemListFilters) *gorm.DB {
	if filters.Title != "" {
		q = q.Where("LOWER(items.title) LIKE LOWER(?)", "%"+filters.Title+"%")
	}
	if filters.TemplateID != nil {
		q = q.Where("items.template_id = ?", *filters.TemplateID)
	}
	if filters.CreatedTimeStart != nil {
		q = q.Where("items.created_at >= ?", *filters.CreatedTimeStart)
	}
	if filters.CreatedTimeEnd != nil {
		q = q.Where("items.created_at <= ?", *filters.CreatedTimeEnd)
	}
	return q
}

// orderClause resolves the sort column through the allow-list and the sort
// direction; only a case-insensitive "asc" sorts ascending.
func orderClause(sortField, sortOrder string) string {
	column, ok := sortColumns[sortField]
	if !ok {
		column = "items.created_at"
	}
	if strings.EqualFold(sortOrder, "asc") {
		return column + " ASC"
	}
	return column + " DESC"
}
