package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
)

// FieldValueRepository defines the interface for field value persistence
type FieldValueRepository interface {
	UpsertBatch(ctx context.Context, values []*domain.FieldValue) error
	FindByItem(ctx context.Context, itemID int64) ([]*domain.FieldValue, error)
}

// fieldValueRepositoryImpl is the GORM implementation of FieldValueRepository
type fieldValueRepositoryImpl struct {
	db *gorm.DB
}

// NewFieldValueRepository creates a new instance of FieldValueRepository
func NewFieldValueRepository(db *gorm.DB) FieldValueRepository {
	return &fieldValueRepositoryImpl{db: db}
}

// UpsertBatch persists a batch of field values in one transaction. Each
// (item, field) pair holds at most one value: an existing row is overwritten
// in place, a missing one is created.
func (r *fieldValueRepositoryImpl) UpsertBatch(ctx context.Context, values []*domain.FieldValue) error {
	if len(values) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, value := range values {
			var existing domain.FieldValue
			err := tx.Where("item_id = ? AND field_id = ?", value.ItemID, value.FieldID).
				First(&existing).Error

			switch {
			case err == nil:
				value.ID = existing.ID
				value.CreatedAt = existing.CreatedAt
				if err := tx.Save(value).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(value).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

// FindByItem returns every stored value of an item
func (r *fieldValueRepositoryImpl) FindByItem(ctx context.Context, itemID int64) ([]*domain.FieldValue, error) {
	values := make([]*domain.FieldValue, 0)
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("field_id ASC").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
