package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
)

// TemplateRepository defines the interface for template persistence
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.Template) error
	FindByID(ctx context.Context, id int64) (*domain.Template, error)
	FindByIDWithFields(ctx context.Context, id int64) (*domain.Template, error)
	FindByName(ctx context.Context, name string) (*domain.Template, error)
	FindFieldsByTemplateID(ctx context.Context, templateID int64) ([]domain.TemplateField, error)
	ApplyFieldChanges(ctx context.Context, template *domain.Template, updates, creates []*domain.TemplateField, deleteIDs []int64) error
	CloneWithFields(ctx context.Context, clone *domain.Template, fields []*domain.TemplateField) error
	Update(ctx context.Context, template *domain.Template) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters dto.TemplateListFilters, offset, limit int) ([]*domain.Template, int64, error)
}

// templateRepositoryImpl is the GORM implementation of TemplateRepository
type templateRepositoryImpl struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new instance of TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepositoryImpl{db: db}
}

// Create persists a template and its fields in one transaction; the template
// row is inserted first so the fields can reference its id.
func (r *templateRepositoryImpl) Create(ctx context.Context, template *domain.Template) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := template.Fields
		template.Fields = nil

		if err := tx.Create(template).Error; err != nil {
			return err
		}

		for i := range fields {
			fields[i].TemplateID = template.ID
			if err := tx.Create(&fields[i]).Error; err != nil {
				return err
			}
		}

		template.Fields = fields
		return nil
	})
}

// FindByID finds a template by id without its fields
func (r *templateRepositoryImpl) FindByID(ctx context.Context, id int64) (*domain.Template, error) {
	var template domain.Template
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByIDWithFields finds a template by id with fields ordered by display order
func (r *templateRepositoryImpl) FindByIDWithFields(ctx context.Context, id int64) (*domain.Template, error) {
	var template domain.Template
	if err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByName finds a template by its unique name; nil when absent
func (r *templateRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Template, error) {
	var template domain.Template
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// FindFieldsByTemplateID returns the template's fields ordered by display order
func (r *templateRepositoryImpl) FindFieldsByTemplateID(ctx context.Context, templateID int64) ([]domain.TemplateField, error) {
	var fields []domain.TemplateField
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("display_order ASC, id ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// ApplyFieldChanges commits a reconciled template update as one unit: the
// template row, in-place field updates, new fields and deletions either all
// persist or none do.
func (r *templateRepositoryImpl) ApplyFieldChanges(ctx context.Context, template *domain.Template, updates, creates []*domain.TemplateField, deleteIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(template).Error; err != nil {
			return err
		}

		for _, field := range updates {
			if err := tx.Save(field).Error; err != nil {
				return err
			}
		}

		for _, field := range creates {
			field.TemplateID = template.ID
			if err := tx.Create(field).Error; err != nil {
				return err
			}
		}

		if len(deleteIDs) > 0 {
			if err := tx.Where("template_id = ? AND id IN ?", template.ID, deleteIDs).
				Delete(&domain.TemplateField{}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CloneWithFields persists a cloned template and its copied fields atomically
func (r *templateRepositoryImpl) CloneWithFields(ctx context.Context, clone *domain.Template, fields []*domain.TemplateField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clone).Error; err != nil {
			return err
		}
		for _, field := range fields {
			field.TemplateID = clone.ID
			if err := tx.Create(field).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update saves the template row
func (r *templateRepositoryImpl) Update(ctx context.Context, template *domain.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete removes the template's fields and then the template itself. Items
// referencing the template are deliberately left untouched.
func (r *templateRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&domain.TemplateField{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Template{}, id).Error
	})
}

// List returns one page of templates plus the total count under the same
// filter predicate. The count runs before offset/limit so pagination stays
// consistent with the page query.
func (r *templateRepositoryImpl) List(ctx context.Context, filters dto.TemplateListFilters, offset, limit int) ([]*domain.Template, int64, error) {
	base := r.applyFilters(r.db.WithContext(ctx).Model(&domain.Template{}), filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []*domain.Template
	if err := base.Session(&gorm.Session{}).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

// applyFilters builds the shared predicate for both the count and page queries
func (r *templateRepositoryImpl) applyFilters(q *gorm.DB, filters dto.TemplateListFilters) *gorm.DB {
	if filters.IsPublished != nil {
		q = q.Where("is_published = ?", *filters.IsPublished)
	}

	switch filters.Status {
	case "published":
		q = q.Where("is_published = ?", true)
	case "draft":
		q = q.Where("is_published = ?", false)
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		q = q.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	return q
}
