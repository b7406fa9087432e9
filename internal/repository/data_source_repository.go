package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
)

// DataSourceRepository defines the interface for data source persistence
type DataSourceRepository interface {
	CreateWithOptions(ctx context.Context, dataSource *domain.DataSource) error
	FindByID(ctx context.Context, id int64) (*domain.DataSource, error)
	FindByName(ctx context.Context, name string) (*domain.DataSource, error)
	FindAll(ctx context.Context) ([]*domain.DataSource, error)
}

// dataSourceRepositoryImpl is the GORM implementation of DataSourceRepository
type dataSourceRepositoryImpl struct {
	db *gorm.DB
}

// NewDataSourceRepository creates a new instance of DataSourceRepository
func NewDataSourceRepository(db *gorm.DB) DataSourceRepository {
	return &dataSourceRepositoryImpl{db: db}
}

// CreateWithOptions persists a data source and its options as one unit
func (r *dataSourceRepositoryImpl) CreateWithOptions(ctx context.Context, dataSource *domain.DataSource) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		options := dataSource.Options
		dataSource.Options = nil

		if err := tx.Create(dataSource).Error; err != nil {
			return err
		}

		for i := range options {
			options[i].DataSourceID = dataSource.ID
			if err := tx.Create(&options[i]).Error; err != nil {
				return err
			}
		}

		dataSource.Options = options
		return nil
	})
}

// FindByID finds a data source by id with its options populated
func (r *dataSourceRepositoryImpl) FindByID(ctx context.Context, id int64) (*domain.DataSource, error) {
	var dataSource domain.DataSource
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&dataSource, id).Error; err != nil {
		return nil, err
	}
	return &dataSource, nil
}

// FindByName finds a data source by its unique name; nil when absent
func (r *dataSourceRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.DataSource, error) {
	var dataSource domain.DataSource
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&dataSource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dataSource, nil
}

// FindAll returns every data source with options fully populated
func (r *dataSourceRepositoryImpl) FindAll(ctx context.Context) ([]*domain.DataSource, error) {
	var dataSources []*domain.DataSource
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("id ASC").
		Find(&dataSources).Error; err != nil {
		return nil, err
	}
	return dataSources, nil
}
