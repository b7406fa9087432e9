package service

import (
	"context"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
)

// MockDataSourceRepository is a mock implementation of DataSourceRepository
type MockDataSourceRepository struct {
	CreateWithOptionsFunc func(ctx context.Context, dataSource *domain.DataSource) error
	FindByIDFunc          func(ctx context.Context, id int64) (*domain.DataSource, error)
	FindByNameFunc        func(ctx context.Context, name string) (*domain.DataSource, error)
	FindAllFunc           func(ctx context.Context) ([]*domain.DataSource, error)
}

func (m *MockDataSourceRepository) CreateWithOptions(ctx context.Context, dataSource *domain.DataSource) error {
	if m.CreateWithOptionsFunc != nil {
		return m.CreateWithOptionsFunc(ctx, dataSource)
	}
	return nil
}

func (m *MockDataSourceRepository) FindByID(ctx context.Context, id int64) (*domain.DataSource, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDataSourceRepository) FindByName(ctx context.Context, name string) (*domain.DataSource, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockDataSourceRepository) FindAll(ctx context.Context) ([]*domain.DataSource, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

// MockTemplateRepository is a mock implementation of TemplateRepository
type MockTemplateRepository struct {
	CreateFunc                 func(ctx context.Context, template *domain.Template) error
	FindByIDFunc               func(ctx context.Context, id int64) (*domain.Template, error)
	FindByIDWithFieldsFunc     func(ctx context.Context, id int64) (*domain.Template, error)
	FindByNameFunc             func(ctx context.Context, name string) (*domain.Template, error)
	FindFieldsByTemplateIDFunc func(ctx context.Context, templateID int64) ([]domain.TemplateField, error)
	ApplyFieldChangesFunc      func(ctx context.Context, template *domain.Template, updates, creates []*domain.TemplateField, deleteIDs []int64) error
	CloneWithFieldsFunc        func(ctx context.Context, clone *domain.Template, fields []*domain.TemplateField) error
	UpdateFunc                 func(ctx context.Context, template *domain.Template) error
	DeleteFunc                 func(ctx context.Context, id int64) error
	ListFunc                   func(ctx context.Context, filters dto.TemplateListFilters, offset, limit int) ([]*domain.Template, int64, error)
}

func (m *MockTemplateRepository) Create(ctx context.Context, template *domain.Template) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, template)
	}
	return nil
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id int64) (*domain.Template, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTemplateRepository) FindByIDWithFields(ctx context.Context, id int64) (*domain.Template, error) {
	if m.FindByIDWithFieldsFunc != nil {
		return m.FindByIDWithFieldsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTemplateRepository) FindByName(ctx context.Context, name string) (*domain.Template, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockTemplateRepository) FindFieldsByTemplateID(ctx context.Context, templateID int64) ([]domain.TemplateField, error) {
	if m.FindFieldsByTemplateIDFunc != nil {
		return m.FindFieldsByTemplateIDFunc(ctx, templateID)
	}
	return nil, nil
}

func (m *MockTemplateRepository) ApplyFieldChanges(ctx context.Context, template *domain.Template, updates, creates []*domain.TemplateField, deleteIDs []int64) error {
	if m.ApplyFieldChangesFunc != nil {
		return m.ApplyFieldChangesFunc(ctx, template, updates, creates, deleteIDs)
	}
	return nil
}

func (m *MockTemplateRepository) CloneWithFields(ctx context.Context, clone *domain.Template, fields []*domain.TemplateField) error {
	if m.CloneWithFieldsFunc != nil {
		return m.CloneWithFieldsFunc(ctx, clone, fields)
	}
	return nil
}

func (m *MockTemplateRepository) Update(ctx context.Context, template *domain.Template) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, template)
	}
	return nil
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTemplateRepository) List(ctx context.Context, filters dto.TemplateListFilters, offset, limit int) ([]*domain.Template, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters, offset, limit)
	}
	return nil, 0, nil
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	CreateFunc           func(ctx context.Context, item *domain.Item) error
	CreateWithValuesFunc func(ctx context.Context, item *domain.Item, values []*domain.FieldValue) error
	FindByIDFunc      func(ctx context.Context, id int64) (*domain.Item, error)
	FindBySlugFunc    func(ctx context.Context, slug string) (*domain.Item, error)
	FindRowByIDFunc   func(ctx context.Context, id int64) (*repository.ItemRow, error)
	ListFunc          func(ctx context.Context, filters dto.ItemListFilters, offset, limit int) ([]*repository.ItemRow, int64, error)
	FindRatingsFunc   func(ctx context.Context, itemID int64, offset, limit int) ([]*domain.Rating, int64, error)
	DeleteCascadeFunc func(ctx context.Context, id int64) error
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockItemRepository) CreateWithValues(ctx context.Context, item *domain.Item, values []*domain.FieldValue) error {
	if m.CreateWithValuesFunc != nil {
		return m.CreateWithValuesFunc(ctx, item, values)
	}
	return nil
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockItemRepository) FindBySlug(ctx context.Context, slug string) (*domain.Item, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockItemRepository) FindRowByID(ctx context.Context, id int64) (*repository.ItemRow, error) {
	if m.FindRowByIDFunc != nil {
		return m.FindRowByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockItemRepository) List(ctx context.Context, filters dto.ItemListFilters, offset, limit int) ([]*repository.ItemRow, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters, offset, limit)
	}
	return nil, 0, nil
}

func (m *MockItemRepository) FindRatings(ctx context.Context, itemID int64, offset, limit int) ([]*domain.Rating, int64, error) {
	if m.FindRatingsFunc != nil {
		return m.FindRatingsFunc(ctx, itemID, offset, limit)
	}
	return nil, 0, nil
}

func (m *MockItemRepository) DeleteCascade(ctx context.Context, id int64) error {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, id)
	}
	return nil
}

// MockFieldValueRepository is a mock implementation of FieldValueRepository
type MockFieldValueRepository struct {
	UpsertBatchFunc func(ctx context.Context, values []*domain.FieldValue) error
	FindByItemFunc  func(ctx context.Context, itemID int64) ([]*domain.FieldValue, error)
}

func (m *MockFieldValueRepository) UpsertBatch(ctx context.Context, values []*domain.FieldValue) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, values)
	}
	return nil
}

func (m *MockFieldValueRepository) FindByItem(ctx context.Context, itemID int64) ([]*domain.FieldValue, error) {
	if m.FindByItemFunc != nil {
		return m.FindByItemFunc(ctx, itemID)
	}
	return nil, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	FindAdminByUsernameFunc func(ctx context.Context, username string) (*domain.AdminUser, error)
	FindAdminByIDFunc       func(ctx context.Context, id int64) (*domain.AdminUser, error)
	CreateAdminFunc         func(ctx context.Context, user *domain.AdminUser) error
	FindRoleByNameFunc      func(ctx context.Context, name string) (*domain.AdminRole, error)
	CreateRoleFunc          func(ctx context.Context, role *domain.AdminRole) error
	FindUsersByIDsFunc      func(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
}

func (m *MockUserRepository) FindAdminByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	if m.FindAdminByUsernameFunc != nil {
		return m.FindAdminByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepository) FindAdminByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	if m.FindAdminByIDFunc != nil {
		return m.FindAdminByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) CreateAdmin(ctx context.Context, user *domain.AdminUser) error {
	if m.CreateAdminFunc != nil {
		return m.CreateAdminFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindRoleByName(ctx context.Context, name string) (*domain.AdminRole, error) {
	if m.FindRoleByNameFunc != nil {
		return m.FindRoleByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockUserRepository) CreateRole(ctx context.Context, role *domain.AdminRole) error {
	if m.CreateRoleFunc != nil {
		return m.CreateRoleFunc(ctx, role)
	}
	return nil
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	if m.FindUsersByIDsFunc != nil {
		return m.FindUsersByIDsFunc(ctx, ids)
	}
	return map[int64]*domain.User{}, nil
}

// MockStatisticsRepository is a mock implementation of StatisticsRepository
type MockStatisticsRepository struct {
	CountItemsFunc           func(ctx context.Context) (int64, error)
	CountItemsByTemplateFunc func(ctx context.Context) ([]repository.TemplateItemCount, error)
	OverallRatingFunc        func(ctx context.Context) (float64, int64, error)
	AggregateRatingsFunc     func(ctx context.Context) ([]repository.RatingAggregate, error)
	UpsertStatisticsFunc     func(ctx context.Context, stats *domain.ItemStatistics) error
}

func (m *MockStatisticsRepository) CountItems(ctx context.Context) (int64, error) {
	if m.CountItemsFunc != nil {
		return m.CountItemsFunc(ctx)
	}
	return 0, nil
}

func (m *MockStatisticsRepository) CountItemsByTemplate(ctx context.Context) ([]repository.TemplateItemCount, error) {
	if m.CountItemsByTemplateFunc != nil {
		return m.CountItemsByTemplateFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatisticsRepository) OverallRating(ctx context.Context) (float64, int64, error) {
	if m.OverallRatingFunc != nil {
		return m.OverallRatingFunc(ctx)
	}
	return 0, 0, nil
}

func (m *MockStatisticsRepository) AggregateRatings(ctx context.Context) ([]repository.RatingAggregate, error) {
	if m.AggregateRatingsFunc != nil {
		return m.AggregateRatingsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatisticsRepository) UpsertStatistics(ctx context.Context, stats *domain.ItemStatistics) error {
	if m.UpsertStatisticsFunc != nil {
		return m.UpsertStatisticsFunc(ctx, stats)
	}
	return nil
}

// actorContext builds a request context carrying the acting admin's id, the
// way the auth middleware does in production.
func actorContext(userID int64) context.Context {
	return context.WithValue(context.Background(), "user_id", userID)
}
