package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
)

// UserRepository defines the interface for admin and public user lookups
type UserRepository interface {
	FindAdminByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	FindAdminByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	CreateAdmin(ctx context.Context, user *domain.AdminUser) error
	FindRoleByName(ctx context.Context, name string) (*domain.AdminRole, error)
	CreateRole(ctx context.Context, role *domain.AdminRole) error
	FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
}

// userRepositoryImpl is the GORM implementation of UserRepository
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

// FindAdminByUsername finds an admin user by username with its role; nil when absent
func (r *userRepositoryImpl) FindAdminByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAdminByID finds an admin user by id with its role; nil when absent
func (r *userRepositoryImpl) FindAdminByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.WithContext(ctx).
		Preload("Role").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdmin persists a new admin user
func (r *userRepositoryImpl) CreateAdmin(ctx context.Context, user *domain.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindRoleByName finds an admin role by name; nil when absent
func (r *userRepositoryImpl) FindRoleByName(ctx context.Context, name string) (*domain.AdminRole, error) {
	var role domain.AdminRole
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole persists a new admin role
func (r *userRepositoryImpl) CreateRole(ctx context.Context, role *domain.AdminRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// FindUsersByIDs returns the public users for the given ids, keyed by id.
// Missing ids are simply absent from the map.
func (r *userRepositoryImpl) FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	result := make(map[int64]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []*domain.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	for _, user := range users {
		result[user.ID] = user
	}
	return result, nil
}
