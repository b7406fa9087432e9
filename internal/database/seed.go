package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gaojianqi6/rating-admin-api/internal/config"
	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
)

// SeedAdmin ensures the Administrator role and the initial super admin
// account exist. Existing rows are left untouched so the seed is safe to run
// on every startup.
func SeedAdmin(ctx context.Context, userRepo repository.UserRepository, cfg config.AuthConfig, logger *zap.Logger) error {
	role, err := userRepo.FindRoleByName(ctx, "Administrator")
	if err != nil {
		return fmt.Errorf("failed to look up admin role: %w", err)
	}
	if role == nil {
		role = &domain.AdminRole{Name: "Administrator"}
		if err := userRepo.CreateRole(ctx, role); err != nil {
			return fmt.Errorf("failed to create admin role: %w", err)
		}
		logger.Info("Seeded admin role", zap.String("role", role.Name))
	}

	admin, err := userRepo.FindAdminByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if admin != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin = &domain.AdminUser{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: string(hash),
		RoleID:   role.ID,
	}
	if err := userRepo.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Seeded super admin account", zap.String("username", admin.Username))
	return nil
}
