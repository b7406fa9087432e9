package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

// TokenTTL is how long an issued access token stays valid
const TokenTTL = 8 * 24 * time.Hour

const blacklistKeyPrefix = "admin:token:blacklist:"

// AuthService defines the interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CurrentUser(ctx context.Context) (*dto.AdminUserResponse, error)
	Logout(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) bool
	ResolveAdmin(ctx context.Context, username string) (int64, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo    repository.UserRepository
	redisClient *redis.Client
	jwtSecret   string
}

// NewAuthService creates a new instance of AuthService. The redis client is
// optional; without it logout is a no-op and tokens simply expire.
func NewAuthService(userRepo repository.UserRepository, redisClient *redis.Client, jwtSecret string) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		redisClient: redisClient,
		jwtSecret:   jwtSecret,
	}
}

// Login verifies the admin credentials and issues a signed bearer token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.userRepo.FindAdminByUsername(ctx, req.Username)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch admin user", err.Error())
	}
	if admin == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid username or password", "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid username or password", "")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   admin.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to sign token", err.Error())
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
	}, nil
}

// CurrentUser returns the authenticated admin resolved by the auth middleware
func (s *authServiceImpl) CurrentUser(ctx context.Context) (*dto.AdminUserResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	admin, err := s.userRepo.FindAdminByID(ctx, actorID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch admin user", err.Error())
	}
	if admin == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Admin user with id %d not found", actorID), "")
	}

	resp := &dto.AdminUserResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		RoleID:    admin.RoleID,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
	if admin.Role != nil {
		resp.RoleName = admin.Role.Name
	}
	return resp, nil
}

// Logout blacklists the presented token until its natural expiry. Without a
// redis client the call succeeds and the token remains valid until it
// expires on its own.
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if s.redisClient == nil || token == "" {
		return nil
	}
	if err := s.redisClient.Set(ctx, blacklistKeyPrefix+token, "1", TokenTTL).Err(); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to revoke token", err.Error())
	}
	return nil
}

// ResolveAdmin maps a verified token subject to the admin user's id
func (s *authServiceImpl) ResolveAdmin(ctx context.Context, username string) (int64, error) {
	admin, err := s.userRepo.FindAdminByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if admin == nil {
		return 0, response.NewAppError(response.ErrCodeUnauthorized, "Admin user not found", "")
	}
	return admin.ID, nil
}

// IsTokenRevoked reports whether the token was blacklisted by a logout.
// Redis being unreachable fails open so an auth outage does not take the
// whole API down with it.
func (s *authServiceImpl) IsTokenRevoked(ctx context.Context, token string) bool {
	if s.redisClient == nil {
		return false
	}
	exists, err := s.redisClient.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false
	}
	return exists > 0
}
