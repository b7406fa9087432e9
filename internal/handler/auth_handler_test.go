package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

func authTestRouter(svc *MockAuthService) *gin.Engine {
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.CurrentUser)
	r.POST("/auth/logout", h.Logout)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &MockAuthService{
		LoginFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
			if req.Username == "admin" && req.Password == "s3cret" {
				return &dto.LoginResponse{AccessToken: "signed-token", TokenType: "bearer"}, nil
			}
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid username or password", "")
		},
	}
	router := authTestRouter(svc)

	w := performRequest(router, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "admin", Password: "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	w = performRequest(router, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodPost, "/auth/login", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LogoutPassesBearerToken(t *testing.T) {
	var revoked string
	svc := &MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	router := authTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer the-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "the-token", revoked)
}

func TestAuthHandler_LogoutWithoutHeader(t *testing.T) {
	var revoked string
	svc := &MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	router := authTestRouter(svc)

	w := performRequest(router, http.MethodPost, "/auth/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", revoked)
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	svc := &MockAuthService{
		CurrentUserFunc: func(ctx context.Context) (*dto.AdminUserResponse, error) {
			return &dto.AdminUserResponse{ID: 1, Username: "admin", RoleName: "Administrator"}, nil
		},
	}
	router := authTestRouter(svc)

	w := performRequest(router, http.MethodGet, "/auth/me", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.AdminUserResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, "Administrator", resp.RoleName)
}
