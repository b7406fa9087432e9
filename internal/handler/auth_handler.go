package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
	"github.com/gaojianqi6/rating-admin-api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
// @Summary      Admin login
// @Description  Verifies credentials and issues a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200 {object} response.SuccessResponse{data=dto.LoginResponse} "Token issued"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Invalid credentials"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, token)
}

// CurrentUser godoc
// @Summary      Current admin
// @Description  Returns the authenticated admin user
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.AdminUserResponse} "Admin user"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /auth/me [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// Logout godoc
// @Summary      Admin logout
// @Description  Revokes the presented bearer token
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse "Token revoked"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// bearerToken extracts the raw token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
