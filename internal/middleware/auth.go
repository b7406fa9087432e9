package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminResolver resolves a token subject to an admin user id. It also knows
// which tokens were revoked by a logout.
type AdminResolver interface {
	ResolveAdmin(ctx context.Context, username string) (int64, error)
	IsTokenRevoked(ctx context.Context, token string) bool
}

// Auth returns a middleware that validates bearer tokens and places the
// acting admin's id in both the gin context and the request context under
// "user_id", so services can read it without depending on gin.
func Auth(jwtSecret string, resolver AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := parts[1]

		if resolver.IsTokenRevoked(c.Request.Context(), tokenString) {
			abortUnauthorized(c, "Token has been revoked")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims")
			return
		}
		subject, ok := claims["sub"].(string)
		if !ok || subject == "" {
			abortUnauthorized(c, "Subject not found in token")
			return
		}

		userID, err := resolver.ResolveAdmin(c.Request.Context(), subject)
		if err != nil {
			abortUnauthorized(c, "Unknown admin user")
			return
		}

		c.Set("user_id", userID)
		c.Set("jwtToken", tokenString)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "user_id", userID))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"message": message,
	})
	c.Abort()
}
