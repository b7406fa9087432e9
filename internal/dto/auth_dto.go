package dto

import "time"

// LoginRequest represents the credential payload for token issuance
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// AdminUserResponse represents the authenticated admin user
type AdminUserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RoleID    int64     `json:"roleId"`
	RoleName  string    `json:"roleName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatisticsResponse is the aggregate statistics summary
type StatisticsResponse struct {
	TotalItems      int64            `json:"totalItems"`
	ItemsByTemplate map[string]int64 `json:"itemsByTemplate"`
	Overall         OverallStats     `json:"overallStatistics"`
}

// OverallStats holds corpus-wide rating aggregates
type OverallStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}
