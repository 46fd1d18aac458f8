package dto

import (
	"time"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
)

// RegisterRequest — данные регистрации
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest — данные входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse — публичные данные пользователя
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse — ответ на регистрацию и вход
type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
}

// LeaderboardUserDTO представляет одного пользователя в лидерборде
type LeaderboardUserDTO struct {
	Rank    int    `json:"rank"`    // Место пользователя в рейтинге
	UserID  uint   `json:"user_id"` // ID пользователя
	Name    string `json:"name"`
	Balance int64  `json:"balance"` // Сумма всех выигрышей
}

// PaginatedLeaderboardResponse представляет пагинированный ответ для лидерборда
type PaginatedLeaderboardResponse struct {
	Users   []*LeaderboardUserDTO `json:"users"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}

// UserProfileResponse — профиль пользователя с историей игр
type UserProfileResponse struct {
	User    *UserResponse          `json:"user"`
	Games   []*GameSummaryResponse `json:"games"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"per_page"`
}

// NewUserResponse преобразует пользователя
func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{ID: u.ID, Name: u.Name, Balance: u.Balance, CreatedAt: u.CreatedAt}
}
