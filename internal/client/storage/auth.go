package storage

import (
	"context"
	"time"

	"github.com/iudanet/fitsync/internal/models"
)

//go:generate moq -out auth_mock.go . AuthStorage

// AuthStorage хранит данные сессии на клиенте.
// Пароль не хранится никогда, только выданные сервером токены.
type AuthStorage interface {
	// SaveAuth сохраняет данные сессии, заменяя предыдущие
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth возвращает сохраненные данные сессии.
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth удаляет данные сессии (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData данные текущей сессии пользователя
type AuthData struct {
	Username     string      `json:"username"`
	UserID       string      `json:"user_id"`
	Role         models.Role `json:"role"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    int64       `json:"expires_at"` // ExpiresAt unix время истечения access token
}

// Expired сообщает, что access token истек к моменту now
func (a *AuthData) Expired(now time.Time) bool {
	return a.ExpiresAt > 0 && !now.Before(time.Unix(a.ExpiresAt, 0))
}
