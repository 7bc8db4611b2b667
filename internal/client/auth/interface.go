package auth

import (
	"context"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service управляет учетными данными клиента: регистрация, вход, восстановление
// сохраненной сессии и выход. После успешного входа токен выставлен в API клиенте.
type Service interface {
	// Register регистрирует пользователя, не выполняя вход
	Register(ctx context.Context, username, password string, role models.Role) (string, error)

	// Login выполняет вход и сохраняет токены локально
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)

	// Restore поднимает сохраненную сессию, при необходимости обновляя access token.
	// Returns storage.ErrAuthNotFound if the user never logged in on this device
	Restore(ctx context.Context) (*storage.AuthData, error)

	// Logout отзывает refresh token на сервере (best effort) и удаляет локальные данные
	Logout(ctx context.Context) error
}
