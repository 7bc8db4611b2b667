// Package auth учетные данные клиента поверх API сервера и локального хранилища.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/fitsync/internal/client/api"
	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/validation"
	pkgapi "github.com/iudanet/fitsync/pkg/api"
)

// Authenticator реализует Service
type Authenticator struct {
	apiClient api.ClientAPI
	store     storage.AuthStorage
	logger    *slog.Logger
	now       func() time.Time
}

var _ Service = (*Authenticator)(nil)

// NewAuthenticator создает сервис авторизации
func NewAuthenticator(apiClient api.ClientAPI, store storage.AuthStorage, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// Register регистрирует нового пользователя и возвращает его id
func (s *Authenticator) Register(ctx context.Context, username, password string, role models.Role) (string, error) {
	if err := validation.ValidateRegistration(username, password, role); err != nil {
		return "", err
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username: username,
		Password: password,
		Role:     string(role),
	})
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("User registered", "username", username, "user_id", resp.UserID)
	return resp.UserID, nil
}

// Login выполняет аутентификацию пользователя
func (s *Authenticator) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("invalid password: password is required")
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	auth := s.authData(username, resp)
	if err := s.store.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.apiClient.SetToken(auth.AccessToken)
	s.logger.Info("Logged in", "username", username, "user_id", auth.UserID)
	return auth, nil
}

// Restore восстанавливает сохраненную сессию
func (s *Authenticator) Restore(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.store.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	if auth.Expired(s.now()) {
		if auth.RefreshToken == "" {
			return nil, fmt.Errorf("session expired: %w", storage.ErrAuthNotFound)
		}

		resp, err := s.apiClient.Refresh(ctx, auth.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}

		auth = s.authData(auth.Username, resp)
		if err := s.store.SaveAuth(ctx, auth); err != nil {
			return nil, fmt.Errorf("failed to save auth data: %w", err)
		}
		s.logger.Debug("Access token refreshed", "user_id", auth.UserID)
	}

	s.apiClient.SetToken(auth.AccessToken)
	return auth, nil
}

// Logout выполняет выход из системы
// Удаляет локальные данные авторизации и уведомляет сервер
func (s *Authenticator) Logout(ctx context.Context) error {
	auth, err := s.store.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		s.logger.Debug("No auth data found during logout")
	case err != nil:
		return fmt.Errorf("failed to get auth data: %w", err)
	default:
		// Не прерываем выход, если сервер недоступен
		if logoutErr := s.apiClient.Logout(ctx, auth.RefreshToken); logoutErr != nil {
			s.logger.Warn("Failed to logout on server", "error", logoutErr)
		}
	}

	s.apiClient.SetToken("")

	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}
	return nil
}

func (s *Authenticator) authData(username string, resp *pkgapi.TokenResponse) *storage.AuthData {
	return &storage.AuthData{
		Username:     username,
		UserID:       resp.UserID,
		Role:         models.Role(resp.Role),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
}
