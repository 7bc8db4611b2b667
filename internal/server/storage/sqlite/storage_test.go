package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/models"
)

// setupTestStorage создает хранилище в памяти с примененными миграциями
func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	return s, func() {
		_ = s.Close()
	}
}

// createTestUser создает пользователя и возвращает его ID
func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "user-" + uuid.New().String()[:8],
		PasswordHash: "hash",
		Role:         models.RoleClient,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))
	return user.ID
}

func TestNew_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fitsync.db")

	s, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))
	userID := createTestUser(t, ctx, s)
	require.NoError(t, s.Close())

	// Повторное открытие не ломается на уже примененных миграциях
	s, err = New(ctx, path)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	user, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "fitsync.db"))
	require.Error(t, err)
}
