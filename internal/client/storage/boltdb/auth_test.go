package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/models"
)

func TestStorage_SaveGetDeleteAuth(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	auth := &storage.AuthData{
		Username:     "testuser",
		UserID:       "user-id-123",
		Role:         models.RoleTrainer,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}

	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	require.NoError(t, store.SaveAuth(ctx, auth))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth, got)

	// повторное сохранение заменяет данные
	auth.AccessToken = "rotated"
	require.NoError(t, store.SaveAuth(ctx, auth))
	got, err = store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.AccessToken)

	require.NoError(t, store.DeleteAuth(ctx))

	_, err = store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	// удаление отсутствующих данных
	assert.ErrorIs(t, store.DeleteAuth(ctx), storage.ErrAuthNotFound)
}

func TestStorage_SaveAuth_Nil(t *testing.T) {
	store := newTestStorage(t)
	assert.Error(t, store.SaveAuth(context.Background(), nil))
}

func TestStorage_Auth_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketAuth)
	}))

	err := store.SaveAuth(ctx, &storage.AuthData{Username: "test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")

	_, err = store.GetAuth(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")

	err = store.DeleteAuth(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")
}

func TestAuthData_Expired(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt int64
		want      bool
	}{
		{name: "future", expiresAt: now.Add(time.Minute).Unix(), want: false},
		{name: "past", expiresAt: now.Add(-time.Minute).Unix(), want: true},
		{name: "exactly now", expiresAt: now.Unix(), want: true},
		{name: "unknown", expiresAt: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &storage.AuthData{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, a.Expired(now))
		})
	}
}
