package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/server/storage"
)

func newTestRecord(userID, collection, payload string, at time.Time) *models.Record {
	return &models.Record{
		ID:         uuid.New().String(),
		UserID:     userID,
		Collection: collection,
		Payload:    json.RawMessage(payload),
		Version:    1,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func TestRecordStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	record := newTestRecord(userID, models.CollectionFoodEntries, `{"name":"Oatmeal","calories":350}`, at)

	require.NoError(t, s.CreateRecord(ctx, record))

	got, err := s.GetRecord(ctx, userID, models.CollectionFoodEntries, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.JSONEq(t, string(record.Payload), string(got.Payload))
	assert.Equal(t, int64(1), got.Version)
	assert.True(t, at.Equal(got.CreatedAt))

	t.Run("other collection", func(t *testing.T) {
		_, err := s.GetRecord(ctx, userID, models.CollectionWorkouts, record.ID)
		assert.ErrorIs(t, err, storage.ErrRecordNotFound)
	})

	t.Run("other user", func(t *testing.T) {
		otherID := createTestUser(t, ctx, s)
		_, err := s.GetRecord(ctx, otherID, models.CollectionFoodEntries, record.ID)
		assert.ErrorIs(t, err, storage.ErrRecordNotFound)
	})
}

func TestRecordStorage_ListRecords(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	otherID := createTestUser(t, ctx, s)
	base := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	older := newTestRecord(userID, models.CollectionWorkouts, `{"title":"Legs"}`, base)
	newer := newTestRecord(userID, models.CollectionWorkouts, `{"title":"Push"}`, base.Add(time.Hour))
	require.NoError(t, s.CreateRecord(ctx, older))
	require.NoError(t, s.CreateRecord(ctx, newer))
	require.NoError(t, s.CreateRecord(ctx, newTestRecord(userID, models.CollectionRoutes, `{}`, base)))
	require.NoError(t, s.CreateRecord(ctx, newTestRecord(otherID, models.CollectionWorkouts, `{}`, base)))

	records, err := s.ListRecords(ctx, userID, models.CollectionWorkouts)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newer.ID, records[0].ID)
	assert.Equal(t, older.ID, records[1].ID)

	empty, err := s.ListRecords(ctx, userID, models.CollectionChatMessages)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRecordStorage_UpdateRecord(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	record := newTestRecord(userID, models.CollectionTrainingPlans, `{"title":"Base"}`, at)
	require.NoError(t, s.CreateRecord(ctx, record))

	update := func(payload string, expected int64) (*models.Record, error) {
		r := record.Clone()
		r.Payload = json.RawMessage(payload)
		r.UpdatedAt = at.Add(time.Minute)
		return s.UpdateRecord(ctx, r, expected)
	}

	updated, err := update(`{"title":"Strength"}`, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.JSONEq(t, `{"title":"Strength"}`, string(updated.Payload))
	assert.True(t, at.Add(time.Minute).Equal(updated.UpdatedAt))
	assert.True(t, at.Equal(updated.CreatedAt))

	t.Run("stale version", func(t *testing.T) {
		_, err := update(`{"title":"Stale"}`, 1)
		assert.ErrorIs(t, err, storage.ErrVersionConflict)

		got, err := s.GetRecord(ctx, userID, models.CollectionTrainingPlans, record.ID)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Strength"}`, string(got.Payload))
	})

	t.Run("version check disabled", func(t *testing.T) {
		got, err := update(`{"title":"Forced"}`, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Version)
	})

	t.Run("missing record", func(t *testing.T) {
		r := newTestRecord(userID, models.CollectionTrainingPlans, `{}`, at)
		_, err := s.UpdateRecord(ctx, r, 1)
		assert.ErrorIs(t, err, storage.ErrRecordNotFound)
	})
}

func TestRecordStorage_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	record := newTestRecord(userID, models.CollectionBodyStats, `{"weight_kg":70}`, time.Now())
	require.NoError(t, s.CreateRecord(ctx, record))

	require.NoError(t, s.DeleteRecord(ctx, userID, models.CollectionBodyStats, record.ID))

	_, err := s.GetRecord(ctx, userID, models.CollectionBodyStats, record.ID)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	err = s.DeleteRecord(ctx, userID, models.CollectionBodyStats, record.ID)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}
