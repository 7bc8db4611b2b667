package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/server/storage"
	"github.com/iudanet/fitsync/pkg/api"
)

const (
	oatmeal = `{"name":"Oatmeal","meal_type":"breakfast","calories":350,"macros":{"protein_g":12,"carbs_g":60,"fat_g":6},"consumed_at":"2026-10-14T08:00:00Z"}`
	salad   = `{"name":"Salad","meal_type":"lunch","calories":220,"macros":{"protein_g":5,"carbs_g":10,"fat_g":15},"consumed_at":"2026-10-14T13:00:00Z"}`
)

type recordsFixture struct {
	handler *RecordsHandler
	userID  string
	clock   time.Time
}

func newRecordsFixture(t *testing.T) *recordsFixture {
	t.Helper()

	s := setupTestStorage(t)
	f := &recordsFixture{userID: createTestUser(t, s), clock: testNow}
	f.handler = NewRecordsHandler(setupTestLogger(), s).WithClock(func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	})
	return f
}

// do выполняет запрос от имени пользователя фикстуры
func (f *recordsFixture) do(t *testing.T, handler http.HandlerFunc, method, collection, id string, body any) *httptest.ResponseRecorder {
	t.Helper()

	target := "/api/v1/" + collection
	if id != "" {
		target += "/" + id
	}
	req := newJSONRequest(t, method, target, body)
	req.SetPathValue("collection", collection)
	req.SetPathValue("id", id)
	req = req.WithContext(WithUser(req.Context(), f.userID, "anna", models.RoleClient))

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func (f *recordsFixture) create(t *testing.T, payload string) api.Record {
	t.Helper()

	w := f.do(t, f.handler.Create, http.MethodPost, models.CollectionFoodEntries, "", `{"payload":`+payload+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeResponse[api.Record](t, w)
}

func TestRecordsHandler_CreateAndList(t *testing.T) {
	f := newRecordsFixture(t)

	first := f.create(t, oatmeal)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, int64(1), first.Version)
	assert.JSONEq(t, oatmeal, string(first.Payload))

	second := f.create(t, salad)

	w := f.do(t, f.handler.List, http.MethodGet, models.CollectionFoodEntries, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse[api.ListRecordsResponse](t, w)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, second.ID, resp.Records[0].ID, "newest first")
	assert.Equal(t, first.ID, resp.Records[1].ID)

	t.Run("empty collection", func(t *testing.T) {
		w := f.do(t, f.handler.List, http.MethodGet, models.CollectionWorkouts, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"records":[]}`, w.Body.String())
	})
}

func TestRecordsHandler_CreateValidation(t *testing.T) {
	f := newRecordsFixture(t)

	tests := []struct {
		name       string
		collection string
		body       string
		wantField  string
		wantCode   int
	}{
		{
			name:       "negative calories",
			collection: models.CollectionFoodEntries,
			body:       `{"payload":{"name":"Cake","meal_type":"snack","calories":-1,"consumed_at":"2026-10-14T08:00:00Z"}}`,
			wantCode:   http.StatusUnprocessableEntity,
			wantField:  "calories",
		},
		{
			name:       "missing payload",
			collection: models.CollectionFoodEntries,
			body:       `{}`,
			wantCode:   http.StatusUnprocessableEntity,
			wantField:  "payload",
		},
		{
			name:       "malformed body",
			collection: models.CollectionFoodEntries,
			body:       `{"payload":`,
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "unknown collection",
			collection: "passwords",
			body:       `{"payload":{}}`,
			wantCode:   http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, f.handler.Create, http.MethodPost, tt.collection, "", tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())

			if tt.wantField != "" {
				resp := decodeResponse[api.ErrorResponse](t, w)
				require.NotEmpty(t, resp.Fields)
				assert.Equal(t, tt.wantField, resp.Fields[0].Field)
			}
		})
	}
}

func TestRecordsHandler_Update(t *testing.T) {
	f := newRecordsFixture(t)
	rec := f.create(t, oatmeal)

	update := func(id, payload string, version int64) *httptest.ResponseRecorder {
		return f.do(t, f.handler.Update, http.MethodPut, models.CollectionFoodEntries, id, api.UpdateRecordRequest{
			Payload: []byte(payload),
			Version: version,
		})
	}

	w := update(rec.ID, salad, rec.Version)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeResponse[api.Record](t, w)
	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, int64(2), updated.Version)
	assert.JSONEq(t, salad, string(updated.Payload))
	assert.True(t, updated.UpdatedAt.After(rec.UpdatedAt))

	t.Run("stale version", func(t *testing.T) {
		assert.Equal(t, http.StatusConflict, update(rec.ID, oatmeal, 1).Code)
	})

	t.Run("unknown record", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, update("missing", oatmeal, 1).Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		assert.Equal(t, http.StatusUnprocessableEntity, update(rec.ID, `{"name":""}`, 2).Code)
	})
}

func TestRecordsHandler_Delete(t *testing.T) {
	f := newRecordsFixture(t)
	rec := f.create(t, oatmeal)

	w := f.do(t, f.handler.Delete, http.MethodDelete, models.CollectionFoodEntries, rec.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, f.handler.Delete, http.MethodDelete, models.CollectionFoodEntries, rec.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordsHandler_Isolation(t *testing.T) {
	f := newRecordsFixture(t)
	rec := f.create(t, oatmeal)

	other := *f
	other.userID = "someone-else"

	w := other.do(t, f.handler.List, http.MethodGet, models.CollectionFoodEntries, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeResponse[api.ListRecordsResponse](t, w).Records)

	w = other.do(t, f.handler.Delete, http.MethodDelete, models.CollectionFoodEntries, rec.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordsHandler_Unauthenticated(t *testing.T) {
	h := NewRecordsHandler(setupTestLogger(), &storage.RecordStorageMock{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/food_entries", nil)
	req.SetPathValue("collection", models.CollectionFoodEntries)
	w := httptest.NewRecorder()
	h.List(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecordsHandler_StorageError(t *testing.T) {
	records := &storage.RecordStorageMock{
		ListRecordsFunc: func(context.Context, string, string) ([]*models.Record, error) {
			return nil, errors.New("database is locked")
		},
	}
	f := &recordsFixture{handler: NewRecordsHandler(setupTestLogger(), records), userID: "user-1"}

	w := f.do(t, f.handler.List, http.MethodGet, models.CollectionRoutes, "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, records.ListRecordsCalls(), 1)
	assert.Equal(t, "user-1", records.ListRecordsCalls()[0].UserID)
	assert.Equal(t, models.CollectionRoutes, records.ListRecordsCalls()[0].Collection)
}
