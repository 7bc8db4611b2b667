package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/fitsync/internal/client/api"
	"github.com/iudanet/fitsync/internal/client/auth"
	"github.com/iudanet/fitsync/internal/client/manager"
	"github.com/iudanet/fitsync/internal/client/metrics"
	"github.com/iudanet/fitsync/internal/client/session"
	clientstorage "github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/client/storage/boltdb"
	"github.com/iudanet/fitsync/internal/client/syncer"
	"github.com/iudanet/fitsync/internal/config"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/server/storage"
	"github.com/iudanet/fitsync/internal/server/storage/sqlite"
	"github.com/iudanet/fitsync/pkg/api"
)

func testConfig() config.Server {
	return config.Server{
		Addr:            "127.0.0.1:0",
		Database:        ":memory:",
		JWTSecret:       strings.Repeat("s", 32),
		LogLevel:        "debug",
		AccessTTL:       15 * time.Minute,
		RefreshTTL:      24 * time.Hour,
		ShutdownTimeout: time.Second,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServer struct {
	*Server
	store *sqlite.Storage
	http  *httptest.Server
}

func startServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	srv := New(testConfig(), store, discardLogger(), prometheus.NewRegistry(), "test")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testServer{Server: srv, store: store, http: ts}
}

func TestServer_Health(t *testing.T) {
	ts := startServer(t)

	resp, err := clientapi.NewClient(ts.http.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestServer_RecordsRequireToken(t *testing.T) {
	ts := startServer(t)

	_, err := clientapi.NewClient(ts.http.URL).ListRecords(context.Background(), models.CollectionWorkouts)
	require.Error(t, err)
	assert.True(t, clientapi.IsClass(err, clientapi.ClassAuth))
}

func TestServer_RecordLifecycle(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	client := clientapi.NewClient(ts.http.URL)

	_, err := client.Register(ctx, api.RegisterRequest{Username: "anna", Password: "password123", Role: "client"})
	require.NoError(t, err)
	tokens, err := client.Login(ctx, api.LoginRequest{Username: "anna", Password: "password123"})
	require.NoError(t, err)
	client.SetToken(tokens.AccessToken)

	payload := json.RawMessage(`{"title":"Morning run","kind":"cardio","duration_minutes":30,"performed_at":"2026-10-14T07:00:00Z"}`)
	rec, err := client.CreateRecord(ctx, models.CollectionWorkouts, payload)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Version)

	updated, err := client.UpdateRecord(ctx, models.CollectionWorkouts, rec.ID,
		json.RawMessage(`{"title":"Morning run","kind":"cardio","duration_minutes":45,"performed_at":"2026-10-14T07:00:00Z"}`), rec.Version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = client.UpdateRecord(ctx, models.CollectionWorkouts, rec.ID, payload, rec.Version)
	assert.True(t, clientapi.IsClass(err, clientapi.ClassConflict), "stale version: %v", err)

	_, err = client.CreateRecord(ctx, models.CollectionWorkouts, json.RawMessage(`{"title":"","performed_at":"2026-10-14T07:00:00Z"}`))
	var failure *clientapi.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, clientapi.ClassValidation, failure.Class)
	assert.Contains(t, failure.FailureFields(), "title")

	records, err := client.ListRecords(ctx, models.CollectionWorkouts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.JSONEq(t, string(updated.Payload), string(records[0].Payload))

	require.NoError(t, client.DeleteRecord(ctx, models.CollectionWorkouts, rec.ID))
	err = client.DeleteRecord(ctx, models.CollectionWorkouts, rec.ID)
	assert.True(t, clientapi.IsClass(err, clientapi.ClassNotFound))
}

func TestServer_Metrics(t *testing.T) {
	ts := startServer(t)

	_, err := clientapi.NewClient(ts.http.URL).Health(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(ts.http.URL + "/metrics")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `fitsync_server_http_requests_total{code="200",route="GET /api/v1/health"} 1`)
}

func TestServer_CleanupTokens(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return now }

	require.NoError(t, ts.store.CreateUser(ctx, &models.User{
		ID: "user-1", Username: "anna", PasswordHash: "hash", Role: models.RoleClient, CreatedAt: now,
	}))
	for token, expiresAt := range map[string]time.Time{"old": now.Add(-time.Minute), "fresh": now.Add(time.Hour)} {
		require.NoError(t, ts.store.SaveRefreshToken(ctx, &models.RefreshToken{
			Token: token, UserID: "user-1", ExpiresAt: expiresAt, CreatedAt: now.Add(-time.Hour),
		}))
	}

	assert.Equal(t, 1, ts.CleanupTokens(ctx))
	assert.Equal(t, 0, ts.CleanupTokens(ctx))

	_, err := ts.store.GetRefreshToken(ctx, "fresh")
	require.NoError(t, err)
	_, err = ts.store.GetRefreshToken(ctx, "old")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	ts := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ts.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

// newClientSession собирает клиентский стек поверх тестового сервера
func newClientSession(t *testing.T, baseURL, dbPath string) (*session.Session, auth.Service, func()) {
	t.Helper()

	local, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)

	client := clientapi.NewClient(baseURL)
	authSvc := auth.NewAuthenticator(client, local, discardLogger())
	managers := manager.NewSet(client, manager.Config{
		Logger:  discardLogger(),
		Metrics: metrics.New(prometheus.NewRegistry()),
	})

	return session.New(authSvc, managers, discardLogger()), authSvc, func() {
		_ = local.Close()
	}
}

func TestServer_ClientSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	dbPath := filepath.Join(t.TempDir(), "client.db")

	sess, authSvc, closeDB := newClientSession(t, ts.http.URL, dbPath)

	_, err := authSvc.Register(ctx, "anna", "password123", models.RoleClient)
	require.NoError(t, err)
	require.NoError(t, sess.Login(ctx, "anna", "password123"))

	managers, err := sess.Managers()
	require.NoError(t, err)

	entry := models.FoodEntry{
		Name:       "Oatmeal",
		MealType:   models.MealBreakfast,
		Calories:   350,
		ConsumedAt: time.Now(),
	}
	outcome := managers.Food.AddEntry(ctx, entry)
	assert.InDelta(t, 350, managers.Food.TodayCalories(), 0.001, "applied optimistically")

	created, err := outcome.Wait(ctx)
	require.NoError(t, err)
	assert.False(t, created.ID.IsPending())
	assert.Equal(t, int64(1), created.Version)

	_, err = managers.Food.AddEntry(ctx, models.FoodEntry{Name: "Cake", MealType: models.MealSnack, Calories: -5, ConsumedAt: time.Now()}).Wait(ctx)
	var mutationErr *syncer.MutationError
	require.ErrorAs(t, err, &mutationErr)
	assert.Equal(t, syncer.ClassValidation, mutationErr.Class)
	assert.InDelta(t, 350, managers.Food.TodayCalories(), 0.001)

	require.NoError(t, sess.Close(ctx))
	closeDB()

	// Новый процесс восстанавливает сессию из локального хранилища
	restored, _, closeRestored := newClientSession(t, ts.http.URL, dbPath)
	defer closeRestored()

	require.NoError(t, restored.Open(ctx))
	managers, err = restored.Managers()
	require.NoError(t, err)

	entries := managers.Food.TodayEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Oatmeal", entries[0].Name)

	require.NoError(t, restored.Logout(ctx))
	err = restored.Open(ctx)
	assert.ErrorIs(t, err, clientstorage.ErrAuthNotFound)
}
