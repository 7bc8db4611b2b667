package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)

	client = NewClient(baseURL, WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем метод и путь
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "coach", req.Username)
		assert.Equal(t, "secret-password", req.Password)
		assert.Equal(t, "trainer", req.Role)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RegisterResponse{UserID: "user-123", Message: "Registration successful"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Register(context.Background(), api.RegisterRequest{
		Username: "coach",
		Password: "secret-password",
		Role:     "trainer",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.UserID)
	assert.Equal(t, "Registration successful", resp.Message)
}

// TestClient_Login проверяет аутентификацию и refresh
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var req api.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req.Username)
		case "/api/v1/auth/refresh":
			var req api.RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "refresh-1", req.RefreshToken)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken:  "access",
			RefreshToken: "refresh-2",
			UserID:       "user-1",
			Role:         "client",
			ExpiresIn:    900,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	tokens, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.EqualValues(t, 900, tokens.ExpiresIn)

	tokens, err = client.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", tokens.RefreshToken)
}

// TestClient_Logout проверяет отзыв токена и пустой ответ
func TestClient_Logout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).Logout(context.Background(), "refresh"))
}

// TestClient_BearerToken проверяет передачу токена
func TestClient_BearerToken(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.ListRecordsResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListRecords(context.Background(), "workouts")
	require.NoError(t, err)

	client.SetToken("abc")
	_, err = client.ListRecords(context.Background(), "workouts")
	require.NoError(t, err)

	client.SetToken("")
	_, err = client.ListRecords(context.Background(), "workouts")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc", ""}, got)
}

// TestClient_Perform_Failures проверяет классификацию ошибок по статусу
func TestClient_Perform_Failures(t *testing.T) {
	tests := []struct {
		body      any
		name      string
		wantClass Class
		wantMsg   string
		status    int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: api.ErrorResponse{Error: "unauthorized", Message: "token expired"}, wantClass: ClassAuth, wantMsg: "token expired"},
		{name: "forbidden", status: http.StatusForbidden, body: api.ErrorResponse{Error: "forbidden"}, wantClass: ClassAuth, wantMsg: "forbidden"},
		{name: "bad request", status: http.StatusBadRequest, body: api.ErrorResponse{Error: "bad_request", Message: "invalid json"}, wantClass: ClassValidation, wantMsg: "invalid json"},
		{name: "not found", status: http.StatusNotFound, body: api.ErrorResponse{Error: "not_found"}, wantClass: ClassNotFound, wantMsg: "not_found"},
		{name: "conflict", status: http.StatusConflict, body: api.ErrorResponse{Error: "conflict", Message: "stale version"}, wantClass: ClassConflict, wantMsg: "stale version"},
		{name: "server error", status: http.StatusInternalServerError, body: "oops", wantClass: ClassServer, wantMsg: "oops"},
		{name: "bad gateway without body", status: http.StatusBadGateway, body: nil, wantClass: ClassServer, wantMsg: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				switch b := tt.body.(type) {
				case nil:
				case string:
					_, _ = w.Write([]byte(b))
				default:
					_ = json.NewEncoder(w).Encode(b)
				}
			}))
			defer server.Close()

			err := NewClient(server.URL).Perform(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
			require.Error(t, err)

			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, tt.wantClass, f.Class)
			assert.Equal(t, tt.status, f.StatusCode)
			assert.Equal(t, tt.wantMsg, f.Message)
			assert.Equal(t, string(tt.wantClass), f.FailureClass())
		})
	}
}

// TestClient_ValidationFields проверяет передачу ошибок по полям
func TestClient_ValidationFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   "validation_failed",
			Message: "invalid payload",
			Fields:  []api.FieldError{{Field: "calories", Message: "must not be negative"}},
		})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).CreateRecord(context.Background(), "food_entries", json.RawMessage(`{"calories":-1}`))
	require.Error(t, err)
	assert.True(t, IsClass(err, ClassValidation))

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, map[string]string{"calories": "must not be negative"}, f.FailureFields())
}

// TestClient_TransportFailure проверяет ошибки соединения
func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(url).Perform(context.Background(), Request{Method: http.MethodGet, Path: "/"}, nil)
	assert.True(t, IsClass(err, ClassNetwork))

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Zero(t, f.StatusCode)
	assert.Error(t, f.Unwrap())
}

// TestClient_Timeout проверяет, что таймаут клиента - ошибка сети
// brokenBody не кодируется в JSON
type brokenBody struct{}

func (brokenBody) MarshalJSON() ([]byte, error) {
	return nil, errors.New("cannot encode")
}

// TestClient_RequestBuildFailures проверяет, что ошибки до отправки тоже типизированы
func TestClient_RequestBuildFailures(t *testing.T) {
	client := NewClient("http://localhost:1")

	err := client.Perform(context.Background(), Request{Method: http.MethodPost, Path: "/x", Body: brokenBody{}}, nil)
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, ClassValidation, f.Class)
	assert.Zero(t, f.StatusCode)
	assert.Contains(t, f.Message, "failed to marshal request body")

	err = client.Perform(context.Background(), Request{Method: "bad method", Path: "/x"}, nil)
	require.ErrorAs(t, err, &f)
	assert.Equal(t, ClassNetwork, f.Class)
	assert.Contains(t, f.Message, "failed to create request")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	err := NewClient(server.URL, WithTimeout(50*time.Millisecond)).
		Perform(context.Background(), Request{Method: http.MethodGet, Path: "/"}, nil)
	assert.True(t, IsClass(err, ClassNetwork), "got %v", err)
}

// TestClient_Cancelled проверяет отмену контекста
func TestClient_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(server.URL).Perform(ctx, Request{Method: http.MethodGet, Path: "/"}, nil)
	assert.True(t, IsClass(err, ClassCancelled), "got %v", err)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestClient_Records проверяет CRUD записей коллекции
func TestClient_Records(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/food_entries", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.ListRecordsResponse{Records: []api.Record{
			{ID: "r2", Version: 1, Payload: json.RawMessage(`{"name":"Pear"}`), CreatedAt: now},
			{ID: "r1", Version: 3, Payload: json.RawMessage(`{"name":"Apple"}`), CreatedAt: now},
		}})
	})
	mux.HandleFunc("POST /api/v1/food_entries", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateRecordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.JSONEq(t, `{"name":"Kiwi"}`, string(req.Payload))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.Record{ID: "r3", Version: 1, Payload: req.Payload})
	})
	mux.HandleFunc("PUT /api/v1/food_entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req api.UpdateRecordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "r1", r.PathValue("id"))
		assert.EqualValues(t, 3, req.Version)
		_ = json.NewEncoder(w).Encode(api.Record{ID: "r1", Version: 4, Payload: req.Payload})
	})
	mux.HandleFunc("DELETE /api/v1/food_entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "r2", r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	records, err := client.ListRecords(ctx, "food_entries")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r2", records[0].ID)

	created, err := client.CreateRecord(ctx, "food_entries", json.RawMessage(`{"name":"Kiwi"}`))
	require.NoError(t, err)
	assert.Equal(t, "r3", created.ID)

	updated, err := client.UpdateRecord(ctx, "food_entries", "r1", json.RawMessage(`{"name":"Green apple"}`), 3)
	require.NoError(t, err)
	assert.EqualValues(t, 4, updated.Version)

	require.NoError(t, client.DeleteRecord(ctx, "food_entries", "r2"))
}
