package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/server/storage"
	"github.com/iudanet/fitsync/internal/validation"
	"github.com/iudanet/fitsync/pkg/api"
)

// RecordsHandler обрабатывает CRUD запросы к коллекциям пользователя
type RecordsHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
	now     func() time.Time
}

// NewRecordsHandler создает handler коллекций
func NewRecordsHandler(logger *slog.Logger, storage storage.RecordStorage) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

// WithClock подменяет источник времени
func (h *RecordsHandler) WithClock(now func() time.Time) *RecordsHandler {
	h.now = now
	return h
}

// scope извлекает пользователя и коллекцию запроса.
// При ошибке ответ уже отправлен.
func (h *RecordsHandler) scope(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "user ID not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	collection := r.PathValue("collection")
	if !models.IsKnownCollection(collection) {
		sendError(h.logger, w, "unknown collection "+collection, http.StatusNotFound)
		return "", "", false
	}

	return userID, collection, true
}

// List обрабатывает GET /api/v1/{collection}
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}

	records, err := h.storage.ListRecords(r.Context(), userID, collection)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list records",
			slog.String("collection", collection), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ListRecordsResponse{Records: make([]api.Record, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, toAPIRecord(rec))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/v1/{collection}
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req api.CreateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !h.validate(w, r, collection, req.Payload) {
		return
	}

	now := h.now()
	record := &models.Record{
		ID:         uuid.New().String(),
		UserID:     userID,
		Collection: collection,
		Payload:    req.Payload,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.storage.CreateRecord(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to create record",
			slog.String("collection", collection), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.DebugContext(ctx, "record created",
		slog.String("collection", collection),
		slog.String("record_id", record.ID))

	sendJSON(h.logger, w, toAPIRecord(record), http.StatusCreated)
}

// Update обрабатывает PUT /api/v1/{collection}/{id}
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req api.UpdateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !h.validate(w, r, collection, req.Payload) {
		return
	}

	updated, err := h.storage.UpdateRecord(ctx, &models.Record{
		ID:         id,
		UserID:     userID,
		Collection: collection,
		Payload:    req.Payload,
		UpdatedAt:  h.now(),
	}, req.Version)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrRecordNotFound):
			sendError(h.logger, w, "record not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrVersionConflict):
			h.logger.InfoContext(ctx, "stale record version",
				slog.String("record_id", id), slog.Int64("version", req.Version))
			sendError(h.logger, w, "record was changed, reload and retry", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to update record",
				slog.String("record_id", id), slog.Any("error", err))
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	sendJSON(h.logger, w, toAPIRecord(updated), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/{collection}/{id}
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.storage.DeleteRecord(ctx, userID, collection, id); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			sendError(h.logger, w, "record not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete record",
			slog.String("record_id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validate проверяет payload записи, при ошибке отправляет 422 или 400
func (h *RecordsHandler) validate(w http.ResponseWriter, r *http.Request, collection string, payload []byte) bool {
	if len(payload) == 0 {
		sendValidationError(h.logger, w, []api.FieldError{{Field: "payload", Message: "payload is required"}})
		return false
	}

	err := validation.ValidatePayload(collection, payload)
	if err == nil {
		return true
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		h.logger.InfoContext(r.Context(), "payload rejected",
			slog.String("collection", collection), slog.Any("error", err))
		sendValidationError(h.logger, w, verr.Fields)
		return false
	}

	sendError(h.logger, w, err.Error(), http.StatusBadRequest)
	return false
}

func toAPIRecord(rec *models.Record) api.Record {
	return api.Record{
		ID:        rec.ID,
		Payload:   rec.Payload,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
