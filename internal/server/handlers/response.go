package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/iudanet/fitsync/pkg/api"
)

// maxBodySize ограничение размера тела запроса
const maxBodySize = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// decodeJSON декодирует тело запроса в v
func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}
	return nil
}

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}

// sendValidationError отправляет 422 с ошибками полей
func sendValidationError(logger *slog.Logger, w http.ResponseWriter, fields []api.FieldError) {
	sendJSON(logger, w, api.ErrorResponse{
		Error:   http.StatusText(http.StatusUnprocessableEntity),
		Message: "validation failed",
		Fields:  fields,
	}, http.StatusUnprocessableEntity)
}
