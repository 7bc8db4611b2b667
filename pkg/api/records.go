package api

import (
	"encoding/json"
	"time"
)

// Record серверная запись коллекции. Payload - доменный объект в JSON.
type Record struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	Version   int64           `json:"version"`
}

// CreateRecordRequest запрос на создание записи
type CreateRecordRequest struct {
	Payload json.RawMessage `json:"payload"`
}

// UpdateRecordRequest запрос на замену payload записи.
// Version - версия, на которой основано изменение; 0 отключает проверку.
type UpdateRecordRequest struct {
	Payload json.RawMessage `json:"payload"`
	Version int64           `json:"version"`
}

// ListRecordsResponse ответ со списком записей, новые первыми
type ListRecordsResponse struct {
	Records []Record `json:"records"`
}
