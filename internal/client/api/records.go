package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/fitsync/pkg/api"
)

func recordsPath(collection string) string {
	return "/api/v1/" + url.PathEscape(collection)
}

func recordPath(collection, id string) string {
	return recordsPath(collection) + "/" + url.PathEscape(id)
}

// ListRecords возвращает все записи коллекции текущего пользователя, новые первыми
func (c *Client) ListRecords(ctx context.Context, collection string) ([]api.Record, error) {
	var resp api.ListRecordsResponse
	if err := c.Perform(ctx, Request{Method: http.MethodGet, Path: recordsPath(collection)}, &resp); err != nil {
		return nil, fmt.Errorf("list %s failed: %w", collection, err)
	}
	return resp.Records, nil
}

// CreateRecord создает запись и возвращает ее с серверным id
func (c *Client) CreateRecord(ctx context.Context, collection string, payload json.RawMessage) (*api.Record, error) {
	var rec api.Record
	req := Request{
		Method: http.MethodPost,
		Path:   recordsPath(collection),
		Body:   api.CreateRecordRequest{Payload: payload},
	}
	if err := c.Perform(ctx, req, &rec); err != nil {
		return nil, fmt.Errorf("create %s failed: %w", collection, err)
	}
	return &rec, nil
}

// UpdateRecord заменяет payload записи. Сервер отвечает 409, если version устарела.
func (c *Client) UpdateRecord(ctx context.Context, collection, id string, payload json.RawMessage, version int64) (*api.Record, error) {
	var rec api.Record
	req := Request{
		Method: http.MethodPut,
		Path:   recordPath(collection, id),
		Body:   api.UpdateRecordRequest{Payload: payload, Version: version},
	}
	if err := c.Perform(ctx, req, &rec); err != nil {
		return nil, fmt.Errorf("update %s/%s failed: %w", collection, id, err)
	}
	return &rec, nil
}

// DeleteRecord удаляет запись
func (c *Client) DeleteRecord(ctx context.Context, collection, id string) error {
	if err := c.Perform(ctx, Request{Method: http.MethodDelete, Path: recordPath(collection, id)}, nil); err != nil {
		return fmt.Errorf("delete %s/%s failed: %w", collection, id, err)
	}
	return nil
}
