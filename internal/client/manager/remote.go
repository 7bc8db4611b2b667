package manager

import (
	"context"
	"encoding/json"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/pkg/api"
)

//go:generate moq -out records_mock.go . RecordClient

// RecordClient часть API клиента, работающая с записями коллекций
type RecordClient interface {
	ListRecords(ctx context.Context, collection string) ([]api.Record, error)
	CreateRecord(ctx context.Context, collection string, payload json.RawMessage) (*api.Record, error)
	UpdateRecord(ctx context.Context, collection, id string, payload json.RawMessage, version int64) (*api.Record, error)
	DeleteRecord(ctx context.Context, collection, id string) error
}

// recordRemote реализует syncer.Remote поверх endpoint'ов записей одной коллекции
type recordRemote[T any] struct {
	client     RecordClient
	collection string
}

func (r *recordRemote[T]) Create(ctx context.Context, payload T) (entity.Entity[T], error) {
	raw, err := gojson.Marshal(payload)
	if err != nil {
		return entity.Entity[T]{}, fmt.Errorf("failed to encode %s payload: %w", r.collection, err)
	}

	rec, err := r.client.CreateRecord(ctx, r.collection, raw)
	if err != nil {
		return entity.Entity[T]{}, err
	}
	return decodeRecord[T](*rec)
}

func (r *recordRemote[T]) Update(ctx context.Context, id entity.ID, payload T, version int64) (entity.Entity[T], error) {
	raw, err := gojson.Marshal(payload)
	if err != nil {
		return entity.Entity[T]{}, fmt.Errorf("failed to encode %s payload: %w", r.collection, err)
	}

	rec, err := r.client.UpdateRecord(ctx, r.collection, id.String(), raw, version)
	if err != nil {
		return entity.Entity[T]{}, err
	}
	return decodeRecord[T](*rec)
}

func (r *recordRemote[T]) Delete(ctx context.Context, id entity.ID) error {
	return r.client.DeleteRecord(ctx, r.collection, id.String())
}

// decodeRecord превращает серверную запись в подтвержденную сущность
func decodeRecord[T any](rec api.Record) (entity.Entity[T], error) {
	var payload T
	if err := gojson.Unmarshal(rec.Payload, &payload); err != nil {
		return entity.Entity[T]{}, fmt.Errorf("failed to decode record %s: %w", rec.ID, err)
	}
	if rec.ID == "" {
		return entity.Entity[T]{}, fmt.Errorf("%w: server record without id", entity.ErrInvariantViolation)
	}

	return entity.Entity[T]{
		ID:      entity.Confirmed(rec.ID),
		Payload: payload,
		Version: rec.Version,
		State:   entity.StateConfirmed,
	}, nil
}
