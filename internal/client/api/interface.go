package api

import (
	"context"
	"encoding/json"

	"github.com/iudanet/fitsync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс HTTP клиента сервера
type ClientAPI interface {
	SetToken(token string)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ListRecords(ctx context.Context, collection string) ([]api.Record, error)
	CreateRecord(ctx context.Context, collection string, payload json.RawMessage) (*api.Record, error)
	UpdateRecord(ctx context.Context, collection, id string, payload json.RawMessage, version int64) (*api.Record, error)
	DeleteRecord(ctx context.Context, collection, id string) error
}

var _ ClientAPI = (*Client)(nil)
