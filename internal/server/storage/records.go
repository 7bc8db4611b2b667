package storage

import (
	"context"

	"github.com/iudanet/fitsync/internal/models"
)

//go:generate moq -out records_mock.go . RecordStorage

// RecordStorage defines interface for per-user collection records
type RecordStorage interface {
	// CreateRecord stores a new record. ID, Version and timestamps must be set by the caller
	CreateRecord(ctx context.Context, record *models.Record) error

	// GetRecord retrieves a record of the user's collection
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, userID, collection, id string) (*models.Record, error)

	// ListRecords retrieves all records of the user's collection, newest first
	// Returns empty slice if no records found
	ListRecords(ctx context.Context, userID, collection string) ([]*models.Record, error)

	// UpdateRecord replaces payload and bumps version.
	// expectedVersion 0 disables the version check.
	// Returns ErrRecordNotFound if record doesn't exist, ErrVersionConflict if version is stale
	UpdateRecord(ctx context.Context, record *models.Record, expectedVersion int64) (*models.Record, error)

	// DeleteRecord deletes a record of the user's collection
	// Returns ErrRecordNotFound if record doesn't exist
	DeleteRecord(ctx context.Context, userID, collection, id string) error
}
