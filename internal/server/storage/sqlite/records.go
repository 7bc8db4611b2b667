package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/server/storage"
)

const recordColumns = `id, user_id, collection, payload, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateRecord stores a new record
func (s *Storage) CreateRecord(ctx context.Context, record *models.Record) error {
	query := `INSERT INTO records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Collection,
		[]byte(record.Payload),
		record.Version,
		record.CreatedAt.UnixNano(),
		record.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// GetRecord retrieves a record of the user's collection
func (s *Storage) GetRecord(ctx context.Context, userID, collection, id string) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE id = ? AND user_id = ? AND collection = ?`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id, userID, collection))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return record, nil
}

// ListRecords retrieves all records of the user's collection, newest first
func (s *Storage) ListRecords(ctx context.Context, userID, collection string) ([]*models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = ? AND collection = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*models.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// UpdateRecord заменяет payload и увеличивает версию одной операцией.
// При нуле затронутых строк различаем отсутствие записи и устаревшую версию.
func (s *Storage) UpdateRecord(ctx context.Context, record *models.Record, expectedVersion int64) (*models.Record, error) {
	query := `
		UPDATE records
		SET payload = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND user_id = ? AND collection = ? AND (? = 0 OR version = ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		[]byte(record.Payload),
		record.UpdatedAt.UnixNano(),
		record.ID,
		record.UserID,
		record.Collection,
		expectedVersion,
		expectedVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		if _, err := s.GetRecord(ctx, record.UserID, record.Collection, record.ID); err != nil {
			return nil, err
		}
		return nil, storage.ErrVersionConflict
	}

	return s.GetRecord(ctx, record.UserID, record.Collection, record.ID)
}

// DeleteRecord deletes a record of the user's collection
func (s *Storage) DeleteRecord(ctx context.Context, userID, collection, id string) error {
	query := `DELETE FROM records WHERE id = ? AND user_id = ? AND collection = ?`

	result, err := s.db.ExecContext(ctx, query, id, userID, collection)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

func scanRecord(row rowScanner) (*models.Record, error) {
	record := &models.Record{}
	var (
		payload              []byte
		createdAt, updatedAt int64
	)

	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Collection,
		&payload,
		&record.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	record.Payload = payload
	record.CreatedAt = fromUnixNano(createdAt)
	record.UpdatedAt = fromUnixNano(updatedAt)

	return record, nil
}
