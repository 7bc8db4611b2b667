package boltdb

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/models"
)

var keyGoals = []byte("goals")

// SaveGoals сохраняет дневные цели
func (s *Storage) SaveGoals(ctx context.Context, goals models.Goals) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		data, err := json.Marshal(goals)
		if err != nil {
			return fmt.Errorf("failed to marshal goals: %w", err)
		}

		if err := bucket.Put(keyGoals, data); err != nil {
			return fmt.Errorf("failed to save goals: %w", err)
		}
		return nil
	})
}

// GetGoals возвращает сохраненные цели или storage.DefaultGoals
func (s *Storage) GetGoals(ctx context.Context) (models.Goals, error) {
	goals := storage.DefaultGoals

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		data := bucket.Get(keyGoals)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &goals)
	})
	if err != nil {
		return models.Goals{}, fmt.Errorf("failed to get goals: %w", err)
	}

	return goals, nil
}
