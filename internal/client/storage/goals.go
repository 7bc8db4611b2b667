package storage

import (
	"context"

	"github.com/iudanet/fitsync/internal/models"
)

//go:generate moq -out goals_mock.go . GoalsStorage

// DefaultGoals дневные цели, пока пользователь не задал свои
var DefaultGoals = models.Goals{
	Calories: 2000,
	WaterMl:  2000,
	Steps:    10000,
}

// GoalsStorage хранит дневные цели клиента локально
type GoalsStorage interface {
	SaveGoals(ctx context.Context, goals models.Goals) error

	// GetGoals возвращает DefaultGoals, если цели еще не сохранялись
	GetGoals(ctx context.Context) (models.Goals, error)
}
