package manager

import (
	"context"
	"time"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/client/syncer"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/validation"
)

// WorkoutManager журнал тренировок
type WorkoutManager struct {
	*Manager[models.Workout]
}

// NewWorkoutManager создает менеджер тренировок
func NewWorkoutManager(client RecordClient, cfg Config) *WorkoutManager {
	return &WorkoutManager{
		Manager: New(models.CollectionWorkouts, client, validation.ValidateWorkout, cfg),
	}
}

func performedAt(w models.Workout) time.Time { return w.PerformedAt }

// LogWorkout добавляет выполненную тренировку
func (m *WorkoutManager) LogWorkout(ctx context.Context, w models.Workout) *syncer.Outcome[models.Workout] {
	if w.PerformedAt.IsZero() {
		w.PerformedAt = m.clock.Now()
	}
	return m.Add(ctx, w)
}

// SetDuration меняет длительность тренировки
func (m *WorkoutManager) SetDuration(ctx context.Context, id entity.ID, minutes int) *syncer.Outcome[models.Workout] {
	return m.Modify(ctx, id, func(w models.Workout) models.Workout {
		w.DurationMinutes = minutes
		return w
	})
}

// DeleteWorkout удаляет тренировку
func (m *WorkoutManager) DeleteWorkout(ctx context.Context, id entity.ID) *syncer.Outcome[models.Workout] {
	return m.Delete(ctx, id)
}

// WeekWorkouts тренировки текущей недели
func (m *WorkoutManager) WeekWorkouts() []models.Workout {
	return entries(m.Manager, performedAt, aggregate.ThisWeek(m.clock))
}

// WeekMinutes суммарная длительность тренировок за неделю
func (m *WorkoutManager) WeekMinutes() int {
	return aggregate.Sum(m.WeekWorkouts(), func(w models.Workout) int { return w.DurationMinutes })
}

// WeekCaloriesBurned потраченные за неделю калории
func (m *WorkoutManager) WeekCaloriesBurned() float64 {
	return aggregate.Sum(m.WeekWorkouts(), func(w models.Workout) float64 { return w.CaloriesBurned })
}
