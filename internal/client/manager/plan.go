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

// TrainingPlanManager планы тренировок, которые тренер назначает ученикам
type TrainingPlanManager struct {
	*Manager[models.TrainingPlan]
}

// NewTrainingPlanManager создает менеджер планов тренировок
func NewTrainingPlanManager(client RecordClient, cfg Config) *TrainingPlanManager {
	return &TrainingPlanManager{
		Manager: New(models.CollectionTrainingPlans, client, validation.ValidateTrainingPlan, cfg),
	}
}

// CreatePlan создает план
func (m *TrainingPlanManager) CreatePlan(ctx context.Context, p models.TrainingPlan) *syncer.Outcome[models.TrainingPlan] {
	if p.StartsAt.IsZero() {
		p.StartsAt = aggregate.StartOfDay(m.clock.Now())
	}
	return m.Add(ctx, p)
}

// RenamePlan меняет название плана
func (m *TrainingPlanManager) RenamePlan(ctx context.Context, id entity.ID, title string) *syncer.Outcome[models.TrainingPlan] {
	return m.Modify(ctx, id, func(p models.TrainingPlan) models.TrainingPlan {
		p.Title = title
		return p
	})
}

// AssignStudent назначает план ученику; пустой studentID снимает назначение
func (m *TrainingPlanManager) AssignStudent(ctx context.Context, id entity.ID, studentID string) *syncer.Outcome[models.TrainingPlan] {
	return m.Modify(ctx, id, func(p models.TrainingPlan) models.TrainingPlan {
		p.StudentID = studentID
		return p
	})
}

// DeletePlan удаляет план
func (m *TrainingPlanManager) DeletePlan(ctx context.Context, id entity.ID) *syncer.Outcome[models.TrainingPlan] {
	return m.Delete(ctx, id)
}

// PlansForStudent планы, назначенные ученику
func (m *TrainingPlanManager) PlansForStudent(studentID string) []models.TrainingPlan {
	return aggregate.Filter(m.Values(), func(p models.TrainingPlan) bool { return p.StudentID == studentID })
}

// MealPlanManager дневные планы питания
type MealPlanManager struct {
	*Manager[models.MealPlan]
}

// NewMealPlanManager создает менеджер планов питания
func NewMealPlanManager(client RecordClient, cfg Config) *MealPlanManager {
	return &MealPlanManager{
		Manager: New(models.CollectionMealPlans, client, validation.ValidateMealPlan, cfg),
	}
}

func planDay(p models.MealPlan) time.Time { return p.Day }

// CreateMealPlan создает план питания
func (m *MealPlanManager) CreateMealPlan(ctx context.Context, p models.MealPlan) *syncer.Outcome[models.MealPlan] {
	if p.Day.IsZero() {
		p.Day = aggregate.StartOfDay(m.clock.Now())
	}
	return m.Add(ctx, p)
}

// RenameMealPlan меняет название плана питания
func (m *MealPlanManager) RenameMealPlan(ctx context.Context, id entity.ID, name string) *syncer.Outcome[models.MealPlan] {
	return m.Modify(ctx, id, func(p models.MealPlan) models.MealPlan {
		p.Name = name
		return p
	})
}

// SetCalories меняет целевую калорийность плана
func (m *MealPlanManager) SetCalories(ctx context.Context, id entity.ID, calories float64) *syncer.Outcome[models.MealPlan] {
	return m.Modify(ctx, id, func(p models.MealPlan) models.MealPlan {
		p.Calories = calories
		return p
	})
}

// DeleteMealPlan удаляет план питания
func (m *MealPlanManager) DeleteMealPlan(ctx context.Context, id entity.ID) *syncer.Outcome[models.MealPlan] {
	return m.Delete(ctx, id)
}

// PlannedCalories целевая калорийность на день по всем планам этого дня
func (m *MealPlanManager) PlannedCalories(day time.Time) float64 {
	plans := entries(m.Manager, planDay, aggregate.SameDay(day))
	return aggregate.Sum(plans, func(p models.MealPlan) float64 { return p.Calories })
}
