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

// FoodManager дневник питания клиента
type FoodManager struct {
	*Manager[models.FoodEntry]
}

// NewFoodManager создает менеджер дневника питания
func NewFoodManager(client RecordClient, cfg Config) *FoodManager {
	return &FoodManager{
		Manager: New(models.CollectionFoodEntries, client, validation.ValidateFoodEntry, cfg),
	}
}

func consumedAt(f models.FoodEntry) time.Time { return f.ConsumedAt }

// AddEntry добавляет запись; без времени приема пищи используется текущее
func (m *FoodManager) AddEntry(ctx context.Context, entry models.FoodEntry) *syncer.Outcome[models.FoodEntry] {
	if entry.ConsumedAt.IsZero() {
		entry.ConsumedAt = m.clock.Now()
	}
	return m.Add(ctx, entry)
}

// UpdateEntry заменяет запись
func (m *FoodManager) UpdateEntry(ctx context.Context, id entity.ID, entry models.FoodEntry) *syncer.Outcome[models.FoodEntry] {
	return m.Replace(ctx, id, entry)
}

// DeleteEntry удаляет запись
func (m *FoodManager) DeleteEntry(ctx context.Context, id entity.ID) *syncer.Outcome[models.FoodEntry] {
	return m.Delete(ctx, id)
}

// TodayEntries записи за сегодня, включая неподтвержденные
func (m *FoodManager) TodayEntries() []models.FoodEntry {
	return entries(m.Manager, consumedAt, aggregate.Today(m.clock))
}

// WeekEntries записи за текущую неделю
func (m *FoodManager) WeekEntries() []models.FoodEntry {
	return entries(m.Manager, consumedAt, aggregate.ThisWeek(m.clock))
}

// TodayCalories калорийность за сегодня
func (m *FoodManager) TodayCalories() float64 {
	return aggregate.Sum(m.TodayEntries(), func(f models.FoodEntry) float64 { return f.Calories })
}

// TodayMacros макронутриенты за сегодня
func (m *FoodManager) TodayMacros() models.Macros {
	var total models.Macros
	for _, f := range m.TodayEntries() {
		total = total.Add(f.Macros)
	}
	return total
}

// ByMeal сегодняшние записи, сгруппированные по приему пищи
func (m *FoodManager) ByMeal() []aggregate.Group[models.MealType, models.FoodEntry] {
	return aggregate.GroupBy(m.TodayEntries(), func(f models.FoodEntry) models.MealType { return f.MealType })
}

// CalorieProgress прогресс к цели по калориям; значение больше 1 означает перебор
func (m *FoodManager) CalorieProgress(goal float64) float64 {
	return aggregate.Ratio(m.TodayCalories(), goal, aggregate.Unbounded)
}
