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

// activityPolicy прогресс по воде и шагам ограничен 150% цели
var activityPolicy = aggregate.Clamped(0, 1.5)

// BodyStatManager замеры тела и активности
type BodyStatManager struct {
	*Manager[models.BodyStat]
}

// NewBodyStatManager создает менеджер замеров
func NewBodyStatManager(client RecordClient, cfg Config) *BodyStatManager {
	return &BodyStatManager{
		Manager: New(models.CollectionBodyStats, client, validation.ValidateBodyStat, cfg),
	}
}

func measuredAt(b models.BodyStat) time.Time { return b.MeasuredAt }

// LogStat сохраняет замер
func (m *BodyStatManager) LogStat(ctx context.Context, stat models.BodyStat) *syncer.Outcome[models.BodyStat] {
	if stat.MeasuredAt.IsZero() {
		stat.MeasuredAt = m.clock.Now()
	}
	return m.Add(ctx, stat)
}

// DeleteStat удаляет замер
func (m *BodyStatManager) DeleteStat(ctx context.Context, id entity.ID) *syncer.Outcome[models.BodyStat] {
	return m.Delete(ctx, id)
}

// Latest последний по времени замер
func (m *BodyStatManager) Latest() (models.BodyStat, bool) {
	return aggregate.Max(m.Values(), func(b models.BodyStat) int64 { return b.MeasuredAt.UnixNano() })
}

// TodayWater выпитая сегодня вода в мл
func (m *BodyStatManager) TodayWater() float64 {
	today := entries(m.Manager, measuredAt, aggregate.Today(m.clock))
	return aggregate.Sum(today, func(b models.BodyStat) float64 { return b.WaterMl })
}

// TodaySteps шаги за сегодня
func (m *BodyStatManager) TodaySteps() int {
	today := entries(m.Manager, measuredAt, aggregate.Today(m.clock))
	return aggregate.Sum(today, func(b models.BodyStat) int { return b.Steps })
}

// WaterProgress прогресс к цели по воде, ограничен [0, 1.5]
func (m *BodyStatManager) WaterProgress(goalMl float64) float64 {
	return aggregate.Ratio(m.TodayWater(), goalMl, activityPolicy)
}

// StepProgress прогресс к цели по шагам, ограничен [0, 1.5]
func (m *BodyStatManager) StepProgress(goal int) float64 {
	return aggregate.Ratio(float64(m.TodaySteps()), float64(goal), activityPolicy)
}
