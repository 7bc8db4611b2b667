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

// RouteManager записанные маршруты пробежек и прогулок
type RouteManager struct {
	*Manager[models.Route]
}

// NewRouteManager создает менеджер маршрутов
func NewRouteManager(client RecordClient, cfg Config) *RouteManager {
	return &RouteManager{
		Manager: New(models.CollectionRoutes, client, validation.ValidateRoute, cfg),
	}
}

func recordedAt(r models.Route) time.Time { return r.RecordedAt }

// RecordRoute сохраняет маршрут
func (m *RouteManager) RecordRoute(ctx context.Context, r models.Route) *syncer.Outcome[models.Route] {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = m.clock.Now()
	}
	return m.Add(ctx, r)
}

// DeleteRoute удаляет маршрут
func (m *RouteManager) DeleteRoute(ctx context.Context, id entity.ID) *syncer.Outcome[models.Route] {
	return m.Delete(ctx, id)
}

// WeekRoutes маршруты текущей недели
func (m *RouteManager) WeekRoutes() []models.Route {
	return entries(m.Manager, recordedAt, aggregate.ThisWeek(m.clock))
}

// WeekDistanceKm дистанция за неделю
func (m *RouteManager) WeekDistanceKm() float64 {
	return aggregate.Sum(m.WeekRoutes(), func(r models.Route) float64 { return r.DistanceKm })
}

// AveragePace средний темп за неделю в минутах на км, взвешенный по дистанции
func (m *RouteManager) AveragePace() float64 {
	routes := m.WeekRoutes()
	km := aggregate.Sum(routes, func(r models.Route) float64 { return r.DistanceKm })
	if km <= 0 {
		return 0
	}
	minutes := aggregate.Sum(routes, func(r models.Route) int { return r.DurationMinutes })
	return float64(minutes) / km
}
