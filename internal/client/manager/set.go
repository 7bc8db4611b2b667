package manager

import (
	"context"
)

// Collection общий интерфейс менеджеров для сессии
type Collection interface {
	Collection() string
	Len() int
	Load(ctx context.Context) error
	Pending() int
	Drain(ctx context.Context) error
	Reset()
}

// Set все доменные менеджеры одной сессии
type Set struct {
	Food      *FoodManager
	Workouts  *WorkoutManager
	Routes    *RouteManager
	Plans     *TrainingPlanManager
	MealPlans *MealPlanManager
	Chat      *ChatManager
	Content   *ContentManager
	Body      *BodyStatManager
}

// NewSet создает менеджеры всех коллекций поверх одного клиента
func NewSet(client RecordClient, cfg Config) *Set {
	cfg = cfg.withDefaults()
	return &Set{
		Food:      NewFoodManager(client, cfg),
		Workouts:  NewWorkoutManager(client, cfg),
		Routes:    NewRouteManager(client, cfg),
		Plans:     NewTrainingPlanManager(client, cfg),
		MealPlans: NewMealPlanManager(client, cfg),
		Chat:      NewChatManager(client, cfg),
		Content:   NewContentManager(client, cfg),
		Body:      NewBodyStatManager(client, cfg),
	}
}

// All возвращает менеджеры в фиксированном порядке
func (s *Set) All() []Collection {
	return []Collection{s.Food, s.Workouts, s.Routes, s.Plans, s.MealPlans, s.Chat, s.Content, s.Body}
}

// Pending суммарное количество незавершенных мутаций
func (s *Set) Pending() int {
	n := 0
	for _, c := range s.All() {
		n += c.Pending()
	}
	return n
}

// Drain ждет завершения мутаций во всех коллекциях
func (s *Set) Drain(ctx context.Context) error {
	for _, c := range s.All() {
		if err := c.Drain(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Reset очищает все коллекции
func (s *Set) Reset() {
	for _, c := range s.All() {
		c.Reset()
	}
}
