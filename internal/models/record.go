package models

import (
	"encoding/json"
	"time"
)

// Collection константы для коллекций записей
const (
	CollectionFoodEntries   = "food_entries"
	CollectionWorkouts      = "workouts"
	CollectionTrainingPlans = "training_plans"
	CollectionMealPlans     = "meal_plans"
	CollectionRoutes        = "routes"
	CollectionChatMessages  = "chat_messages"
	CollectionContent       = "content"
	CollectionBodyStats     = "body_stats"
)

// Collections возвращает все известные коллекции
func Collections() []string {
	return []string{
		CollectionFoodEntries,
		CollectionWorkouts,
		CollectionTrainingPlans,
		CollectionMealPlans,
		CollectionRoutes,
		CollectionChatMessages,
		CollectionContent,
		CollectionBodyStats,
	}
}

// IsKnownCollection проверяет, что коллекция поддерживается сервером
func IsKnownCollection(name string) bool {
	for _, c := range Collections() {
		if c == name {
			return true
		}
	}
	return false
}

// Record представляет запись пользователя на сервере.
// Payload хранится как непрозрачный JSON; сервер знает только коллекцию и версию.
type Record struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ID         string          `json:"id"`         // ID серверный идентификатор записи (UUID)
	UserID     string          `json:"user_id"`    // UserID идентификатор владельца записи
	Collection string          `json:"collection"` // Collection коллекция: "food_entries", "workouts", ...
	Payload    json.RawMessage `json:"payload"`
	Version    int64           `json:"version"` // Version монотонно растущая версия записи
}

// Clone создает глубокую копию записи
func (r *Record) Clone() *Record {
	payload := make(json.RawMessage, len(r.Payload))
	copy(payload, r.Payload)

	return &Record{
		ID:         r.ID,
		UserID:     r.UserID,
		Collection: r.Collection,
		Payload:    payload,
		Version:    r.Version,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
