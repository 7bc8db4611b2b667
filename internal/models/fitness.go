package models

import "time"

// MealType категория приема пищи
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Macros содержит макронутриенты в граммах
type Macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Add возвращает сумму макронутриентов
func (m Macros) Add(other Macros) Macros {
	return Macros{
		ProteinG: m.ProteinG + other.ProteinG,
		CarbsG:   m.CarbsG + other.CarbsG,
		FatG:     m.FatG + other.FatG,
	}
}

// FoodEntry представляет запись в дневнике питания клиента.
type FoodEntry struct {
	ConsumedAt time.Time `json:"consumed_at"` // ConsumedAt время приема пищи
	Name       string    `json:"name"`        // Name название продукта или блюда (например, "Apple")
	MealType   MealType  `json:"meal_type"`   // MealType категория приема пищи
	Notes      string    `json:"notes,omitempty"`
	Macros     Macros    `json:"macros"`
	Calories   float64   `json:"calories"` // Calories калорийность порции в ккал
}

// Exercise одно упражнение внутри тренировки
type Exercise struct {
	Name     string  `json:"name"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

// Workout представляет выполненную тренировку.
type Workout struct {
	PerformedAt     time.Time  `json:"performed_at"`
	Title           string     `json:"title"`
	Kind            string     `json:"kind"` // Kind тип тренировки: "strength", "cardio", "mobility"
	Exercises       []Exercise `json:"exercises,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	CaloriesBurned  float64    `json:"calories_burned"`
}

// GeoPoint точка GPS трека
type GeoPoint struct {
	RecordedAt time.Time `json:"recorded_at"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
}

// Route представляет записанный маршрут пробежки или прогулки.
type Route struct {
	RecordedAt      time.Time  `json:"recorded_at"`
	Name            string     `json:"name"`
	Points          []GeoPoint `json:"points,omitempty"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes int        `json:"duration_minutes"`
}

// PaceMinPerKm возвращает темп в минутах на километр, 0 если дистанция неизвестна
func (r Route) PaceMinPerKm() float64 {
	if r.DistanceKm <= 0 {
		return 0
	}
	return float64(r.DurationMinutes) / r.DistanceKm
}

// PlanSession тренировочная сессия внутри плана
type PlanSession struct {
	Title     string     `json:"title"`
	Exercises []Exercise `json:"exercises,omitempty"`
	Weekday   int        `json:"weekday"` // Weekday 0 = воскресенье, как в time.Weekday
}

// TrainingPlan представляет план тренировок, который тренер назначает ученику.
type TrainingPlan struct {
	StartsAt  time.Time     `json:"starts_at"`
	Title     string        `json:"title"`
	TrainerID string        `json:"trainer_id"`
	StudentID string        `json:"student_id,omitempty"` // StudentID пустой, если план еще не назначен
	Sessions  []PlanSession `json:"sessions,omitempty"`
	Weeks     int           `json:"weeks"`
}

// PlannedMeal прием пищи внутри плана питания
type PlannedMeal struct {
	Name     string   `json:"name"`
	MealType MealType `json:"meal_type"`
	Calories float64  `json:"calories"`
}

// MealPlan представляет план питания на день.
type MealPlan struct {
	Day       time.Time     `json:"day"`
	Name      string        `json:"name"`
	StudentID string        `json:"student_id,omitempty"`
	Meals     []PlannedMeal `json:"meals,omitempty"`
	Calories  float64       `json:"calories"` // Calories целевая калорийность дня
}

// ChatMessage сообщение в переписке тренера и ученика
type ChatMessage struct {
	SentAt         time.Time `json:"sent_at"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text"`
}

// ContentKind тип контента тренера
type ContentKind string

const (
	ContentArticle ContentKind = "article"
	ContentVideo   ContentKind = "video"
	ContentRecipe  ContentKind = "recipe"
)

// ContentItem материал, опубликованный тренером для учеников.
type ContentItem struct {
	PublishedAt time.Time   `json:"published_at"`
	Title       string      `json:"title"`
	Kind        ContentKind `json:"kind"`
	Body        string      `json:"body"`
	Tags        []string    `json:"tags,omitempty"`
}

// BodyStat замер показателей тела и активности за день.
type BodyStat struct {
	MeasuredAt time.Time `json:"measured_at"`
	BodyFatPct *float64  `json:"body_fat_pct,omitempty"`
	WeightKg   float64   `json:"weight_kg"`
	WaterMl    float64   `json:"water_ml"`
	Steps      int       `json:"steps"`
}

// Goals дневные цели клиента
type Goals struct {
	Calories float64 `json:"calories"`
	WaterMl  float64 `json:"water_ml"`
	Steps    int     `json:"steps"`
}
