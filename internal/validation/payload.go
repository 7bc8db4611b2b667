package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"

	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/pkg/api"
)

const (
	maxNameLen     = 200
	maxTextLen     = 10000
	maxCalories    = 20000 // ккал за одну запись
	maxDurationMin = 24 * 60
)

func nonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateFoodEntry проверяет запись дневника питания
func ValidateFoodEntry(f models.FoodEntry) error {
	var c checker
	c.check(nonEmpty(f.Name), "name", "name is required")
	c.check(len(f.Name) <= maxNameLen, "name", fmt.Sprintf("name must not exceed %d characters", maxNameLen))
	c.check(!f.ConsumedAt.IsZero(), "consumed_at", "consumed_at is required")
	c.check(finite(f.Calories) && f.Calories >= 0, "calories", "calories must not be negative")
	c.check(f.Calories <= maxCalories, "calories", fmt.Sprintf("calories must not exceed %d", maxCalories))
	c.check(f.Macros.ProteinG >= 0 && f.Macros.CarbsG >= 0 && f.Macros.FatG >= 0, "macros", "macros must not be negative")
	switch f.MealType {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
	default:
		c.check(false, "meal_type", "meal_type must be breakfast, lunch, dinner or snack")
	}
	return c.err()
}

// ValidateWorkout проверяет тренировку
func ValidateWorkout(w models.Workout) error {
	var c checker
	c.check(nonEmpty(w.Title), "title", "title is required")
	c.check(!w.PerformedAt.IsZero(), "performed_at", "performed_at is required")
	c.check(w.DurationMinutes >= 0 && w.DurationMinutes <= maxDurationMin, "duration_minutes", "duration_minutes must be between 0 and 1440")
	c.check(finite(w.CaloriesBurned) && w.CaloriesBurned >= 0, "calories_burned", "calories_burned must not be negative")
	for i, e := range w.Exercises {
		c.check(nonEmpty(e.Name), fmt.Sprintf("exercises[%d].name", i), "exercise name is required")
		c.check(e.Sets >= 0 && e.Reps >= 0, fmt.Sprintf("exercises[%d]", i), "sets and reps must not be negative")
	}
	return c.err()
}

// ValidateRoute проверяет маршрут
func ValidateRoute(r models.Route) error {
	var c checker
	c.check(nonEmpty(r.Name), "name", "name is required")
	c.check(!r.RecordedAt.IsZero(), "recorded_at", "recorded_at is required")
	c.check(finite(r.DistanceKm) && r.DistanceKm >= 0, "distance_km", "distance_km must not be negative")
	c.check(r.DurationMinutes >= 0, "duration_minutes", "duration_minutes must not be negative")
	for i, p := range r.Points {
		ok := p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
		c.check(ok, fmt.Sprintf("points[%d]", i), "coordinates out of range")
	}
	return c.err()
}

// ValidateTrainingPlan проверяет план тренировок
func ValidateTrainingPlan(p models.TrainingPlan) error {
	var c checker
	c.check(nonEmpty(p.Title), "title", "title is required")
	c.check(p.Weeks >= 1 && p.Weeks <= 52, "weeks", "weeks must be between 1 and 52")
	for i, s := range p.Sessions {
		c.check(s.Weekday >= 0 && s.Weekday <= 6, fmt.Sprintf("sessions[%d].weekday", i), "weekday must be between 0 and 6")
	}
	return c.err()
}

// ValidateMealPlan проверяет план питания
func ValidateMealPlan(m models.MealPlan) error {
	var c checker
	c.check(nonEmpty(m.Name), "name", "name is required")
	c.check(!m.Day.IsZero(), "day", "day is required")
	c.check(finite(m.Calories) && m.Calories >= 0, "calories", "calories must not be negative")
	for i, meal := range m.Meals {
		c.check(meal.Calories >= 0, fmt.Sprintf("meals[%d].calories", i), "calories must not be negative")
	}
	return c.err()
}

// ValidateChatMessage проверяет сообщение чата
func ValidateChatMessage(m models.ChatMessage) error {
	var c checker
	c.check(nonEmpty(m.ConversationID), "conversation_id", "conversation_id is required")
	c.check(nonEmpty(m.Text), "text", "text is required")
	c.check(len(m.Text) <= maxTextLen, "text", fmt.Sprintf("text must not exceed %d characters", maxTextLen))
	return c.err()
}

// ValidateContentItem проверяет материал тренера
func ValidateContentItem(item models.ContentItem) error {
	var c checker
	c.check(nonEmpty(item.Title), "title", "title is required")
	switch item.Kind {
	case models.ContentArticle, models.ContentVideo, models.ContentRecipe:
	default:
		c.check(false, "kind", "kind must be article, video or recipe")
	}
	return c.err()
}

// ValidateBodyStat проверяет замер
func ValidateBodyStat(b models.BodyStat) error {
	var c checker
	c.check(!b.MeasuredAt.IsZero(), "measured_at", "measured_at is required")
	c.check(finite(b.WeightKg) && b.WeightKg >= 0, "weight_kg", "weight_kg must not be negative")
	c.check(finite(b.WaterMl) && b.WaterMl >= 0, "water_ml", "water_ml must not be negative")
	c.check(b.Steps >= 0, "steps", "steps must not be negative")
	if b.BodyFatPct != nil {
		c.check(*b.BodyFatPct >= 0 && *b.BodyFatPct <= 100, "body_fat_pct", "body_fat_pct must be between 0 and 100")
	}
	return c.err()
}

// ValidatePayload декодирует payload коллекции и проверяет его
func ValidatePayload(collection string, raw []byte) error {
	switch collection {
	case models.CollectionFoodEntries:
		return decodeAndValidate(raw, ValidateFoodEntry)
	case models.CollectionWorkouts:
		return decodeAndValidate(raw, ValidateWorkout)
	case models.CollectionRoutes:
		return decodeAndValidate(raw, ValidateRoute)
	case models.CollectionTrainingPlans:
		return decodeAndValidate(raw, ValidateTrainingPlan)
	case models.CollectionMealPlans:
		return decodeAndValidate(raw, ValidateMealPlan)
	case models.CollectionChatMessages:
		return decodeAndValidate(raw, ValidateChatMessage)
	case models.CollectionContent:
		return decodeAndValidate(raw, ValidateContentItem)
	case models.CollectionBodyStats:
		return decodeAndValidate(raw, ValidateBodyStat)
	default:
		return &Error{Fields: []api.FieldError{{Field: "collection", Message: "unknown collection " + collection}}}
	}
}

func decodeAndValidate[T any](raw []byte, validate func(T) error) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return &Error{Fields: []api.FieldError{{Field: "payload", Message: "invalid json: " + err.Error()}}}
	}
	return validate(v)
}
