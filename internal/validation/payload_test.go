package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/models"
)

var at = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func TestValidateFoodEntry(t *testing.T) {
	tests := []struct {
		name       string
		entry      models.FoodEntry
		wantFields []string
	}{
		{
			name:  "valid",
			entry: models.FoodEntry{Name: "Oatmeal", MealType: models.MealBreakfast, ConsumedAt: at, Calories: 320},
		},
		{
			name:       "empty name and negative calories",
			entry:      models.FoodEntry{Name: "  ", MealType: models.MealLunch, ConsumedAt: at, Calories: -5},
			wantFields: []string{"name", "calories"},
		},
		{
			name:       "unknown meal type without time",
			entry:      models.FoodEntry{Name: "Tea", MealType: "brunch"},
			wantFields: []string{"consumed_at", "meal_type"},
		},
		{
			name:       "negative macros",
			entry:      models.FoodEntry{Name: "Bar", MealType: models.MealSnack, ConsumedAt: at, Macros: models.Macros{FatG: -1}},
			wantFields: []string{"macros"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFoodEntry(tt.entry)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *Error
			require.ErrorAs(t, err, &verr)
			fields := verr.FailureFields()
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
			assert.Len(t, fields, len(tt.wantFields))
		})
	}
}

func TestValidateOtherPayloads(t *testing.T) {
	fat := 120.0
	tests := []struct {
		err   error
		name  string
		field string
	}{
		{name: "workout ok", err: ValidateWorkout(models.Workout{Title: "Legs", PerformedAt: at, DurationMinutes: 60})},
		{name: "workout too long", err: ValidateWorkout(models.Workout{Title: "Legs", PerformedAt: at, DurationMinutes: 2000}), field: "duration_minutes"},
		{name: "workout exercise name", err: ValidateWorkout(models.Workout{Title: "Legs", PerformedAt: at, Exercises: []models.Exercise{{}}}), field: "exercises[0].name"},
		{name: "route ok", err: ValidateRoute(models.Route{Name: "Park", RecordedAt: at, DistanceKm: 5})},
		{name: "route coordinates", err: ValidateRoute(models.Route{Name: "Park", RecordedAt: at, Points: []models.GeoPoint{{Lat: 91}}}), field: "points[0]"},
		{name: "plan weeks", err: ValidateTrainingPlan(models.TrainingPlan{Title: "Base", Weeks: 0}), field: "weeks"},
		{name: "plan weekday", err: ValidateTrainingPlan(models.TrainingPlan{Title: "Base", Weeks: 4, Sessions: []models.PlanSession{{Weekday: 7}}}), field: "sessions[0].weekday"},
		{name: "meal plan ok", err: ValidateMealPlan(models.MealPlan{Name: "Cut", Day: at, Calories: 1800})},
		{name: "meal plan day", err: ValidateMealPlan(models.MealPlan{Name: "Cut"}), field: "day"},
		{name: "chat text", err: ValidateChatMessage(models.ChatMessage{ConversationID: "c1"}), field: "text"},
		{name: "content kind", err: ValidateContentItem(models.ContentItem{Title: "Guide", Kind: "podcast"}), field: "kind"},
		{name: "body stat fat", err: ValidateBodyStat(models.BodyStat{MeasuredAt: at, BodyFatPct: &fat}), field: "body_fat_pct"},
		{name: "body stat ok", err: ValidateBodyStat(models.BodyStat{MeasuredAt: at, Steps: 9000})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field == "" {
				assert.NoError(t, tt.err)
				return
			}
			var verr *Error
			require.ErrorAs(t, tt.err, &verr)
			assert.Contains(t, verr.FailureFields(), tt.field)
		})
	}
}

func TestValidatePayload(t *testing.T) {
	err := ValidatePayload(models.CollectionFoodEntries, []byte(`{"name":"Apple","meal_type":"snack","consumed_at":"2026-10-14T08:00:00Z","calories":95}`))
	require.NoError(t, err)

	err = ValidatePayload(models.CollectionFoodEntries, []byte(`{"name":""}`))
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FailureFields(), "name")

	err = ValidatePayload(models.CollectionWorkouts, []byte(`not json`))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FailureFields(), "payload")

	err = ValidatePayload("unknown", []byte(`{}`))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.FailureFields(), "collection")
	assert.Contains(t, err.Error(), "validation failed")
}
