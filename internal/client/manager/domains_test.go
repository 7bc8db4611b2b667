package manager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/models"
)

func TestFoodManager_Totals(t *testing.T) {
	f, client := newFakeRecords()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	f.seed(t, models.CollectionFoodEntries,
		models.FoodEntry{Name: "Eggs", MealType: models.MealBreakfast, ConsumedAt: now.Add(-4 * time.Hour), Calories: 300, Macros: models.Macros{ProteinG: 20, FatG: 15}},
		models.FoodEntry{Name: "Soup", MealType: models.MealLunch, ConsumedAt: now, Calories: 450, Macros: models.Macros{ProteinG: 10, CarbsG: 40}},
		models.FoodEntry{Name: "Toast", MealType: models.MealBreakfast, ConsumedAt: now.Add(-3 * time.Hour), Calories: 150, Macros: models.Macros{CarbsG: 25}},
		models.FoodEntry{Name: "Pizza", MealType: models.MealDinner, ConsumedAt: yesterday, Calories: 900},
		models.FoodEntry{Name: "Cake", MealType: models.MealSnack, ConsumedAt: lastWeek, Calories: 500},
	)
	m := NewFoodManager(client, testConfig())
	require.NoError(t, m.Load(context.Background()))

	assert.Len(t, m.TodayEntries(), 3)
	assert.Len(t, m.WeekEntries(), 4)
	assert.Equal(t, 900.0, m.TodayCalories())
	assert.Equal(t, models.Macros{ProteinG: 30, CarbsG: 65, FatG: 15}, m.TodayMacros())
	assert.InDelta(t, 0.45, m.CalorieProgress(2000), 1e-9)
	assert.InDelta(t, 1.8, m.CalorieProgress(500), 1e-9, "calorie progress is not clamped")
	assert.Equal(t, 0.0, m.CalorieProgress(0))

	groups := m.ByMeal()
	require.Len(t, groups, 2)
	assert.Equal(t, models.MealBreakfast, groups[0].Key)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, models.MealLunch, groups[1].Key)
}

func TestFoodManager_DeleteEntry(t *testing.T) {
	f, client := newFakeRecords()
	f.seed(t, models.CollectionFoodEntries, models.FoodEntry{Name: "Eggs", MealType: models.MealBreakfast, ConsumedAt: now, Calories: 300})
	m := NewFoodManager(client, testConfig())
	require.NoError(t, m.Load(context.Background()))

	out := m.DeleteEntry(context.Background(), entity.Confirmed("srv-1"))
	assert.Equal(t, 0.0, m.TodayCalories(), "delete is applied optimistically")

	_, err := wait(t, out)
	require.NoError(t, err)
	require.Len(t, client.DeleteRecordCalls(), 1)
	assert.Equal(t, "srv-1", client.DeleteRecordCalls()[0].ID)
}

func TestWorkoutManager_WeekTotals(t *testing.T) {
	f, client := newFakeRecords()
	monday := time.Date(2026, 10, 12, 7, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 10, 11, 18, 0, 0, 0, time.UTC)
	f.seed(t, models.CollectionWorkouts,
		models.Workout{Title: "Legs", PerformedAt: monday, DurationMinutes: 50, CaloriesBurned: 400},
		models.Workout{Title: "Old", PerformedAt: sunday, DurationMinutes: 90, CaloriesBurned: 800},
	)
	m := NewWorkoutManager(client, testConfig())
	require.NoError(t, m.Load(context.Background()))

	out := m.LogWorkout(context.Background(), models.Workout{Title: "Run", DurationMinutes: 30, CaloriesBurned: 250.5})
	_, err := wait(t, out)
	require.NoError(t, err)

	assert.Len(t, m.WeekWorkouts(), 2)
	assert.Equal(t, 80, m.WeekMinutes())
	assert.InDelta(t, 650.5, m.WeekCaloriesBurned(), 1e-9)

	_, err = wait(t, m.DeleteWorkout(context.Background(), out.ID()))
	require.NoError(t, err)
	assert.Equal(t, 50, m.WeekMinutes())
}

func TestRouteManager_Pace(t *testing.T) {
	f, client := newFakeRecords()
	m := NewRouteManager(client, testConfig())
	assert.Equal(t, 0.0, m.AveragePace(), "no distance yields zero pace")

	f.seed(t, models.CollectionRoutes,
		models.Route{Name: "Park", RecordedAt: now, DistanceKm: 5, DurationMinutes: 30},
		models.Route{Name: "River", RecordedAt: now.AddDate(0, 0, -1), DistanceKm: 10, DurationMinutes: 45},
		models.Route{Name: "Old", RecordedAt: now.AddDate(0, 0, -10), DistanceKm: 42, DurationMinutes: 240},
	)
	require.NoError(t, m.Load(context.Background()))

	assert.InDelta(t, 15.0, m.WeekDistanceKm(), 1e-9)
	assert.InDelta(t, 5.0, m.AveragePace(), 1e-9)

	_, err := wait(t, m.RecordRoute(context.Background(), models.Route{Name: "Bad", Points: []models.GeoPoint{{Lat: 120}}}))
	require.Error(t, err)
	assert.Len(t, m.Snapshot(), 3)
}

func TestTrainingPlanManager(t *testing.T) {
	_, client := newFakeRecords()
	m := NewTrainingPlanManager(client, testConfig())
	ctx := context.Background()

	created := m.CreatePlan(ctx, models.TrainingPlan{Title: "Base", TrainerID: "coach", Weeks: 4})
	renamed := m.RenamePlan(ctx, created.ID(), "Base 2")
	assigned := m.AssignStudent(ctx, created.ID(), "alice")

	_, err := wait(t, created)
	require.NoError(t, err)
	_, err = wait(t, renamed)
	require.NoError(t, err)
	plan, err := wait(t, assigned)
	require.NoError(t, err)

	assert.Equal(t, entity.Confirmed("srv-1"), plan.ID)
	assert.Equal(t, "Base 2", plan.Payload.Title)
	assert.Equal(t, "alice", plan.Payload.StudentID)
	assert.Equal(t, now.Truncate(24*time.Hour), plan.Payload.StartsAt)
	assert.Len(t, m.PlansForStudent("alice"), 1)
	assert.Empty(t, m.PlansForStudent("bob"))

	for _, call := range client.UpdateRecordCalls() {
		assert.Equal(t, "srv-1", call.ID, "queued updates use the server id")
	}

	_, err = wait(t, m.DeletePlan(ctx, created.ID()))
	require.NoError(t, err)
	assert.Empty(t, m.Values())
}

func TestMealPlanManager(t *testing.T) {
	f, client := newFakeRecords()
	tomorrow := now.AddDate(0, 0, 1)
	f.seed(t, models.CollectionMealPlans,
		models.MealPlan{Name: "Cut", Day: now, Calories: 1800},
		models.MealPlan{Name: "Snacks", Day: now, Calories: 200},
		models.MealPlan{Name: "Rest", Day: tomorrow, Calories: 2200},
	)
	m := NewMealPlanManager(client, testConfig())
	require.NoError(t, m.Load(context.Background()))

	assert.Equal(t, 2000.0, m.PlannedCalories(now))
	assert.Equal(t, 2200.0, m.PlannedCalories(tomorrow))

	_, err := wait(t, m.SetCalories(context.Background(), entity.Confirmed("srv-1"), 1500))
	require.NoError(t, err)
	assert.Equal(t, 1700.0, m.PlannedCalories(now))

	_, err = wait(t, m.SetCalories(context.Background(), entity.Confirmed("srv-1"), -10))
	require.Error(t, err)
	assert.Equal(t, 1700.0, m.PlannedCalories(now))

	_, err = wait(t, m.RenameMealPlan(context.Background(), entity.Confirmed("srv-2"), "Treats"))
	require.NoError(t, err)
	got, ok := m.Get(entity.Confirmed("srv-2"))
	require.True(t, ok)
	assert.Equal(t, "Treats", got.Payload.Name)

	out := m.CreateMealPlan(context.Background(), models.MealPlan{Name: "Bulk", Calories: 3000})
	_, err = wait(t, out)
	require.NoError(t, err)
	assert.Equal(t, 4700.0, m.PlannedCalories(now))

	_, err = wait(t, m.DeleteMealPlan(context.Background(), out.ID()))
	require.NoError(t, err)
	assert.Equal(t, 1700.0, m.PlannedCalories(now))
}

func TestChatManager_Conversation(t *testing.T) {
	f, client := newFakeRecords()
	f.seed(t, models.CollectionChatMessages,
		models.ChatMessage{ConversationID: "c1", SenderID: "coach", Text: "second", SentAt: now.Add(-time.Minute)},
		models.ChatMessage{ConversationID: "c2", SenderID: "bob", Text: "other", SentAt: now.Add(-time.Hour)},
		models.ChatMessage{ConversationID: "c1", SenderID: "alice", Text: "first", SentAt: now.Add(-time.Hour)},
	)
	m := NewChatManager(client, testConfig())
	require.NoError(t, m.Load(context.Background()))

	sent := m.Send(context.Background(), models.ChatMessage{ConversationID: "c1", SenderID: "alice", Text: "third"})

	conv := m.Conversation("c1")
	require.Len(t, conv, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{conv[0].Text, conv[1].Text, conv[2].Text})

	groups := m.ByConversation()
	require.Len(t, groups, 2)
	assert.Equal(t, "c1", groups[0].Key)
	assert.Len(t, groups[0].Items, 3)

	_, err := wait(t, sent)
	require.NoError(t, err)
	_, err = wait(t, m.DeleteMessage(context.Background(), sent.ID()))
	require.NoError(t, err)
	assert.Len(t, m.Conversation("c1"), 2)

	_, err = wait(t, m.Send(context.Background(), models.ChatMessage{ConversationID: "c1", Text: "   "}))
	require.Error(t, err)
}

func TestContentManager(t *testing.T) {
	_, client := newFakeRecords()
	m := NewContentManager(client, testConfig())
	ctx := context.Background()

	article := m.Publish(ctx, models.ContentItem{Title: "Sleep", Kind: models.ContentArticle, Body: "..."})
	video := m.Publish(ctx, models.ContentItem{Title: "Squat", Kind: models.ContentVideo})
	_, err := wait(t, article)
	require.NoError(t, err)
	_, err = wait(t, video)
	require.NoError(t, err)

	assert.Len(t, m.ByKind(models.ContentArticle), 1)
	assert.Len(t, m.ByKind(models.ContentVideo), 1)
	assert.Empty(t, m.ByKind(models.ContentRecipe))

	edited, err := wait(t, m.Edit(ctx, video.ID(), models.ContentItem{Title: "Squat", Kind: models.ContentRecipe, PublishedAt: now}))
	require.NoError(t, err)
	assert.Equal(t, models.ContentRecipe, edited.Payload.Kind)
	assert.Empty(t, m.ByKind(models.ContentVideo))

	_, err = wait(t, m.Unpublish(ctx, article.ID()))
	require.NoError(t, err)
	assert.Empty(t, m.ByKind(models.ContentArticle))
}

func TestBodyStatManager(t *testing.T) {
	f, client := newFakeRecords()
	fat := 18.5
	f.seed(t, models.CollectionBodyStats,
		models.BodyStat{MeasuredAt: now.Add(-2 * time.Hour), WeightKg: 80, WaterMl: 1500, Steps: 6000, BodyFatPct: &fat},
		models.BodyStat{MeasuredAt: now.AddDate(0, 0, -1), WeightKg: 81, WaterMl: 2500, Steps: 12000},
	)
	m := NewBodyStatManager(client, testConfig())
	require.NoError(t, m.Load(context.Background()))

	latest, ok := m.Latest()
	require.True(t, ok)
	assert.Equal(t, 80.0, latest.WeightKg)
	require.NotNil(t, latest.BodyFatPct)
	assert.Equal(t, 18.5, *latest.BodyFatPct)

	assert.InDelta(t, 0.75, m.WaterProgress(2000), 1e-9)
	assert.InDelta(t, 0.6, m.StepProgress(10000), 1e-9)

	_, err := wait(t, m.LogStat(context.Background(), models.BodyStat{WaterMl: 3000, Steps: 20000}))
	require.NoError(t, err)

	assert.Equal(t, 4500.0, m.TodayWater())
	assert.Equal(t, 26000, m.TodaySteps())
	assert.Equal(t, 1.5, m.WaterProgress(2000), "water progress is clamped")
	assert.Equal(t, 1.5, m.StepProgress(10000), "step progress is clamped")

	latest, ok = m.Latest()
	require.True(t, ok)
	assert.Equal(t, now, latest.MeasuredAt)

	_, err = wait(t, m.DeleteStat(context.Background(), entity.Confirmed("srv-1")))
	require.NoError(t, err)
	assert.Equal(t, 3000.0, m.TodayWater())
}
