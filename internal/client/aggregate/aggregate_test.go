package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meal struct {
	at       time.Time
	kind     string
	calories float64
	pieces   int
}

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// среда, 14 октября 2026, 10:30
var now = time.Date(2026, time.October, 14, 10, 30, 0, 0, time.UTC)

func TestSumAverageCount(t *testing.T) {
	items := []meal{
		{kind: "breakfast", calories: 350, pieces: 2},
		{kind: "lunch", calories: 700, pieces: 1},
		{kind: "snack", calories: 150, pieces: 3},
	}

	assert.InDelta(t, 1200.0, Sum(items, func(m meal) float64 { return m.calories }), 1e-9)
	assert.Equal(t, 6, Sum(items, func(m meal) int { return m.pieces }))
	assert.InDelta(t, 400.0, Average(items, func(m meal) float64 { return m.calories }), 1e-9)
	assert.Equal(t, 2, Count(items, func(m meal) bool { return m.calories < 500 }))

	assert.Zero(t, Sum([]meal(nil), func(m meal) float64 { return m.calories }))
	assert.Zero(t, Average([]meal(nil), func(m meal) float64 { return m.calories }))
}

func TestMax(t *testing.T) {
	items := []meal{
		{kind: "a", calories: 100},
		{kind: "b", calories: 300},
		{kind: "c", calories: 300},
	}

	best, ok := Max(items, func(m meal) float64 { return m.calories })
	require.True(t, ok)
	assert.Equal(t, "b", best.kind)

	_, ok = Max([]meal{}, func(m meal) float64 { return m.calories })
	assert.False(t, ok)
}

func TestGroupBy(t *testing.T) {
	items := []meal{
		{kind: "lunch", calories: 1},
		{kind: "breakfast", calories: 2},
		{kind: "lunch", calories: 3},
		{kind: "snack", calories: 4},
		{kind: "breakfast", calories: 5},
	}

	groups := GroupBy(items, func(m meal) string { return m.kind })
	require.Len(t, groups, 3)
	assert.Equal(t, "lunch", groups[0].Key)
	assert.Equal(t, "breakfast", groups[1].Key)
	assert.Equal(t, "snack", groups[2].Key)

	assert.Equal(t, []meal{items[0], items[2]}, groups[0].Items)
	assert.Equal(t, []meal{items[1], items[4]}, groups[1].Items)

	assert.Empty(t, GroupBy([]meal(nil), func(m meal) string { return m.kind }))
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		consumed float64
		goal     float64
		want     float64
	}{
		{name: "regular", policy: Unbounded, consumed: 1000, goal: 2000, want: 0.5},
		{name: "over goal unbounded", policy: Unbounded, consumed: 3000, goal: 2000, want: 1.5},
		{name: "zero goal", policy: Unbounded, consumed: 100, goal: 0, want: 0},
		{name: "negative goal", policy: Clamped(0, 1.5), consumed: 100, goal: -5, want: 0},
		{name: "clamped high", policy: Clamped(0, 1.5), consumed: 5000, goal: 2000, want: 1.5},
		{name: "clamped low", policy: Clamped(0, 1.5), consumed: -100, goal: 2000, want: 0},
		{name: "clamped inside", policy: Clamped(0, 1.5), consumed: 1500, goal: 2000, want: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.consumed, tt.goal, tt.policy), 1e-9)
		})
	}
}

func TestCalendarPredicates(t *testing.T) {
	clock := fixedClock(now)

	tests := []struct {
		at       time.Time
		name     string
		today    bool
		thisWeek bool
		last3    bool
	}{
		{name: "now", at: now, today: true, thisWeek: true, last3: true},
		{name: "start of today", at: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), today: true, thisWeek: true, last3: true},
		{name: "yesterday", at: time.Date(2026, 10, 13, 23, 59, 0, 0, time.UTC), thisWeek: true, last3: true},
		{name: "monday", at: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), thisWeek: true, last3: true},
		{name: "previous sunday", at: time.Date(2026, 10, 11, 23, 0, 0, 0, time.UTC)},
		{name: "next sunday", at: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), thisWeek: true},
		{name: "next monday", at: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{name: "tomorrow", at: time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC), thisWeek: true},
	}

	today := Today(clock)
	week := ThisWeek(clock)
	last3 := LastDays(clock, 3)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.today, today(tt.at), "today")
			assert.Equal(t, tt.thisWeek, week(tt.at), "this week")
			assert.Equal(t, tt.last3, last3(tt.at), "last 3 days")
		})
	}
}

func TestStartOfWeek_Sunday(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))
}

func TestLastDays_NonPositive(t *testing.T) {
	assert.False(t, LastDays(fixedClock(now), 0)(now))
}

func TestOn_FilterToday(t *testing.T) {
	items := []meal{
		{at: now.Add(-time.Hour), calories: 300},
		{at: now.AddDate(0, 0, -1), calories: 500},
		{at: now, calories: 200},
	}

	todays := Filter(items, On(func(m meal) time.Time { return m.at }, Today(fixedClock(now))))
	require.Len(t, todays, 2)
	assert.InDelta(t, 500.0, Sum(todays, func(m meal) float64 { return m.calories }), 1e-9)
}
