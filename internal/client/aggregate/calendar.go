package aggregate

import "time"

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// ClockFunc адаптер функции к Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock часы по системному времени
var SystemClock Clock = ClockFunc(time.Now)

// StartOfDay возвращает полночь дня t в его часовом поясе
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek возвращает полночь понедельника недели t (ISO неделя)
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // понедельник = 0
	return day.AddDate(0, 0, -offset)
}

// InRange предикат полуинтервала [from, to)
func InRange(from, to time.Time) func(time.Time) bool {
	return func(t time.Time) bool {
		return !t.Before(from) && t.Before(to)
	}
}

// Today предикат "сегодня". Текущее время читается один раз при построении предиката,
// поэтому предикат нужно строить заново при каждом вычислении.
func Today(clock Clock) func(time.Time) bool {
	start := StartOfDay(clock.Now())
	return InRange(start, start.AddDate(0, 0, 1))
}

// ThisWeek предикат "текущая неделя", неделя начинается в понедельник
func ThisWeek(clock Clock) func(time.Time) bool {
	start := StartOfWeek(clock.Now())
	return InRange(start, start.AddDate(0, 0, 7))
}

// LastDays предикат последних n дней, включая сегодня
func LastDays(clock Clock, n int) func(time.Time) bool {
	if n <= 0 {
		return func(time.Time) bool { return false }
	}
	end := StartOfDay(clock.Now()).AddDate(0, 0, 1)
	return InRange(end.AddDate(0, 0, -n), end)
}

// SameDay предикат календарного дня day
func SameDay(day time.Time) func(time.Time) bool {
	start := StartOfDay(day)
	return InRange(start, start.AddDate(0, 0, 1))
}

// On переносит предикат времени на элементы через аксессор даты
func On[E any](at func(E) time.Time, pred func(time.Time) bool) func(E) bool {
	return func(item E) bool {
		return pred(at(item))
	}
}
