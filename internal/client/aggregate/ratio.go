package aggregate

// Policy правило ограничения прогресса, объявляется для каждой метрики явно
type Policy struct {
	min     float64
	max     float64
	clamped bool
}

// Unbounded прогресс может превышать 1.0 (перебор по калориям виден пользователю)
var Unbounded = Policy{}

// Clamped ограничивает прогресс интервалом [lo, hi]
func Clamped(lo, hi float64) Policy {
	return Policy{min: lo, max: hi, clamped: true}
}

// Ratio возвращает consumed/goal с учетом политики. Цель <= 0 дает 0.
func Ratio(consumed, goal float64, policy Policy) float64 {
	if goal <= 0 {
		return 0
	}

	r := consumed / goal
	if policy.clamped {
		r = max(policy.min, min(policy.max, r))
	}
	return r
}
