package models

import "slices"

// Clone методы возвращают глубокие копии: хранилище клиента отдает наружу только копии.

// Clone создает глубокую копию записи
func (f FoodEntry) Clone() FoodEntry {
	return f
}

// Clone создает глубокую копию тренировки
func (w Workout) Clone() Workout {
	w.Exercises = slices.Clone(w.Exercises)
	return w
}

// Clone создает глубокую копию маршрута
func (r Route) Clone() Route {
	r.Points = slices.Clone(r.Points)
	return r
}

// Clone создает глубокую копию плана
func (p TrainingPlan) Clone() TrainingPlan {
	if p.Sessions != nil {
		sessions := make([]PlanSession, len(p.Sessions))
		for i, s := range p.Sessions {
			s.Exercises = slices.Clone(s.Exercises)
			sessions[i] = s
		}
		p.Sessions = sessions
	}
	return p
}

// Clone создает глубокую копию плана питания
func (m MealPlan) Clone() MealPlan {
	m.Meals = slices.Clone(m.Meals)
	return m
}

// Clone создает копию сообщения
func (c ChatMessage) Clone() ChatMessage {
	return c
}

// Clone создает глубокую копию материала
func (c ContentItem) Clone() ContentItem {
	c.Tags = slices.Clone(c.Tags)
	return c
}

// Clone создает глубокую копию замера
func (b BodyStat) Clone() BodyStat {
	if b.BodyFatPct != nil {
		v := *b.BodyFatPct
		b.BodyFatPct = &v
	}
	return b
}
