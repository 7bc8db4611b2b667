// Package aggregate вычисляет производные значения (суммы, группы, прогресс) по снимку хранилища.
// Функции не хранят состояния между вызовами: каждый вызов пересчитывает результат
// по переданному снимку, включая неподтвержденные оптимистичные записи.
package aggregate

import "cmp"

// Number числовые типы, по которым можно считать суммы
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Group элементы с одинаковым ключом в исходном порядке
type Group[K comparable, E any] struct {
	Key   K
	Items []E
}

// Filter возвращает элементы, удовлетворяющие предикату, в исходном порядке
func Filter[E any](items []E, pred func(E) bool) []E {
	out := make([]E, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Sum складывает значения аксессора
func Sum[E any, N Number](items []E, value func(E) N) N {
	var total N
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Average возвращает среднее значение аксессора, 0 для пустого набора
func Average[E any, N Number](items []E, value func(E) N) float64 {
	if len(items) == 0 {
		return 0
	}
	return float64(Sum(items, value)) / float64(len(items))
}

// Count возвращает количество элементов, удовлетворяющих предикату
func Count[E any](items []E, pred func(E) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Max возвращает первый элемент с максимальным значением аксессора
func Max[E any, N cmp.Ordered](items []E, value func(E) N) (E, bool) {
	var best E
	if len(items) == 0 {
		return best, false
	}

	best = items[0]
	bestValue := value(best)
	for _, item := range items[1:] {
		if v := value(item); v > bestValue {
			best, bestValue = item, v
		}
	}
	return best, true
}

// GroupBy группирует элементы по ключу. Группы следуют в порядке первого появления ключа,
// порядок внутри группы сохраняется.
func GroupBy[E any, K comparable](items []E, key func(E) K) []Group[K, E] {
	index := make(map[K]int)
	var groups []Group[K, E]

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, E]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}
