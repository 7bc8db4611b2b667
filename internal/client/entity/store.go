package entity

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/tiendc/go-deepcopy"
)

// tombstone скрытая (оптимистично удаленная) сущность, хранится только для отката
type tombstone[T any] struct {
	entity   Entity[T]
	next     ID  // next сосед справа в момент удаления, для восстановления позиции
	index    int // index позиция в момент удаления
	deferred bool
}

type options struct {
	strict bool
}

// Option настройка хранилища
type Option func(*options)

// WithStrict включает строгий режим: нарушения инвариантов вызывают panic.
// Используется в тестах и dev-сборках.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Store хранит упорядоченную коллекцию сущностей в памяти и следит за оптимистичными мутациями.
// Все операции синхронные и выполняются под одним мьютексом (single writer),
// поэтому читатели видят либо состояние до мутации, либо после.
type Store[T any] struct {
	entities    map[ID]*Entity[T]           // видимые сущности
	pending     map[ID]*PendingOperation[T] // мутации в полете
	tombstones  map[ID]*tombstone[T]        // скрытые сущности, ожидающие подтверждения удаления
	aliases     map[ID]ID                   // temp id -> server id после подтверждения
	deleted     map[ID]struct{}             // удаления, подтвержденные в этой сессии
	subscribers map[int]chan []Entity[T]
	order       []ID // видимые id, новые первыми
	nextSub     int
	generation  uint64
	mu          sync.RWMutex
	strict      bool
}

// NewStore создает пустое хранилище
func NewStore[T any](opts ...Option) *Store[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store[T]{
		subscribers: make(map[int]chan []Entity[T]),
		strict:      o.strict,
	}
	s.resetLocked()
	return s
}

// InsertOptimistic добавляет новую сущность в состоянии PendingCreate в начало коллекции.
func (s *Store[T]) InsertOptimistic(tempID ID, payload T) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !tempID.IsPending() || tempID.IsZero() {
		return Handle{}, s.violation("insert with non-temporary id %q", tempID)
	}
	if s.knownLocked(tempID) {
		return Handle{}, s.violation("temp id collision %q", tempID)
	}

	s.entities[tempID] = &Entity[T]{
		ID:      tempID,
		Payload: s.clone(payload),
		State:   StatePendingCreate,
	}
	s.order = slices.Insert(s.order, 0, tempID)
	s.pending[tempID] = &PendingOperation[T]{
		ID:         tempID,
		Kind:       OpCreate,
		Optimistic: s.clone(payload),
	}

	s.notifyLocked()
	return Handle{TempID: tempID}, nil
}

// ConfirmCreate заменяет временную сущность подтвержденной серверной.
// Если пользователь успел удалить временную сущность, серверная запись остается скрытой,
// а результат требует компенсирующего удаления (CreateResult.Compensate).
func (s *Store[T]) ConfirmCreate(tempID ID, server Entity[T]) (CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if server.ID.IsZero() || server.ID.IsPending() {
		return CreateResult{}, s.violation("confirm create %q with non-server id %q", tempID, server.ID)
	}

	confirmed := s.cloneEntity(server)
	confirmed.State = StateConfirmed

	op, ok := s.pending[tempID]
	if !ok || op.Kind != OpCreate {
		return s.reconfirmCreateLocked(tempID, confirmed)
	}

	delete(s.pending, tempID)
	s.aliases[tempID] = server.ID

	if _, visible := s.entities[tempID]; visible {
		idx := s.indexOf(tempID)
		delete(s.entities, tempID)

		if existing, dup := s.entities[server.ID]; dup {
			// Запись уже пришла с сервера через Hydrate - оставляем одну копию
			s.order = slices.Delete(s.order, idx, idx+1)
			if _, busy := s.pending[server.ID]; !busy {
				existing.Payload = confirmed.Payload
				existing.Version = confirmed.Version
				existing.State = StateConfirmed
			}
		} else {
			s.order[idx] = server.ID
			s.entities[server.ID] = &confirmed
		}

		s.notifyLocked()
		return CreateResult{ID: server.ID}, nil
	}

	// Пользователь удалил сущность, пока создание было в полете.
	// Серверная запись не должна появиться в списке: держим ее скрытой до компенсирующего удаления.
	hidden := &tombstone[T]{entity: confirmed}
	if ts, ok := s.tombstones[tempID]; ok {
		hidden.index = ts.index
		hidden.next = ts.next
		delete(s.tombstones, tempID)
	}
	if _, visible := s.entities[server.ID]; visible {
		hidden.index = s.indexOf(server.ID)
		hidden.next = s.successorLocked(hidden.index)
		s.removeVisibleLocked(server.ID)
		s.notifyLocked()
	}
	hidden.entity.State = StatePendingDelete
	s.tombstones[server.ID] = hidden
	s.pending[server.ID] = &PendingOperation[T]{
		ID:       server.ID,
		Kind:     OpDelete,
		Rollback: s.cloneEntity(confirmed),
	}

	return CreateResult{ID: server.ID, Compensate: true}, nil
}

// reconfirmCreateLocked обрабатывает повторное подтверждение уже подтвержденного создания
func (s *Store[T]) reconfirmCreateLocked(tempID ID, confirmed Entity[T]) (CreateResult, error) {
	alias, ok := s.aliases[tempID]
	if !ok || alias != confirmed.ID {
		return CreateResult{}, s.violation("confirm create for unknown temp id %q", tempID)
	}

	e, visible := s.entities[alias]
	if !visible || e.State != StateConfirmed {
		// сущность скрыта или уже участвует в следующей мутации
		return CreateResult{ID: alias}, nil
	}
	if !reflect.DeepEqual(e.Payload, confirmed.Payload) {
		return CreateResult{}, s.violation("create %q confirmed twice with different payloads", tempID)
	}

	return CreateResult{ID: alias}, nil
}

// DiscardCreate удаляет временную сущность после неудачного создания.
func (s *Store[T]) DiscardCreate(tempID ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, ok := s.pending[tempID]
	if !ok || op.Kind != OpCreate {
		if _, visible := s.entities[tempID]; visible {
			return s.violation("discard create %q without pending create", tempID)
		}
		// уже отменено
		return nil
	}

	delete(s.pending, tempID)
	if _, hidden := s.tombstones[tempID]; hidden {
		delete(s.tombstones, tempID)
		return nil
	}

	s.removeVisibleLocked(tempID)
	s.notifyLocked()
	return nil
}

// ApplyOptimisticUpdate заменяет payload и возвращает снимок предыдущего значения для отката.
func (s *Store[T]) ApplyOptimisticUpdate(id ID, payload T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.entities[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if op, busy := s.pending[id]; busy {
		return zero, s.violation("update %q while %s is in flight", id, op.Kind)
	}

	rollback := s.cloneEntity(*e)
	e.Payload = s.clone(payload)
	e.State = StatePendingUpdate
	s.pending[id] = &PendingOperation[T]{
		ID:         id,
		Kind:       OpUpdate,
		Optimistic: s.clone(payload),
		Rollback:   rollback,
	}

	s.notifyLocked()
	return s.clone(rollback.Payload), nil
}

// ConfirmUpdate применяет серверное значение, сущность становится Confirmed.
// version == 0 означает, что сервер не сообщил версию.
func (s *Store[T]) ConfirmUpdate(id ID, payload T, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[id]
	op, pending := s.pending[id]
	if !pending || op.Kind != OpUpdate {
		if ok && e.State == StateConfirmed && reflect.DeepEqual(e.Payload, payload) &&
			(version == 0 || version == e.Version) {
			return nil
		}
		return s.violation("confirm update %q without pending update", id)
	}
	if !ok {
		return s.violation("pending update %q has no entity", id)
	}
	if version > 0 && version < e.Version {
		return fmt.Errorf("%w: %s got %d, have %d", ErrStaleVersion, id, version, e.Version)
	}

	e.Payload = s.clone(payload)
	if version > 0 {
		e.Version = version
	}
	e.State = StateConfirmed
	delete(s.pending, id)

	s.notifyLocked()
	return nil
}

// RollbackUpdate восстанавливает payload, сохраненный ApplyOptimisticUpdate.
func (s *Store[T]) RollbackUpdate(id ID, rollback T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[id]
	op, pending := s.pending[id]
	if !pending || op.Kind != OpUpdate {
		if ok && e.State == StateConfirmed && reflect.DeepEqual(e.Payload, rollback) {
			return nil
		}
		return s.violation("rollback update %q without pending update", id)
	}
	if !ok {
		return s.violation("pending update %q has no entity", id)
	}

	e.Payload = s.clone(rollback)
	e.State = op.Rollback.State
	e.Version = op.Rollback.Version
	delete(s.pending, id)

	s.notifyLocked()
	return nil
}

// ApplyOptimisticDelete скрывает сущность и возвращает ее полный снимок для отката.
// Для сущности в состоянии PendingCreate удаление откладывается до результата создания:
// возвращенный снимок в этом случае имеет State == StatePendingCreate.
func (s *Store[T]) ApplyOptimisticDelete(id ID) (Entity[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[id]
	if !ok {
		return Entity[T]{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	snapshot := s.cloneEntity(*e)

	if op, busy := s.pending[id]; busy {
		if op.Kind != OpCreate {
			return Entity[T]{}, s.violation("delete %q while %s is in flight", id, op.Kind)
		}
		s.hideLocked(id, true)
		s.notifyLocked()
		return snapshot, nil
	}

	s.hideLocked(id, false)
	s.pending[id] = &PendingOperation[T]{
		ID:       id,
		Kind:     OpDelete,
		Rollback: snapshot,
	}

	s.notifyLocked()
	return s.cloneEntity(snapshot), nil
}

// ConfirmDelete окончательно удаляет tombstone.
func (s *Store[T]) ConfirmDelete(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, pending := s.pending[id]
	if !pending || op.Kind != OpDelete {
		if _, done := s.deleted[id]; done {
			return nil
		}
		return s.violation("confirm delete %q without pending delete", id)
	}

	delete(s.pending, id)
	delete(s.tombstones, id)
	s.deleted[id] = struct{}{}

	s.notifyLocked()
	return nil
}

// RollbackDelete возвращает сущность на исходную относительную позицию.
func (s *Store[T]) RollbackDelete(id ID, rollback Entity[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, pending := s.pending[id]
	if !pending || op.Kind != OpDelete {
		if e, ok := s.entities[id]; ok && e.State == StateConfirmed && reflect.DeepEqual(e.Payload, rollback.Payload) {
			return nil
		}
		return s.violation("rollback delete %q without pending delete", id)
	}

	pos := len(s.order)
	if ts, ok := s.tombstones[id]; ok {
		pos = min(ts.index, len(s.order))
		if !ts.next.IsZero() {
			if i := s.indexOf(ts.next); i >= 0 {
				pos = i
			}
		}
	}

	restored := s.cloneEntity(rollback)
	restored.ID = id
	restored.State = StateConfirmed

	s.order = slices.Insert(s.order, pos, id)
	s.entities[id] = &restored
	delete(s.pending, id)
	delete(s.tombstones, id)

	s.notifyLocked()
	return nil
}

// Hydrate заменяет подтвержденное состояние данными с сервера (items в порядке "новые первыми").
// Сущности с мутациями в полете сохраняют локальное значение, скрытые и удаленные в этой
// сессии записи не воскрешаются.
// Пока в полете создание уже удаленной пользователем сущности, серверный id этой записи
// еще неизвестен, поэтому новые для хранилища id откладываются до следующей загрузки.
func (s *Store[T]) Hydrate(items []Entity[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	holdBack := s.deferredCreatesLocked()

	order := make([]ID, 0, len(items)+len(s.pending))
	entities := make(map[ID]*Entity[T], len(items)+len(s.pending))

	// Локальные неподтвержденные создания остаются сверху
	for _, id := range s.order {
		if e := s.entities[id]; e.State == StatePendingCreate {
			order = append(order, id)
			entities[id] = e
		}
	}

	for _, item := range items {
		id := item.ID
		if id.IsZero() || id.IsPending() {
			continue
		}
		if _, dup := entities[id]; dup {
			continue
		}
		if _, gone := s.deleted[id]; gone {
			continue
		}
		if _, hidden := s.tombstones[id]; hidden {
			continue
		}
		if _, known := s.entities[id]; holdBack && !known {
			continue
		}

		if e, ok := s.entities[id]; ok && s.pending[id] != nil {
			entities[id] = e
		} else {
			fresh := s.cloneEntity(item)
			fresh.State = StateConfirmed
			entities[id] = &fresh
		}
		order = append(order, id)
	}

	// Сущности с мутациями в полете, которых нет в ответе сервера, разрешатся сами
	for _, id := range s.order {
		if _, kept := entities[id]; kept {
			continue
		}
		if _, busy := s.pending[id]; busy {
			order = append(order, id)
			entities[id] = s.entities[id]
		}
	}

	s.order = order
	s.entities = entities
	s.notifyLocked()
}

// Reset очищает хранилище (выход из сессии). Результаты мутаций предыдущего поколения
// должны отбрасываться вызывающей стороной по Generation.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.generation++
	s.notifyLocked()
}

// Generation возвращает номер поколения хранилища, увеличивается при каждом Reset
func (s *Store[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generation
}

// Snapshot возвращает согласованную копию видимых сущностей в порядке итерации.
func (s *Store[T]) Snapshot() []Entity[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// Values возвращает копии payload видимых сущностей в порядке итерации.
func (s *Store[T]) Values() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]T, 0, len(s.order))
	for _, id := range s.order {
		values = append(values, s.clone(s.entities[id].Payload))
	}
	return values
}

// Get возвращает копию видимой сущности по ID
func (s *Store[T]) Get(id ID) (Entity[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	if !ok {
		return Entity[T]{}, false
	}
	return s.cloneEntity(*e), true
}

// Len возвращает количество видимых сущностей
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// HasPending сообщает, что у id есть мутация в полете
func (s *Store[T]) HasPending(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.pending[id]
	return ok
}

// PendingCount возвращает количество мутаций в полете
func (s *Store[T]) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.pending)
}

// Resolve возвращает серверный id для временного id, если создание уже подтверждено.
func (s *Store[T]) Resolve(id ID) ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if alias, ok := s.aliases[id]; ok {
		return alias
	}
	return id
}

// Subscribe возвращает канал, в который после каждой зафиксированной мутации
// отправляется актуальный снимок. Буфер на один элемент: медленный подписчик
// получает только последний снимок.
func (s *Store[T]) Subscribe() (<-chan []Entity[T], func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan []Entity[T], 1)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

func (s *Store[T]) resetLocked() {
	s.entities = make(map[ID]*Entity[T])
	s.pending = make(map[ID]*PendingOperation[T])
	s.tombstones = make(map[ID]*tombstone[T])
	s.aliases = make(map[ID]ID)
	s.deleted = make(map[ID]struct{})
	s.order = nil
}

func (s *Store[T]) notifyLocked() {
	for _, ch := range s.subscribers {
		snap := s.snapshotLocked()
		select {
		case ch <- snap:
		default:
			// выбрасываем устаревший снимок
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *Store[T]) snapshotLocked() []Entity[T] {
	out := make([]Entity[T], 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cloneEntity(*s.entities[id]))
	}
	return out
}

// deferredCreatesLocked сообщает, есть ли создание в полете для уже удаленной сущности
func (s *Store[T]) deferredCreatesLocked() bool {
	for id, ts := range s.tombstones {
		if op, ok := s.pending[id]; ok && ts.deferred && op.Kind == OpCreate {
			return true
		}
	}
	return false
}

func (s *Store[T]) knownLocked(id ID) bool {
	if _, ok := s.entities[id]; ok {
		return true
	}
	if _, ok := s.tombstones[id]; ok {
		return true
	}
	if _, ok := s.aliases[id]; ok {
		return true
	}
	_, ok := s.pending[id]
	return ok
}

func (s *Store[T]) hideLocked(id ID, deferred bool) {
	idx := s.indexOf(id)
	e := s.entities[id]
	ts := &tombstone[T]{
		entity:   s.cloneEntity(*e),
		index:    idx,
		next:     s.successorLocked(idx),
		deferred: deferred,
	}
	ts.entity.State = StatePendingDelete
	s.tombstones[id] = ts
	s.removeVisibleLocked(id)
}

func (s *Store[T]) removeVisibleLocked(id ID) {
	if idx := s.indexOf(id); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	}
	delete(s.entities, id)
}

func (s *Store[T]) successorLocked(idx int) ID {
	if idx >= 0 && idx+1 < len(s.order) {
		return s.order[idx+1]
	}
	return ID{}
}

func (s *Store[T]) indexOf(id ID) int {
	return slices.Index(s.order, id)
}

func (s *Store[T]) violation(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
	if s.strict {
		panic(err)
	}
	return err
}

func (s *Store[T]) cloneEntity(e Entity[T]) Entity[T] {
	e.Payload = s.clone(e.Payload)
	return e
}

// clone копирует payload: через метод Clone, если тип его реализует, иначе через deepcopy
func (s *Store[T]) clone(v T) T {
	if c, ok := any(v).(interface{ Clone() T }); ok {
		return c.Clone()
	}

	var out T
	if err := deepcopy.Copy(&out, v); err != nil {
		panic(fmt.Sprintf("entity: failed to copy payload %T: %v", v, err))
	}
	return out
}
