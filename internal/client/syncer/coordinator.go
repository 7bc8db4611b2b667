package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/fitsync/internal/client/entity"
)

// Mutation описывает одно изменение коллекции.
type Mutation[T any] struct {
	// Modify применяется к актуальному значению в момент начала мутации, приоритетнее Payload.
	// Вызывается под блокировкой координатора и не должен обращаться к нему.
	Modify   func(T) T
	// Validate проверяет итоговый payload создания или обновления перед оптимистичным применением.
	// Для мутации из очереди вызывается в момент ее начала, с учетом результата Modify.
	Validate func(T) error
	Payload  T
	ID       entity.ID // ID цель обновления или удаления, для создания не используется
	Kind     entity.OpKind
}

type task[T any] struct {
	ctx      context.Context
	outcome  *Outcome[T]
	cancel   context.CancelFunc
	modify   func(T) T
	validate func(T) error
	deferred *task[T] // deferred удаление, запрошенное пока создание было в полете
	payload  T
	rollback entity.Entity[T]
	id       entity.ID
	kind     entity.OpKind
	version  int64
	gen      uint64
}

type config struct {
	metrics Recorder
}

// Option настройка координатора
type Option func(*config)

// WithRecorder подключает сбор метрик
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		if r != nil {
			c.metrics = r
		}
	}
}

// Coordinator проводит каждую мутацию через три фазы: оптимистичное применение,
// удаленный вызов и подтверждение (сервер побеждает) либо откат.
// Мутации одного id выполняются строго по очереди.
type Coordinator[T any] struct {
	store   *entity.Store[T]
	remote  Remote[T]
	metrics Recorder
	logger  *slog.Logger
	queues  map[entity.ID][]*task[T] // голова очереди - мутация в полете
	idle    chan struct{}
	name    string
	active  int
	mu      sync.Mutex
}

// New создает координатор для коллекции name
func New[T any](name string, store *entity.Store[T], remote Remote[T], logger *slog.Logger, opts ...Option) *Coordinator[T] {
	cfg := config{metrics: nopRecorder{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Coordinator[T]{
		name:    name,
		store:   store,
		remote:  remote,
		metrics: cfg.metrics,
		logger:  logger.With("collection", name),
		queues:  make(map[entity.ID][]*task[T]),
		idle:    make(chan struct{}),
	}
}

// Store возвращает хранилище координатора
func (c *Coordinator[T]) Store() *entity.Store[T] {
	return c.store
}

// Create оптимистично добавляет запись
func (c *Coordinator[T]) Create(ctx context.Context, payload T) *Outcome[T] {
	return c.Mutate(ctx, Mutation[T]{Kind: entity.OpCreate, Payload: payload})
}

// Update заменяет payload записи
func (c *Coordinator[T]) Update(ctx context.Context, id entity.ID, payload T) *Outcome[T] {
	return c.Mutate(ctx, Mutation[T]{Kind: entity.OpUpdate, ID: id, Payload: payload})
}

// Modify изменяет запись функцией от ее актуального значения
func (c *Coordinator[T]) Modify(ctx context.Context, id entity.ID, fn func(T) T) *Outcome[T] {
	return c.Mutate(ctx, Mutation[T]{Kind: entity.OpUpdate, ID: id, Modify: fn})
}

// Delete оптимистично удаляет запись
func (c *Coordinator[T]) Delete(ctx context.Context, id entity.ID) *Outcome[T] {
	return c.Mutate(ctx, Mutation[T]{Kind: entity.OpDelete, ID: id})
}

// Mutate принимает мутацию. Если у id нет мутации в полете, оптимистичное изменение
// применяется до возврата; иначе мутация ждет своей очереди.
// Повторных попыток нет: при ошибке вызывающая сторона сама решает, повторять ли.
func (c *Coordinator[T]) Mutate(ctx context.Context, m Mutation[T]) *Outcome[T] {
	taskCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	var id entity.ID
	if m.Kind == entity.OpCreate {
		id = entity.NewTempID()
	} else {
		id = c.store.Resolve(m.ID)
	}

	t := &task[T]{
		ctx:      taskCtx,
		cancel:   cancel,
		kind:     m.Kind,
		id:       id,
		payload:  m.Payload,
		modify:   m.Modify,
		validate: m.Validate,
		outcome:  newOutcome[T](id, cancel),
	}
	c.active++
	c.metrics.InFlight(c.name, 1)

	switch m.Kind {
	case entity.OpCreate, entity.OpUpdate, entity.OpDelete:
	default:
		c.finishLocked(t, entity.Entity[T]{}, &MutationError{
			Op:    m.Kind,
			ID:    id,
			Class: ClassInvariant,
			Err:   fmt.Errorf("%w: unknown mutation kind %d", entity.ErrInvariantViolation, m.Kind),
		})
		return t.outcome
	}

	queue := c.queues[id]
	if m.Kind == entity.OpDelete && id.IsPending() && len(queue) == 1 && queue[0].kind == entity.OpCreate && queue[0].deferred == nil {
		c.deferDeleteLocked(queue[0], t)
		return t.outcome
	}

	c.queues[id] = append(queue, t)
	if len(queue) == 0 {
		c.beginLocked(t)
	} else {
		c.logger.Debug("Mutation queued", "op", m.Kind.String(), "id", id.String(), "position", len(queue))
	}

	return t.outcome
}

// Pending возвращает количество мутаций в полете и в очереди
func (c *Coordinator[T]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.active
}

// Drain ждет разрешения всех принятых мутаций
func (c *Coordinator[T]) Drain(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.active == 0 {
			c.mu.Unlock()
			return nil
		}
		idle := c.idle
		c.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Reset отменяет все мутации и очищает хранилище.
// Ответы сервера на отмененные мутации будут отброшены.
func (c *Coordinator[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, queue := range c.queues {
		for i, t := range queue {
			t.cancel()
			if i > 0 {
				// еще не начаты, удаленного вызова не будет
				c.finishLocked(t, entity.Entity[T]{}, newMutationError(t.kind, t.id, ErrSessionReset))
			}
		}
	}
	c.queues = make(map[entity.ID][]*task[T])
	c.store.Reset()

	c.logger.Info("Coordinator reset")
}

// deferDeleteLocked удаляет временную сущность, создание которой еще в полете.
// Удаленный вызов откладывается до ответа на создание.
func (c *Coordinator[T]) deferDeleteLocked(create, del *task[T]) {
	removed, err := c.store.ApplyOptimisticDelete(del.id)
	if err != nil {
		c.finishLocked(del, entity.Entity[T]{}, newMutationError(del.kind, del.id, err))
		return
	}

	del.rollback = removed
	del.gen = c.store.Generation()
	create.deferred = del
	c.metrics.MutationStarted(c.name, del.kind)
	c.logger.Debug("Delete deferred until create resolves", "id", del.id.String())
}

// beginLocked запускает голову очереди; если оптимистичное применение не удалось,
// переходит к следующей мутации
func (c *Coordinator[T]) beginLocked(t *task[T]) {
	for t != nil {
		if c.startLocked(t) {
			return
		}
		t = c.popLocked(t)
	}
}

func (c *Coordinator[T]) startLocked(t *task[T]) bool {
	if err := t.ctx.Err(); err != nil {
		c.finishLocked(t, entity.Entity[T]{}, newMutationError(t.kind, t.id, err))
		return false
	}

	t.gen = c.store.Generation()
	if t.kind != entity.OpCreate {
		// очередь могла дождаться подтверждения создания
		t.id = c.store.Resolve(t.id)
	}

	var err error
	switch t.kind {
	case entity.OpCreate:
		if err = t.check(); err != nil {
			break
		}
		_, err = c.store.InsertOptimistic(t.id, t.payload)

	case entity.OpUpdate:
		current, ok := c.store.Get(t.id)
		if !ok {
			err = fmt.Errorf("%w: %s", entity.ErrNotFound, t.id)
			break
		}
		if t.modify != nil {
			t.payload = t.modify(current.Payload)
		}
		if err = t.check(); err != nil {
			break
		}
		t.version = current.Version
		t.rollback = current
		_, err = c.store.ApplyOptimisticUpdate(t.id, t.payload)

	case entity.OpDelete:
		t.rollback, err = c.store.ApplyOptimisticDelete(t.id)
	}

	if err != nil {
		c.finishLocked(t, entity.Entity[T]{}, newMutationError(t.kind, t.id, err))
		return false
	}

	c.metrics.MutationStarted(c.name, t.kind)
	c.logger.Debug("Mutation applied optimistically", "op", t.kind.String(), "id", t.id.String())

	go c.run(t)
	return true
}

func (t *task[T]) check() error {
	if t.validate == nil {
		return nil
	}
	return t.validate(t.payload)
}

// run выполняет удаленный вызов вне блокировки и сверяет результат с хранилищем
func (c *Coordinator[T]) run(t *task[T]) {
	start := time.Now()

	var (
		server entity.Entity[T]
		err    error
	)
	switch t.kind {
	case entity.OpCreate:
		server, err = c.remote.Create(t.ctx, t.payload)
	case entity.OpUpdate:
		server, err = c.remote.Update(t.ctx, t.id, t.payload, t.version)
	case entity.OpDelete:
		err = c.remote.Delete(t.ctx, t.id)
	}

	c.metrics.RemoteLatency(c.name, t.kind, time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store.Generation() != t.gen {
		// хранилище очищено, результат относится к прошлой сессии
		c.logger.Debug("Dropping result of reset mutation", "op", t.kind.String(), "id", t.id.String())
		c.finishLocked(t, entity.Entity[T]{}, newMutationError(t.kind, t.id, ErrSessionReset))
		if t.deferred != nil {
			c.finishLocked(t.deferred, entity.Entity[T]{}, newMutationError(t.deferred.kind, t.deferred.id, ErrSessionReset))
		}
		return
	}

	switch t.kind {
	case entity.OpCreate:
		c.reconcileCreateLocked(t, server, err)
	case entity.OpUpdate:
		c.reconcileUpdateLocked(t, server, err)
	case entity.OpDelete:
		c.reconcileDeleteLocked(t, err)
	}
}

func (c *Coordinator[T]) reconcileCreateLocked(t *task[T], server entity.Entity[T], err error) {
	var res entity.CreateResult
	if err == nil {
		res, err = c.store.ConfirmCreate(t.id, server)
	}

	if err != nil {
		if discardErr := c.store.DiscardCreate(t.id); discardErr != nil {
			c.logger.Error("Failed to discard optimistic create", "id", t.id.String(), "error", discardErr)
		}
		c.rollbackLogged(t, err)
		c.finishLocked(t, entity.Entity[T]{}, newMutationError(t.kind, t.id, err))
		if t.deferred != nil {
			// удалять на сервере нечего
			c.finishLocked(t.deferred, t.deferred.rollback, nil)
		}
		c.releaseLocked(t)
		return
	}

	// очередь следует за id: временный -> серверный
	queue := c.queues[t.id]
	delete(c.queues, t.id)
	c.queues[res.ID] = append(c.queues[res.ID], queue...)

	confirmed := c.store.Resolve(t.id)
	result, ok := c.store.Get(confirmed)
	if !ok {
		result = server
		result.State = entity.StateConfirmed
	}
	c.finishLocked(t, result, nil)

	if res.Compensate && t.deferred != nil {
		// создание подтвердилось для уже удаленной сущности: удаляем запись на сервере
		del := t.deferred
		del.id = res.ID
		del.rollback = server
		del.rollback.ID = res.ID
		del.gen = t.gen
		c.replaceHeadLocked(res.ID, t, del)
		c.logger.Info("Compensating delete for confirmed create", "temp_id", t.id.String(), "id", res.ID.String())
		go c.run(del)
		return
	}

	c.releaseLocked(t)
}

func (c *Coordinator[T]) reconcileUpdateLocked(t *task[T], server entity.Entity[T], err error) {
	if err == nil {
		err = c.store.ConfirmUpdate(t.id, server.Payload, server.Version)
	}

	if err != nil {
		if rbErr := c.store.RollbackUpdate(t.id, t.rollback.Payload); rbErr != nil {
			c.logger.Error("Failed to roll back update", "id", t.id.String(), "error", rbErr)
		}
		c.rollbackLogged(t, err)
		c.finishLocked(t, entity.Entity[T]{}, newMutationError(t.kind, t.id, err))
		c.releaseLocked(t)
		return
	}

	result, _ := c.store.Get(t.id)
	c.finishLocked(t, result, nil)
	c.releaseLocked(t)
}

func (c *Coordinator[T]) reconcileDeleteLocked(t *task[T], err error) {
	// запись уже удалена на сервере
	if err != nil && Classify(err) == ClassNotFound {
		err = nil
	}

	if err == nil {
		err = c.store.ConfirmDelete(t.id)
	}

	if err != nil {
		if rbErr := c.store.RollbackDelete(t.id, t.rollback); rbErr != nil {
			c.logger.Error("Failed to roll back delete", "id", t.id.String(), "error", rbErr)
		}
		c.rollbackLogged(t, err)
		c.finishLocked(t, entity.Entity[T]{}, newMutationError(t.kind, t.id, err))
		c.releaseLocked(t)
		return
	}

	c.finishLocked(t, t.rollback, nil)
	c.releaseLocked(t)
}

func (c *Coordinator[T]) rollbackLogged(t *task[T], err error) {
	c.metrics.Rollback(c.name, t.kind)
	c.logger.Warn("Mutation rolled back",
		"op", t.kind.String(),
		"id", t.id.String(),
		"class", string(Classify(err)),
		"error", err,
	)
}

// releaseLocked снимает мутацию с головы очереди и запускает следующую
func (c *Coordinator[T]) releaseLocked(t *task[T]) {
	if next := c.popLocked(t); next != nil {
		c.beginLocked(next)
	}
}

// popLocked удаляет t из головы очереди и возвращает новую голову
func (c *Coordinator[T]) popLocked(t *task[T]) *task[T] {
	key := c.store.Resolve(t.id)
	queue := c.queues[key]
	if len(queue) == 0 || queue[0] != t {
		return nil
	}

	queue = queue[1:]
	if len(queue) == 0 {
		delete(c.queues, key)
		return nil
	}

	c.queues[key] = queue
	return queue[0]
}

func (c *Coordinator[T]) replaceHeadLocked(key entity.ID, old, next *task[T]) {
	queue := c.queues[key]
	if len(queue) > 0 && queue[0] == old {
		queue[0] = next
		return
	}
	c.queues[key] = append([]*task[T]{next}, queue...)
}

func (c *Coordinator[T]) finishLocked(t *task[T], result entity.Entity[T], err error) {
	if !t.outcome.resolve(result, err) {
		return
	}
	t.cancel()

	class := Class("")
	var me *MutationError
	if errors.As(err, &me) {
		class = me.Class
	} else if err != nil {
		class = Classify(err)
	}
	c.metrics.MutationFinished(c.name, t.kind, class)
	c.metrics.InFlight(c.name, -1)

	c.active--
	if c.active == 0 {
		close(c.idle)
		c.idle = make(chan struct{})
	}
}
