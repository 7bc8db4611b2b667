// Package manager содержит фасады доменных коллекций поверх общего движка оптимистичных мутаций.
// UI работает только с менеджерами и не обращается к хранилищу или координатору напрямую.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/client/syncer"
)

// Config общие зависимости менеджеров
type Config struct {
	Logger  *slog.Logger
	Metrics syncer.Recorder
	Clock   aggregate.Clock
	Strict  bool // Strict нарушения инвариантов хранилища вызывают panic
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Clock == nil {
		c.Clock = aggregate.SystemClock
	}
	return c
}

// Manager обобщенный фасад одной коллекции
type Manager[T any] struct {
	client     RecordClient
	store      *entity.Store[T]
	coord      *syncer.Coordinator[T]
	validate   func(T) error
	logger     *slog.Logger
	clock      aggregate.Clock
	collection string
	group      singleflight.Group
}

// New создает менеджер коллекции. validate проверяет payload до оптимистичного применения, может быть nil.
func New[T any](collection string, client RecordClient, validate func(T) error, cfg Config) *Manager[T] {
	cfg = cfg.withDefaults()

	store := entity.NewStore[T](entity.WithStrict(cfg.Strict))
	remote := &recordRemote[T]{client: client, collection: collection}

	return &Manager[T]{
		collection: collection,
		client:     client,
		store:      store,
		coord:      syncer.New[T](collection, store, remote, cfg.Logger, syncer.WithRecorder(cfg.Metrics)),
		validate:   validate,
		logger:     cfg.Logger.With("collection", collection),
		clock:      cfg.Clock,
	}
}

// Collection возвращает имя коллекции
func (m *Manager[T]) Collection() string {
	return m.collection
}

// Clock возвращает часы менеджера
func (m *Manager[T]) Clock() aggregate.Clock {
	return m.clock
}

// Load загружает коллекцию с сервера и гидрирует хранилище
func (m *Manager[T]) Load(ctx context.Context) error {
	records, err := m.client.ListRecords(ctx, m.collection)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", m.collection, err)
	}

	items := make([]entity.Entity[T], 0, len(records))
	for _, rec := range records {
		e, err := decodeRecord[T](rec)
		if err != nil {
			// Пропускаем поврежденную запись, остальные данные пользователю нужны
			m.logger.Warn("Skipping undecodable record", "id", rec.ID, "error", err)
			continue
		}
		items = append(items, e)
	}

	m.store.Hydrate(items)
	m.logger.Debug("Collection loaded", "count", len(items))
	return nil
}

// Refresh перезагружает коллекцию; одновременные вызовы объединяются в один запрос
func (m *Manager[T]) Refresh(ctx context.Context) error {
	_, err, shared := m.group.Do("refresh", func() (any, error) {
		return nil, m.Load(ctx)
	})
	if shared {
		m.logger.Debug("Refresh deduplicated")
	}
	return err
}

// Add оптимистично добавляет запись
func (m *Manager[T]) Add(ctx context.Context, payload T) *syncer.Outcome[T] {
	if err := m.check(payload); err != nil {
		return syncer.Rejected[T](entity.OpCreate, entity.ID{}, err)
	}
	return m.coord.Create(ctx, payload)
}

// Replace заменяет payload записи
func (m *Manager[T]) Replace(ctx context.Context, id entity.ID, payload T) *syncer.Outcome[T] {
	if err := m.check(payload); err != nil {
		return syncer.Rejected[T](entity.OpUpdate, id, err)
	}
	return m.coord.Update(ctx, id, payload)
}

// Modify изменяет запись функцией от ее актуального значения.
// Результат fn проверяется валидатором в момент начала мутации, в том числе после ожидания
// в очереди; при ошибке запись остается прежней.
func (m *Manager[T]) Modify(ctx context.Context, id entity.ID, fn func(T) T) *syncer.Outcome[T] {
	return m.coord.Mutate(ctx, syncer.Mutation[T]{
		Kind:     entity.OpUpdate,
		ID:       id,
		Modify:   fn,
		Validate: m.validate,
	})
}

// Delete оптимистично удаляет запись
func (m *Manager[T]) Delete(ctx context.Context, id entity.ID) *syncer.Outcome[T] {
	return m.coord.Delete(ctx, id)
}

// Get возвращает копию записи
func (m *Manager[T]) Get(id entity.ID) (entity.Entity[T], bool) {
	return m.store.Get(m.store.Resolve(id))
}

// Snapshot возвращает текущий снимок коллекции
func (m *Manager[T]) Snapshot() []entity.Entity[T] {
	return m.store.Snapshot()
}

// Values возвращает payload всех видимых записей
func (m *Manager[T]) Values() []T {
	return m.store.Values()
}

// Subscribe подписывает на снимки коллекции
func (m *Manager[T]) Subscribe() (<-chan []entity.Entity[T], func()) {
	return m.store.Subscribe()
}

// Len возвращает количество видимых записей
func (m *Manager[T]) Len() int {
	return m.store.Len()
}

// Pending возвращает количество незавершенных мутаций
func (m *Manager[T]) Pending() int {
	return m.coord.Pending()
}

// Drain ждет завершения всех мутаций
func (m *Manager[T]) Drain(ctx context.Context) error {
	return m.coord.Drain(ctx)
}

// Reset очищает коллекцию при выходе из сессии
func (m *Manager[T]) Reset() {
	m.coord.Reset()
}

func (m *Manager[T]) check(payload T) error {
	if m.validate == nil {
		return nil
	}
	return m.validate(payload)
}

// entries возвращает снимок записей, прошедших предикат времени
func entries[T any](m *Manager[T], at func(T) time.Time, pred func(time.Time) bool) []T {
	return aggregate.Filter(m.Values(), aggregate.On(at, pred))
}
