package syncer

import (
	"context"
	"sync"

	"github.com/iudanet/fitsync/internal/client/entity"
)

// Outcome результат мутации, разрешается ровно один раз.
type Outcome[T any] struct {
	err    error
	done   chan struct{}
	cancel context.CancelFunc
	result entity.Entity[T]
	id     entity.ID
	once   sync.Once
}

func newOutcome[T any](id entity.ID, cancel context.CancelFunc) *Outcome[T] {
	return &Outcome[T]{
		id:     id,
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// Rejected возвращает уже разрешенный результат мутации, отклоненной до оптимистичного применения
func Rejected[T any](op entity.OpKind, id entity.ID, err error) *Outcome[T] {
	o := newOutcome[T](id, func() {})
	o.resolve(entity.Entity[T]{}, newMutationError(op, id, err))
	return o
}

// ID возвращает идентификатор, под которым мутация была принята (временный для создания).
func (o *Outcome[T]) ID() entity.ID {
	return o.id
}

// Done закрывается, когда мутация подтверждена или откачена
func (o *Outcome[T]) Done() <-chan struct{} {
	return o.done
}

// Wait ждет результата мутации. Отмена ctx прекращает ожидание, но не мутацию.
func (o *Outcome[T]) Wait(ctx context.Context) (entity.Entity[T], error) {
	select {
	case <-o.done:
		return o.result, o.err
	case <-ctx.Done():
		return entity.Entity[T]{}, ctx.Err()
	}
}

// Err возвращает ошибку разрешенной мутации, nil пока мутация в полете
func (o *Outcome[T]) Err() error {
	select {
	case <-o.done:
		return o.err
	default:
		return nil
	}
}

// Cancel отменяет удаленный вызов. Отмененная мутация откатывается.
func (o *Outcome[T]) Cancel() {
	o.cancel()
}

func (o *Outcome[T]) resolve(result entity.Entity[T], err error) bool {
	resolved := false
	o.once.Do(func() {
		o.result = result
		o.err = err
		close(o.done)
		resolved = true
	})
	return resolved
}
