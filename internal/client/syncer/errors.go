package syncer

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/iudanet/fitsync/internal/client/entity"
)

// Class категория ошибки мутации
type Class string

const (
	ClassNetwork    Class = "network"
	ClassAuth       Class = "auth"
	ClassValidation Class = "validation"
	ClassServer     Class = "server"
	ClassCancelled  Class = "cancelled"
	ClassNotFound   Class = "not_found"
	ClassConflict   Class = "conflict"
	ClassInvariant  Class = "invariant"
)

// ErrSessionReset мутация отброшена, потому что хранилище было очищено (выход из сессии)
var ErrSessionReset = errors.New("store was reset while mutation was in flight")

// MutationError ошибка одной мутации. Оптимистичное изменение к моменту ее получения уже откачено.
type MutationError struct {
	Err    error
	Fields map[string]string // Fields ошибки валидации по полям
	ID     entity.ID
	Op     entity.OpKind
	Class  Class
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s failed (%s): %v", e.Op, e.ID, e.Class, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// IsClass проверяет категорию ошибки мутации
func IsClass(err error, class Class) bool {
	var me *MutationError
	return errors.As(err, &me) && me.Class == class
}

// Classify определяет категорию ошибки удаленного вызова или хранилища.
// Ошибки транспорта сообщают свою категорию через метод FailureClass.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, ErrSessionReset):
		return ClassCancelled
	case errors.Is(err, entity.ErrNotFound):
		return ClassNotFound
	case errors.Is(err, entity.ErrStaleVersion):
		return ClassConflict
	case errors.Is(err, entity.ErrInvariantViolation):
		return ClassInvariant
	}

	var classified interface{ FailureClass() string }
	if errors.As(err, &classified) {
		return Class(classified.FailureClass())
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return ClassNetwork
	}

	return ClassServer
}

func fieldsOf(err error) map[string]string {
	var fielded interface{ FailureFields() map[string]string }
	if errors.As(err, &fielded) {
		return fielded.FailureFields()
	}
	return nil
}

func newMutationError(op entity.OpKind, id entity.ID, err error) *MutationError {
	return &MutationError{
		Op:     op,
		ID:     id,
		Class:  Classify(err),
		Fields: fieldsOf(err),
		Err:    err,
	}
}
