package syncer

import (
	"context"

	"github.com/iudanet/fitsync/internal/client/entity"
)

//go:generate moq -out remote_mock.go . Remote

// Remote удаленная сторона мутаций одной коллекции.
// Возвращенная сущность - авторитетное серверное значение.
type Remote[T any] interface {
	// Create создает запись и возвращает ее с серверным id и версией
	Create(ctx context.Context, payload T) (entity.Entity[T], error)

	// Update заменяет payload записи; version - версия, на которой основано изменение
	Update(ctx context.Context, id entity.ID, payload T, version int64) (entity.Entity[T], error)

	// Delete удаляет запись
	Delete(ctx context.Context, id entity.ID) error
}
