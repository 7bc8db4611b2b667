package entity

import (
	"strings"

	"github.com/google/uuid"
)

// tempPrefix префикс временных идентификаторов, назначаемых на клиенте
const tempPrefix = "tmp-"

// ID идентификатор сущности: либо временный (Pending), либо серверный (Confirmed).
// Временный и серверный идентификаторы с одинаковой строкой считаются разными.
type ID struct {
	value   string
	pending bool
}

// NewTempID генерирует новый временный идентификатор для оптимистичного создания
func NewTempID() ID {
	return ID{value: tempPrefix + uuid.New().String(), pending: true}
}

// Pending оборачивает временный идентификатор
func Pending(tempID string) ID {
	return ID{value: tempID, pending: true}
}

// Confirmed оборачивает серверный идентификатор
func Confirmed(serverID string) ID {
	return ID{value: serverID}
}

// ParseID восстанавливает ID из строки, полученной через String.
// Строки с префиксом "tmp-" считаются временными идентификаторами.
func ParseID(s string) ID {
	if strings.HasPrefix(s, tempPrefix) {
		return Pending(s)
	}
	return Confirmed(s)
}

// String возвращает строковое значение идентификатора
func (id ID) String() string {
	return id.value
}

// IsPending сообщает, что идентификатор временный
func (id ID) IsPending() bool {
	return id.pending
}

// IsZero сообщает, что идентификатор не задан
func (id ID) IsZero() bool {
	return id.value == ""
}
