package entity

// SyncState состояние синхронизации сущности
type SyncState int

const (
	StateConfirmed     SyncState = iota // подтверждена сервером
	StatePendingCreate                  // создана локально, ждет подтверждения
	StatePendingUpdate                  // изменена локально, ждет подтверждения
	StatePendingDelete                  // удалена локально, ждет подтверждения
)

func (s SyncState) String() string {
	switch s {
	case StateConfirmed:
		return "confirmed"
	case StatePendingCreate:
		return "pending_create"
	case StatePendingUpdate:
		return "pending_update"
	case StatePendingDelete:
		return "pending_delete"
	default:
		return "unknown"
	}
}

// OpKind тип мутации
type OpKind int

const (
	OpCreate OpKind = iota + 1
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Entity доменная запись в хранилище.
type Entity[T any] struct {
	Payload T
	ID      ID
	State   SyncState
	Version int64 // Version версия с сервера, 0 если неизвестна
}

// IsPending сообщает, что у сущности есть неподтвержденная мутация
func (e Entity[T]) IsPending() bool {
	return e.State != StateConfirmed
}

// PendingOperation описывает одну мутацию в полете.
// Живет только в памяти и удаляется, когда удаленный вызов завершится.
type PendingOperation[T any] struct {
	Optimistic T         // Optimistic примененное оптимистичное значение
	Rollback   Entity[T] // Rollback значение для отката
	ID         ID
	Kind       OpKind
}

// Handle возвращается InsertOptimistic и используется для подтверждения или отмены создания
type Handle struct {
	TempID ID
}

// CreateResult результат подтверждения создания
type CreateResult struct {
	ID ID // ID серверный идентификатор

	// Compensate выставляется, когда локальная сущность была удалена пользователем
	// до прихода подтверждения: серверная запись скрыта и ее нужно удалить на сервере.
	Compensate bool
}
