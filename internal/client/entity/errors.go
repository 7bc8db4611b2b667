package entity

import "errors"

var (
	// ErrInvariantViolation нарушение инварианта хранилища (ошибка программы, а не сети)
	ErrInvariantViolation = errors.New("entity store invariant violation")

	// ErrNotFound сущность отсутствует в хранилище
	ErrNotFound = errors.New("entity not found")

	// ErrStaleVersion подтверждение пришло с версией старше текущей
	ErrStaleVersion = errors.New("stale entity version")
)
