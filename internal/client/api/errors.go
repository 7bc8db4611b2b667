package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/iudanet/fitsync/pkg/api"
)

// Class категория ошибки удаленного вызова
type Class string

const (
	ClassNetwork    Class = "network"
	ClassAuth       Class = "auth"
	ClassValidation Class = "validation"
	ClassNotFound   Class = "not_found"
	ClassConflict   Class = "conflict"
	ClassServer     Class = "server"
	ClassCancelled  Class = "cancelled"
)

// Failure типизированная ошибка удаленного вызова
type Failure struct {
	Err        error // Err исходная ошибка транспорта, если есть
	Message    string
	Class      Class
	Fields     []api.FieldError
	StatusCode int // StatusCode 0 для ошибок транспорта
}

func (f *Failure) Error() string {
	if f.StatusCode == 0 {
		return fmt.Sprintf("%s error: %s", f.Class, f.Message)
	}
	return fmt.Sprintf("%s error (%d): %s", f.Class, f.StatusCode, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// FailureClass возвращает категорию ошибки
func (f *Failure) FailureClass() string {
	return string(f.Class)
}

// FailureFields возвращает ошибки валидации в виде поле -> сообщение
func (f *Failure) FailureFields() map[string]string {
	if len(f.Fields) == 0 {
		return nil
	}
	fields := make(map[string]string, len(f.Fields))
	for _, fe := range f.Fields {
		fields[fe.Field] = fe.Message
	}
	return fields
}

// IsClass проверяет категорию ошибки удаленного вызова
func IsClass(err error, class Class) bool {
	var f *Failure
	return errors.As(err, &f) && f.Class == class
}

// classifyStatus сопоставляет HTTP статус категории ошибки
func classifyStatus(code int) Class {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ClassAuth
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return ClassValidation
	case code == http.StatusNotFound:
		return ClassNotFound
	case code == http.StatusConflict:
		return ClassConflict
	default:
		return ClassServer
	}
}

func transportFailure(err error) *Failure {
	class := ClassNetwork
	if errors.Is(err, context.Canceled) {
		class = ClassCancelled
	}
	return &Failure{
		Class:   class,
		Message: err.Error(),
		Err:     err,
	}
}
