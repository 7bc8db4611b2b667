package validation

import (
	"strings"

	"github.com/iudanet/fitsync/pkg/api"
)

// Error ошибка валидации со списком полей
type Error struct {
	Fields []api.FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FailureClass категория ошибки для координатора мутаций
func (e *Error) FailureClass() string {
	return "validation"
}

// FailureFields возвращает ошибки в виде поле -> сообщение
func (e *Error) FailureFields() map[string]string {
	fields := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Field] = f.Message
	}
	return fields
}

// checker накапливает ошибки полей
type checker struct {
	fields []api.FieldError
}

func (c *checker) check(ok bool, field, message string) {
	if !ok {
		c.fields = append(c.fields, api.FieldError{Field: field, Message: message})
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: c.fields}
}
