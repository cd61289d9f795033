package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrAuthorization сигнализирует об ошибке авторизации (401).
var ErrAuthorization = errors.New("ошибка авторизации")

// ErrNoToken возвращается, если вызов требует токен, а сессии нет.
// Запрос в этом случае не отправляется.
var ErrNoToken = errors.New("токен аутентификации отсутствует")

// Kind различает вид ошибки API.
type Kind int

const (
	// KindTransport - сервер недоступен или ответ не удалось разобрать.
	KindTransport Kind = iota
	// KindValidation - сервер вернул структурированную ошибку.
	KindValidation
	// KindAuth - токен отсутствует или отклонен сервером.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error - нормализованная ошибка вызова API.
// Message показывается пользователю как есть.
type Error struct {
	Kind        Kind
	Op          string
	Status      int
	Message     string
	FieldErrors map[string][]string
	Err         error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет проверять ошибки авторизации через errors.Is(err, ErrAuthorization).
func (e *Error) Is(target error) bool {
	return target == ErrAuthorization && e.Kind == KindAuth
}

// FieldSummary возвращает ошибки полей одной строкой в стабильном порядке.
func (e *Error) FieldSummary() string {
	if len(e.FieldErrors) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.FieldErrors[f], ", "))
	}
	return strings.Join(parts, "; ")
}

// AsError извлекает *Error из цепочки ошибок.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
