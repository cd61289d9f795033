package resource

import (
	"github.com/maynagashev/libadmin/internal/api"
)

// Level - важность уведомления.
type Level int

const (
	LevelNone Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Notice - результат действия для показа пользователю.
// Каждое действие контроллера возвращает ровно одно уведомление.
type Notice struct {
	Level  Level
	Text   string
	Detail string
	Fields string
	Err    error
}

// Empty сообщает, что показывать нечего.
func (n Notice) Empty() bool {
	return n.Level == LevelNone
}

func (n Notice) String() string {
	s := n.Text
	if n.Detail != "" {
		s += ": " + n.Detail
	}
	if n.Fields != "" {
		s += " (" + n.Fields + ")"
	}
	return s
}

func failure(text string, err error) Notice {
	n := Notice{Level: LevelError, Text: text, Detail: errorMessage(err), Err: err}
	if apiErr, ok := api.AsError(err); ok {
		n.Fields = apiErr.FieldSummary()
	}
	return n
}

// errorMessage возвращает сообщение сервера, если оно есть.
func errorMessage(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}
