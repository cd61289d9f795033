// Package form описывает форму создания и редактирования сущности
// и подтверждение необратимых действий.
package form

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Mode - режим формы.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Kind - тип поля, определяет проверку и отображение.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindEmail
	KindPassword
)

// Field описывает поле формы.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Placeholder string
	// WriteOnly - значение не подставляется при редактировании.
	WriteOnly bool
}

// Form хранит значения полей и режим.
type Form struct {
	fields []Field
	values map[string]string
	mode   Mode
	id     string
}

// New создает пустую форму создания.
func New(fields []Field) *Form {
	f := &Form{
		fields: fields,
		values: make(map[string]string, len(fields)),
		mode:   ModeCreate,
	}
	for _, field := range fields {
		f.values[field.Name] = ""
	}
	return f
}

// Edit создает форму редактирования, заполненную значениями записи.
// Поля WriteOnly остаются пустыми.
func Edit(fields []Field, id string, values map[string]string) *Form {
	f := New(fields)
	f.mode = ModeEdit
	f.id = id
	for _, field := range fields {
		if field.WriteOnly {
			continue
		}
		if v, ok := values[field.Name]; ok {
			f.values[field.Name] = v
		}
	}
	return f
}

// Fields возвращает описание полей.
func (f *Form) Fields() []Field {
	return f.fields
}

// Mode возвращает режим формы.
func (f *Form) Mode() Mode {
	return f.mode
}

// ID возвращает идентификатор редактируемой записи.
func (f *Form) ID() string {
	return f.id
}

// Set задает значение поля. Неизвестные поля игнорируются.
func (f *Form) Set(name, value string) {
	if _, ok := f.values[name]; ok {
		f.values[name] = value
	}
}

// Value возвращает значение поля.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values возвращает копию всех значений.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Validate проверяет формат полей. Обязательность полей проверяет сервер.
func (f *Form) Validate() error {
	var errs []error
	for _, field := range f.fields {
		value := strings.TrimSpace(f.values[field.Name])
		if value == "" {
			continue
		}
		switch field.Kind {
		case KindDate:
			if _, err := time.Parse(time.DateOnly, value); err != nil {
				errs = append(errs, fmt.Errorf("%s: ожидается дата в формате ГГГГ-ММ-ДД", field.Label))
			}
		case KindEmail:
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				errs = append(errs, fmt.Errorf("%s: некорректный адрес", field.Label))
			}
		case KindText, KindPassword:
		}
	}
	return errors.Join(errs...)
}
