package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/libadmin/internal/form"
	"github.com/maynagashev/libadmin/internal/resource"
)

// openForm открывает форму создания или редактирования.
func (m *model) openForm(f *form.Form) {
	m.form = f
	m.formInputs = initFormInputs(f)
	m.formFocused = 0
	m.formErr = nil
	m.state = entityFormScreen
	slog.Info("Открыта форма", "panel", m.activeKind, "mode", f.Mode().String(), "id", f.ID())
}

// closeForm закрывает форму и возвращает к списку.
func (m *model) closeForm() {
	m.form = nil
	m.formInputs = nil
	m.formFocused = 0
	m.formErr = nil
	m.state = entityListScreen
}

// updateEntityFormScreen обрабатывает ввод в форме.
func (m *model) updateEntityFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.state = entityListScreen
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			slog.Debug("Форма отменена", "panel", m.activeKind)
			m.closeForm()
			return m, tea.ClearScreen
		case keyTab, keyDown:
			return m, m.moveFormFocus(1)
		case keyShiftTab, keyUp:
			return m, m.moveFormFocus(-1)
		case keySave:
			return m.submitForm()
		case keyEnter:
			if m.formFocused == len(m.formInputs)-1 {
				return m.submitForm()
			}
			return m, m.moveFormFocus(1)
		}
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocused], cmd = m.formInputs[m.formFocused].Update(msg)
	return m, cmd
}

// submitForm проверяет форму, закрывает ее и запускает мутацию.
// Ошибка формата оставляет форму открытой.
func (m *model) submitForm() (tea.Model, tea.Cmd) {
	for i, field := range m.form.Fields() {
		m.form.Set(field.Name, m.formInputs[i].Value())
	}
	if err := m.form.Validate(); err != nil {
		m.formErr = err
		return m, textinput.Blink
	}
	if ok, cmd := m.requireSession(); !ok {
		m.form = nil
		m.formInputs = nil
		return m, cmd
	}

	f := m.form
	p := m.active()
	kind := m.activeKind
	m.closeForm()
	slog.Info("Отправка формы", "panel", kind, "mode", f.Mode().String(), "id", f.ID())
	return m, tea.Batch(tea.ClearScreen, mutateCmd(kind, p, func(ctx context.Context) resource.Notice {
		return p.Submit(ctx, f)
	}))
}

// viewEntityFormScreen отображает форму.
func (m *model) viewEntityFormScreen() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	title := "Новая запись"
	if m.form.Mode() == form.ModeEdit {
		title = "Редактирование"
	}
	if p := m.active(); p != nil {
		title += ": " + p.Title()
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for _, input := range m.formInputs {
		b.WriteString(input.View() + "\n")
	}
	if m.formErr != nil {
		b.WriteString("\n" + errorStyle.Render(m.formErr.Error()) + "\n")
	}
	return b.String()
}
