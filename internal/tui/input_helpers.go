package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// Количество полей, обрабатываемых handleCredentialsInput (имя/пароль).
	numCredentialFields = 2
)

// handleCredentialsKeys обрабатывает нажатия Tab, Shift+Tab и Enter в полях ввода.
// Возвращает модель, команду и флаг, указывающий, была ли клавиша обработана.
func (m *model) handleCredentialsKeys(
	keyMsg tea.KeyMsg,
	input1 *textinput.Model,
	input2 *textinput.Model,
	focusedFieldIdx *int,
	onEnterCmd func() (tea.Model, tea.Cmd),
) (tea.Model, tea.Cmd, bool) {
	switch keyMsg.String() {
	case keyTab, keyShiftTab, keyUp, keyDown:
		*focusedFieldIdx = (*focusedFieldIdx + 1) % numCredentialFields
		focusPair(input1, input2, *focusedFieldIdx)
		return m, textinput.Blink, true
	case keyEnter:
		if *focusedFieldIdx == 0 {
			*focusedFieldIdx = 1
			focusPair(input1, input2, *focusedFieldIdx)
			return m, textinput.Blink, true
		}
		model, cmd := onEnterCmd()
		return model, cmd, true
	default:
		return m, nil, false
	}
}

// focusPair переносит фокус на поле idx из двух.
func focusPair(input1, input2 *textinput.Model, idx int) {
	if idx == 0 {
		input2.Blur()
		input1.Focus()
	} else {
		input1.Blur()
		input2.Focus()
	}
}

// handleCredentialsInput обрабатывает ввод в двух полях (имя/пароль),
// переключение фокуса между ними и действие по Enter.
func (m *model) handleCredentialsInput(
	msg tea.Msg,
	input1 *textinput.Model,
	input2 *textinput.Model,
	focusedFieldIdx *int,
	onEnterCmd func() (tea.Model, tea.Cmd),
) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		newModel, keyCmd, handled := m.handleCredentialsKeys(keyMsg, input1, input2, focusedFieldIdx, onEnterCmd)
		if handled {
			return newModel, keyCmd
		}
	}

	activeInput := input1
	if *focusedFieldIdx == 1 {
		activeInput = input2
	}
	var cmd tea.Cmd
	*activeInput, cmd = activeInput.Update(msg)
	return m, cmd
}

// moveFormFocus переносит фокус формы на delta полей с переходом по кругу.
func (m *model) moveFormFocus(delta int) tea.Cmd {
	n := len(m.formInputs)
	if n == 0 {
		return nil
	}
	m.formInputs[m.formFocused].Blur()
	m.formFocused = (m.formFocused + delta + n) % n
	m.formInputs[m.formFocused].Focus()
	return textinput.Blink
}
