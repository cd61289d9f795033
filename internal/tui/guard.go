package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/libadmin/internal/resource"
	"github.com/maynagashev/libadmin/internal/session"
	"github.com/maynagashev/libadmin/models"
)

const notAuthenticatedText = "Вы не вошли в систему!"

// requireSession проверяет сессию перед защищенным экраном.
// Без сессии переводит на экран входа и возвращает ok == false.
func (m *model) requireSession() (bool, tea.Cmd) {
	user, err := session.Guard(m.store)
	if err != nil {
		return false, m.redirectToLogin(notAuthenticatedText)
	}
	m.user = user
	return true, nil
}

// redirectToLogin показывает ошибку и открывает экран входа.
func (m *model) redirectToLogin(text string) tea.Cmd {
	return m.openLogin(resource.LevelError, text)
}

// redirectToLoginWithSuccess открывает экран входа после выхода.
func (m *model) redirectToLoginWithSuccess(text string) tea.Cmd {
	return m.openLogin(resource.LevelSuccess, text)
}

func (m *model) openLogin(level resource.Level, text string) tea.Cmd {
	m.user = models.User{}
	m.unmountPanel()
	m.form = nil
	m.formInputs = nil
	m.state = loginScreen
	m.loginInFlight = false
	m.loginFocusedField = 0
	m.loginPasswordInput.SetValue("")
	m.loginPasswordInput.Blur()
	m.loginUsernameInput.Focus()
	return tea.Batch(m.setStatus(level, text), textinput.Blink)
}

// handleAuthFailure очищает сессию после отказа сервера в авторизации.
func (m *model) handleAuthFailure(n resource.Notice) tea.Cmd {
	slog.Warn("Сессия отклонена сервером, требуется вход", "notice", n.String())
	if err := m.store.Clear(); err != nil {
		slog.Error("Не удалось очистить сессию", "error", err)
	}
	return m.redirectToLogin(notAuthenticatedText + " " + n.Detail)
}
