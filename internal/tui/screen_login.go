package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/resource"
)

// updateLoginScreen обрабатывает ввод данных для входа.
func (m *model) updateLoginScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	loginAction := func() (tea.Model, tea.Cmd) {
		if m.loginInFlight {
			return m, nil
		}
		username := strings.TrimSpace(m.loginUsernameInput.Value())
		password := m.loginPasswordInput.Value()
		m.loginInFlight = true
		statusCmd := m.setStatus(resource.LevelNone, "Выполняется вход...")
		return m, tea.Batch(m.makeLoginCmd(username, password), statusCmd)
	}

	return m.handleCredentialsInput(
		msg,
		&m.loginUsernameInput,
		&m.loginPasswordInput,
		&m.loginFocusedField,
		loginAction,
	)
}

// handleLoginSuccess открывает главное меню после входа.
func (m *model) handleLoginSuccess(msg loginSuccessMsg) (tea.Model, tea.Cmd) {
	m.loginInFlight = false
	m.user = msg.user
	m.loginPasswordInput.SetValue("")
	m.loginUsernameInput.Blur()
	m.loginPasswordInput.Blur()
	m.state = dashboardScreen
	slog.Info("Вход выполнен", "user", msg.user.Name)
	return m, tea.Batch(tea.ClearScreen, m.setStatus(resource.LevelSuccess, "Вход выполнен"))
}

// handleLoginError показывает сообщение сервера и оставляет экран входа.
func (m *model) handleLoginError(msg LoginError) (tea.Model, tea.Cmd) {
	m.loginInFlight = false
	text := api.GenericMessage(api.OpLogin)
	if apiErr, ok := api.AsError(msg.err); ok {
		text = apiErr.Message
		if fields := apiErr.FieldSummary(); fields != "" {
			text += " (" + fields + ")"
		}
	}
	slog.Warn("Вход не выполнен", "error", msg.err)
	return m, tea.Batch(m.setStatus(resource.LevelError, text), textinput.Blink)
}

// viewLoginScreen отображает экран ввода данных для входа.
func (m *model) viewLoginScreen() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Вход в панель администратора") + "\n\n")
	b.WriteString(m.loginUsernameInput.View() + "\n")
	b.WriteString(m.loginPasswordInput.View() + "\n\n")
	b.WriteString(subtleStyle.Render("Сервер: "+m.serverURL) + "\n")
	return b.String()
}
