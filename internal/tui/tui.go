// Package tui реализует терминальный интерфейс администратора библиотеки.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/resource"
	"github.com/maynagashev/libadmin/internal/session"
)

//nolint:gochecknoglobals // Стили статусной строки
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
)

// Init - команда, выполняемая при запуске приложения.
func (m *model) Init() tea.Cmd {
	if m.state == dashboardScreen {
		return nil
	}
	return textinput.Blink
}

// setStatus устанавливает статусное сообщение и запускает таймер для его очистки.
func (m *model) setStatus(level resource.Level, text string) tea.Cmd {
	m.status = text
	m.statusLevel = level
	m.statusSeq++
	return clearStatusCmd(m.statusTimeout, m.statusSeq)
}

// showNotice выводит уведомление контроллера.
func (m *model) showNotice(n resource.Notice) tea.Cmd {
	if n.Empty() {
		return nil
	}
	return m.setStatus(n.Level, n.String())
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case loginScreen:
		return m.viewLoginScreen()
	case dashboardScreen:
		return m.viewDashboardScreen()
	case entityListScreen:
		return m.viewEntityListScreen()
	case entityFormScreen:
		return m.viewEntityFormScreen()
	case confirmScreen:
		return m.viewConfirmScreen()
	default:
		return "Неизвестное состояние!"
	}
}

// renderStatus раскрашивает статус по уровню.
func (m *model) renderStatus() string {
	switch m.statusLevel {
	case resource.LevelSuccess:
		return successStyle.Render(m.status)
	case resource.LevelWarning:
		return warningStyle.Render(m.status)
	case resource.LevelError:
		return errorStyle.Render(m.status)
	case resource.LevelNone:
		return m.status
	default:
		return m.status
	}
}

// getDebugInfoString формирует отладочную информацию.
// Токен не выводится.
func (m *model) getDebugInfoString() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(" [State: %s]\n", m.state.String()))
	b.WriteString(fmt.Sprintf(" [URL: %s]\n", m.serverURL))
	b.WriteString(fmt.Sprintf(" [Token: %t]\n", m.store.Token() != ""))
	if p := m.active(); p != nil {
		b.WriteString(fmt.Sprintf(" [Panel: %s, stale: %t]\n", m.activeKind, p.Stale()))
	}
	return b.String()
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent := m.getMainContentView()
	help := m.helpTextMap[m.state]

	var footer strings.Builder
	if m.status != "" {
		footer.WriteString("\n")
		footer.WriteString(m.renderStatus())
	}
	if m.debugMode {
		footer.WriteString("\n\n---\nОтладка:\n")
		footer.WriteString(m.getDebugInfoString())
	}

	return fmt.Sprintf("%s\n%s%s", m.docStyle.Render(mainContent), subtleStyle.Render(help), footer.String())
}

// Start запускает TUI приложение.
func Start(client api.Client, store *session.Store, serverURL string, debugMode bool) error {
	m := initModel(client, store, serverURL, debugMode)

	// Сохраненная сессия позволяет сразу открыть главное меню
	if user, err := session.Guard(store); err == nil {
		m.user = user
		m.state = dashboardScreen
		m.loginUsernameInput.Blur()
		slog.Info("Сессия восстановлена", "user", user.Name)
	}

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("Ошибка при запуске TUI", "error", err)
		return fmt.Errorf("ошибка TUI: %w", err)
	}
	return nil
}
