package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/libadmin/internal/resource"
)

// updateDashboardScreen обрабатывает главное меню.
func (m *model) updateDashboardScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			return m, tea.Quit
		case keyEnter:
			selected, isMenuItem := m.dashboardMenu.SelectedItem().(menuItem)
			if !isMenuItem {
				return m, nil
			}
			switch selected.id {
			case menuAuthors:
				return m.openPanel(panelAuthors)
			case menuUsers:
				return m.openPanel(panelUsers)
			case menuLogout:
				return m.startLogout()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.dashboardMenu, cmd = m.dashboardMenu.Update(msg)
	return m, cmd
}

// startLogout запускает выход на сервере.
func (m *model) startLogout() (tea.Model, tea.Cmd) {
	if ok, cmd := m.requireSession(); !ok {
		return m, cmd
	}
	slog.Info("Запрошен выход", "user", m.user.Name)
	statusCmd := m.setStatus(resource.LevelNone, "Выполняется выход...")
	return m, tea.Batch(m.makeLogoutCmd(), statusCmd)
}

// handleLogoutError показывает ошибку сервера и все равно очищает
// локальную сессию.
func (m *model) handleLogoutError(msg LogoutError) (tea.Model, tea.Cmd) {
	slog.Warn("Выход на сервере не выполнен, очищаем локальную сессию", "error", msg.err)
	if err := m.store.Clear(); err != nil {
		slog.Error("Не удалось очистить сессию", "error", err)
	}
	return m, m.redirectToLogin(msg.Error() + " Локальная сессия очищена.")
}

// viewDashboardScreen отображает меню и текущего пользователя.
func (m *model) viewDashboardScreen() string {
	var b strings.Builder
	who := m.user.Name
	if m.user.Email != "" {
		who = fmt.Sprintf("%s <%s>", m.user.Name, m.user.Email)
	}
	b.WriteString(subtleStyle.Render("Пользователь: "+who) + "\n\n")
	b.WriteString(m.dashboardMenu.View())
	return b.String()
}
