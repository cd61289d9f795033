package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		h, v := m.docStyle.GetFrameSize()
		listWidth := msg.Width - h
		listHeight := msg.Height - v - helpStatusHeightOffset
		m.entityList.SetSize(listWidth, listHeight)
		m.dashboardMenu.SetSize(listWidth, listHeight)
		m.loginUsernameInput.Width = listWidth - inputOffset
		m.loginPasswordInput.Width = listWidth - inputOffset
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case loginSuccessMsg:
		return m.handleLoginSuccess(msg)

	case LoginError:
		return m.handleLoginError(msg)

	case logoutSuccessMsg:
		slog.Info("Выход выполнен")
		return m, m.redirectToLoginWithSuccess("Вы вышли из системы")

	case LogoutError:
		return m.handleLogoutError(msg)

	case noticeMsg:
		return m.handleNoticeMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case loginScreen:
		return m.updateLoginScreen(msg)
	case dashboardScreen:
		return m.updateDashboardScreen(msg)
	case entityListScreen:
		return m.updateEntityListScreen(msg)
	case entityFormScreen:
		return m.updateEntityFormScreen(msg)
	case confirmScreen:
		return m.updateConfirmScreen(msg)
	default:
		return m, nil
	}
}
