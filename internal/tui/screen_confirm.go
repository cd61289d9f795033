package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// updateConfirmScreen ждет явного подтверждения удаления.
func (m *model) updateConfirmScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := m.active()
	if p == nil || !p.ConfirmPending() {
		m.state = entityListScreen
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyYes, "Y":
		action, accepted := p.AcceptDelete()
		m.state = entityListScreen
		if !accepted {
			return m, nil
		}
		if okSession, cmd := m.requireSession(); !okSession {
			return m, cmd
		}
		slog.Info("Удаление подтверждено", "panel", m.activeKind)
		return m, mutateCmd(m.activeKind, p, action)
	case keyNo, "N", keyEsc:
		p.CancelDelete()
		m.state = entityListScreen
		slog.Debug("Удаление отменено", "panel", m.activeKind)
		return m, nil
	}
	return m, nil
}

// viewConfirmScreen отображает вопрос подтверждения поверх списка.
func (m *model) viewConfirmScreen() string {
	p := m.active()
	if p == nil {
		return ""
	}
	return m.entityList.View() + "\n\n" + warningStyle.Render(p.Prompt())
}
