//nolint:testpackage // Это тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardScreen(t *testing.T) {
	t.Run("Открытие авторов", func(t *testing.T) {
		m, _, _ := newServerModel(t)

		_, cmd := m.Update(key(keyEnter))

		assert.Equal(t, entityListScreen, m.state)
		assert.Equal(t, panelAuthors, m.activeKind)
		runNotice(t, m, cmd)
	})

	t.Run("Открытие пользователей", func(t *testing.T) {
		m, _, _ := newServerModel(t)

		m.Update(key(keyDown))
		_, cmd := m.Update(key(keyEnter))

		assert.Equal(t, panelUsers, m.activeKind)
		runNotice(t, m, cmd)
		assert.Len(t, m.entityList.Items(), 1)
	})

	t.Run("Выход", func(t *testing.T) {
		m, store, _ := newServerModel(t)

		m.Update(key(keyDown))
		m.Update(key(keyDown))
		_, cmd := m.Update(key(keyEnter))
		msg, ok := findMsg[logoutSuccessMsg](collectMsgs(cmd))
		require.True(t, ok)
		m.Update(msg)

		assert.Equal(t, loginScreen, m.state)
		assert.Empty(t, store.Token())
		assert.Equal(t, "Вы вышли из системы", m.status)
	})

	t.Run("Показывает пользователя", func(t *testing.T) {
		m, _, _ := newServerModel(t)
		assert.Contains(t, m.View(), "admin <admin@example.com>")
	})

	t.Run("Выход из приложения", func(t *testing.T) {
		m, _, _ := newServerModel(t)
		_, cmd := m.Update(key(keyQuit))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})
}
