package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/libadmin/internal/resource"
)

// openPanel монтирует новый пустой список сущностей и запускает его загрузку.
func (m *model) openPanel(kind panelKind) (tea.Model, tea.Cmd) {
	if ok, cmd := m.requireSession(); !ok {
		return m, cmd
	}
	factory, ok := m.panelFactory[kind]
	if !ok {
		return m, nil
	}
	p := factory(m.client)
	m.unmountPanel()
	m.panel = p
	m.activeKind = kind
	m.state = entityListScreen
	m.syncListItems()
	slog.Info("Открыт список", "panel", kind)
	return m, tea.Batch(tea.ClearScreen, m.startLoad(kind, p))
}

// unmountPanel отбрасывает список вместе с его контроллером.
// Результаты его запросов, пришедшие позже, список не меняют.
func (m *model) unmountPanel() {
	m.panel = nil
	m.loading = false
	m.entityList.ResetFilter()
	m.entityList.ResetSelected()
	m.entityList.SetItems(nil)
}

// startLoad помечает список как загружаемый и возвращает команду загрузки.
func (m *model) startLoad(kind panelKind, p resourcePanel) tea.Cmd {
	m.loading = true
	m.syncListTitle()
	return loadCmd(kind, p)
}

// syncListItems переносит список из контроллера в компонент списка.
func (m *model) syncListItems() {
	p := m.active()
	if p == nil {
		return
	}
	m.entityList.SetItems(p.ListItems())
	m.syncListTitle()
}

func (m *model) syncListTitle() {
	p := m.active()
	if p == nil {
		return
	}
	title := fmt.Sprintf("%s (%d)", p.Title(), len(m.entityList.Items()))
	if m.loading {
		title += " загрузка..."
	}
	if p.Stale() {
		title += " [устарел]"
	}
	m.entityList.Title = title
}

// selectedKey возвращает ключ выбранной записи.
func (m *model) selectedKey() (string, bool) {
	item, ok := m.entityList.SelectedItem().(entityItem)
	if !ok {
		return "", false
	}
	return item.key, true
}

// updateEntityListScreen обрабатывает сообщения для экрана списка.
func (m *model) updateEntityListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey || m.entityList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.entityList, cmd = m.entityList.Update(msg)
		return m, cmd
	}

	p := m.active()
	switch keyMsg.String() {
	case keyQuit:
		return m, tea.Quit
	case keyEsc:
		if m.entityList.FilterState() != list.Unfiltered {
			m.entityList.ResetFilter()
			return m, nil
		}
		m.unmountPanel()
		m.state = dashboardScreen
		return m, tea.ClearScreen
	case keyRefresh:
		if ok, cmd := m.requireSession(); !ok {
			return m, cmd
		}
		return m, m.startLoad(m.activeKind, p)
	case keyAdd:
		if ok, cmd := m.requireSession(); !ok {
			return m, cmd
		}
		m.openForm(p.NewForm())
		return m, tea.ClearScreen
	case keyEdit, keyEnter:
		key, ok := m.selectedKey()
		if !ok {
			return m, nil
		}
		if okSession, cmd := m.requireSession(); !okSession {
			return m, cmd
		}
		f, found := p.EditForm(key)
		if !found {
			return m, nil
		}
		m.openForm(f)
		return m, tea.ClearScreen
	case keyDelete, keyDel:
		key, ok := m.selectedKey()
		if !ok {
			return m, nil
		}
		if okSession, cmd := m.requireSession(); !okSession {
			return m, cmd
		}
		if p.OpenDelete(key) {
			m.state = confirmScreen
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.entityList, cmd = m.entityList.Update(msg)
	return m, cmd
}

// handleNoticeMsg применяет результат загрузки или мутации.
func (m *model) handleNoticeMsg(msg noticeMsg) (tea.Model, tea.Cmd) {
	current := m.panel != nil && msg.panel == m.panel
	if current {
		if msg.load {
			m.loading = false
		}
		m.syncListItems()
	}

	if msg.notice.IsAuthError() {
		if !current {
			// Токен мог смениться после выхода и нового входа
			slog.Info("Отказ в авторизации для закрытого списка пропущен", "panel", msg.kind)
			return m, nil
		}
		return m, m.handleAuthFailure(msg.notice)
	}
	if msg.notice.Level == resource.LevelError {
		slog.Warn("Действие не выполнено", "panel", msg.kind, "notice", msg.notice.String())
	}
	return m, m.showNotice(msg.notice)
}

// viewEntityListScreen отображает список.
func (m *model) viewEntityListScreen() string {
	return m.entityList.View()
}
