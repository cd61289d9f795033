package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/libadmin/internal/resource"
	"github.com/maynagashev/libadmin/models"
)

// Сообщение для очистки статуса.
type clearStatusMsg struct {
	seq int
}

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// --- Вход и выход --- //

type loginSuccessMsg struct {
	user models.User
}

// LoginError - ошибка входа.
type LoginError struct {
	err error
}

func (e LoginError) Error() string {
	return e.err.Error()
}

func (e LoginError) Unwrap() error {
	return e.err
}

// makeLoginCmd выполняет вход через API.
func (m *model) makeLoginCmd(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), username, password)
		if err != nil {
			return LoginError{err: err}
		}
		return loginSuccessMsg{user: resp.User}
	}
}

type logoutSuccessMsg struct{}

// LogoutError - ошибка выхода на сервере.
type LogoutError struct {
	err error
}

func (e LogoutError) Error() string {
	return e.err.Error()
}

func (e LogoutError) Unwrap() error {
	return e.err
}

// makeLogoutCmd завершает сессию через API.
func (m *model) makeLogoutCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.Logout(context.Background()); err != nil {
			return LogoutError{err: err}
		}
		return logoutSuccessMsg{}
	}
}

// --- Списки и мутации --- //

// noticeMsg - результат действия над списком.
type noticeMsg struct {
	kind   panelKind
	panel  resourcePanel // Список, для которого выполнялось действие
	notice resource.Notice
	load   bool // Результат загрузки, а не мутации
}

// loadCmd загружает список.
func loadCmd(kind panelKind, p resourcePanel) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{kind: kind, panel: p, notice: p.Load(context.Background()), load: true}
	}
}

// mutateCmd выполняет мутацию. Контроллер сам перезапрашивает список.
func mutateCmd(kind panelKind, p resourcePanel, action func(ctx context.Context) resource.Notice) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{kind: kind, panel: p, notice: action(context.Background())}
	}
}
