//nolint:testpackage // Вспомогательные функции для тестов в том же пакете
package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/session"
	"github.com/maynagashev/libadmin/internal/testserver"
	"github.com/maynagashev/libadmin/models"
)

// MockAPIClient - мок для API клиента.
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) Login(ctx context.Context, name, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, name, password)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

func (m *MockAPIClient) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAPIClient) ListAuthors(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]models.Author)
	return authors, args.Error(1)
}

func (m *MockAPIClient) CreateAuthor(ctx context.Context, author models.Author) (*models.Author, error) {
	args := m.Called(ctx, author)
	created, _ := args.Get(0).(*models.Author)
	return created, args.Error(1)
}

func (m *MockAPIClient) UpdateAuthor(ctx context.Context, id int64, author models.Author) (*models.Author, error) {
	args := m.Called(ctx, id, author)
	updated, _ := args.Get(0).(*models.Author)
	return updated, args.Error(1)
}

func (m *MockAPIClient) DeleteAuthor(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPIClient) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.UserAccount)
	return users, args.Error(1)
}

func (m *MockAPIClient) CreateUser(ctx context.Context, user models.UserAccount) (*models.UserAccount, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*models.UserAccount)
	return created, args.Error(1)
}

func (m *MockAPIClient) UpdateUser(ctx context.Context, id models.ID, user models.UserAccount) (*models.UserAccount, error) {
	args := m.Called(ctx, id, user)
	updated, _ := args.Get(0).(*models.UserAccount)
	return updated, args.Error(1)
}

func (m *MockAPIClient) DeleteUser(ctx context.Context, id models.ID) error {
	return m.Called(ctx, id).Error(0)
}

// newTestModel создает модель с хранилищем сессии в памяти.
func newTestModel(t *testing.T, client api.Client) (*model, *session.Store) {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage())
	m := initModel(client, store, "http://test/api", false)
	m.statusTimeout = time.Millisecond
	return &m, store
}

// newServerModel создает модель, подключенную к поддельному серверу,
// с выполненным входом.
func newServerModel(t *testing.T) (*model, *session.Store, *testserver.Server) {
	t.Helper()
	srv := testserver.New()
	t.Cleanup(srv.Close)
	srv.AddUser("admin", "admin@example.com", "secret")

	store := session.NewStore(session.NewMemoryStorage())
	client := api.NewHTTPClient(srv.URL(), store)
	_, err := client.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	m := initModel(client, store, srv.URL(), false)
	m.statusTimeout = time.Millisecond
	m.state = dashboardScreen
	user, ok := store.User()
	require.True(t, ok)
	m.user = user
	return &m, store, srv
}

// collectMsgs выполняет команду и раскрывает tea.BatchMsg.
// Полученные сообщения не передаются обратно в модель.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg возвращает первое сообщение типа T.
func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// runNotice выполняет команду и применяет noticeMsg к модели.
func runNotice(t *testing.T, m *model, cmd tea.Cmd) noticeMsg {
	t.Helper()
	notice, ok := findMsg[noticeMsg](collectMsgs(cmd))
	require.True(t, ok, "команда должна вернуть noticeMsg")
	m.Update(notice)
	return notice
}

func key(s string) tea.KeyMsg {
	switch s {
	case keyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case keyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case keyTab:
		return tea.KeyMsg{Type: tea.KeyTab}
	case keyShiftTab:
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case keyUp:
		return tea.KeyMsg{Type: tea.KeyUp}
	case keyDown:
		return tea.KeyMsg{Type: tea.KeyDown}
	case keySave:
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
