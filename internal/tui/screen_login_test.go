//nolint:testpackage // Это тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/resource"
	"github.com/maynagashev/libadmin/models"
)

func TestUpdateLoginScreen_Focus(t *testing.T) {
	tests := []struct {
		name            string
		key             string
		initialField    int
		expectedField   int
		usernameFocused bool
	}{
		{name: "ПереключениеПоляВперед", key: keyTab, initialField: 0, expectedField: 1},
		{name: "ПереключениеПоляНазад", key: keyShiftTab, initialField: 1, expectedField: 0, usernameFocused: true},
		{name: "СтрелкаВниз", key: keyDown, initialField: 0, expectedField: 1},
		{name: "EnterНаПервомПоле", key: keyEnter, initialField: 0, expectedField: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, &MockAPIClient{})
			m.loginFocusedField = tt.initialField
			focusPair(&m.loginUsernameInput, &m.loginPasswordInput, tt.initialField)

			_, cmd := m.Update(key(tt.key))

			assert.NotNil(t, cmd)
			assert.Equal(t, loginScreen, m.state)
			assert.Equal(t, tt.expectedField, m.loginFocusedField)
			assert.Equal(t, tt.usernameFocused, m.loginUsernameInput.Focused())
			assert.Equal(t, !tt.usernameFocused, m.loginPasswordInput.Focused())
		})
	}
}

func TestUpdateLoginScreen_Submit(t *testing.T) {
	client := &MockAPIClient{}
	user := models.User{ID: "1", Name: "admin", Email: "admin@example.com"}
	client.On("Login", mock.Anything, "admin", "secret").
		Return(&models.LoginResponse{Token: "token", User: user}, nil).Once()

	m, _ := newTestModel(t, client)
	m.loginUsernameInput.SetValue(" admin ")
	m.loginPasswordInput.SetValue("secret")
	m.loginFocusedField = 1

	_, cmd := m.Update(key(keyEnter))
	assert.True(t, m.loginInFlight)
	assert.Equal(t, "Выполняется вход...", m.status)

	// Повторный Enter во время входа ничего не отправляет
	_, again := m.Update(key(keyEnter))
	assert.Nil(t, again)

	success, ok := findMsg[loginSuccessMsg](collectMsgs(cmd))
	require.True(t, ok)
	m.Update(success)

	assert.Equal(t, dashboardScreen, m.state)
	assert.Equal(t, user, m.user)
	assert.False(t, m.loginInFlight)
	assert.Empty(t, m.loginPasswordInput.Value())
	assert.Equal(t, "Вход выполнен", m.status)
	assert.Equal(t, resource.LevelSuccess, m.statusLevel)
	assert.Contains(t, m.View(), "admin <admin@example.com>")
	client.AssertExpectations(t)
}

func TestUpdateLoginScreen_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "ОшибкаСервера",
			err:      &api.Error{Kind: api.KindAuth, Message: "Invalid credentials"},
			expected: "Invalid credentials",
		},
		{
			name: "ОшибкаВалидации",
			err: &api.Error{
				Kind:        api.KindValidation,
				Message:     "Name is required",
				FieldErrors: map[string][]string{"name": {"required"}},
			},
			expected: "Name is required (name: required)",
		},
		{
			name:     "НеизвестнаяОшибка",
			err:      errors.New("boom"),
			expected: api.GenericMessage(api.OpLogin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockAPIClient{}
			client.On("Login", mock.Anything, "admin", "bad").Return(nil, tt.err).Once()

			m, store := newTestModel(t, client)
			m.loginUsernameInput.SetValue("admin")
			m.loginPasswordInput.SetValue("bad")
			m.loginFocusedField = 1

			_, cmd := m.Update(key(keyEnter))
			loginErr, ok := findMsg[LoginError](collectMsgs(cmd))
			require.True(t, ok)
			m.Update(loginErr)

			assert.Equal(t, loginScreen, m.state)
			assert.False(t, m.loginInFlight)
			assert.Equal(t, tt.expected, m.status)
			assert.Equal(t, resource.LevelError, m.statusLevel)
			assert.Empty(t, store.Token())
		})
	}
}

func TestClearStatusMsg(t *testing.T) {
	m, _ := newTestModel(t, &MockAPIClient{})
	m.setStatus(resource.LevelSuccess, "первый")
	oldSeq := m.statusSeq
	m.setStatus(resource.LevelError, "второй")

	m.Update(clearStatusMsg{seq: oldSeq})
	assert.Equal(t, "второй", m.status)

	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}
