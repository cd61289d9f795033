//nolint:testpackage // Это тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/libadmin/models"
)

func TestConfirmScreen(t *testing.T) {
	t.Run("Отмена не отправляет запрос", func(t *testing.T) {
		m, _, srv := newServerModel(t)
		srv.AddAuthor(models.Author{Name: "Pramoedya", Nationality: "Indonesian"})
		openAuthors(t, m)

		m.Update(key(keyDelete))
		require.Equal(t, confirmScreen, m.state)
		view := m.View()
		assert.Contains(t, view, "Удалить «Pramoedya»?")
		assert.Contains(t, view, "Это действие нельзя отменить.")

		_, cmd := m.Update(key(keyNo))
		assert.Nil(t, cmd)
		assert.Equal(t, entityListScreen, m.state)
		assert.False(t, m.active().ConfirmPending())
		assert.Zero(t, srv.CountRequests(http.MethodDelete, "/api/author/1"))
	})

	t.Run("Esc отменяет удаление", func(t *testing.T) {
		m, _, srv := newServerModel(t)
		srv.AddAuthor(models.Author{Name: "Pramoedya", Nationality: "Indonesian"})
		openAuthors(t, m)

		m.Update(key(keyDelete))
		m.Update(key(keyEsc))

		assert.Equal(t, entityListScreen, m.state)
		assert.Zero(t, srv.CountRequests(http.MethodDelete, "/api/author/1"))
	})

	t.Run("Прочие клавиши игнорируются", func(t *testing.T) {
		m, _, srv := newServerModel(t)
		srv.AddAuthor(models.Author{Name: "Pramoedya", Nationality: "Indonesian"})
		openAuthors(t, m)

		m.Update(key(keyDelete))
		_, cmd := m.Update(key("z"))

		assert.Nil(t, cmd)
		assert.Equal(t, confirmScreen, m.state)
	})

	t.Run("Подтверждение удаляет и обновляет список", func(t *testing.T) {
		m, _, srv := newServerModel(t)
		srv.AddAuthor(models.Author{Name: "Pramoedya", Nationality: "Indonesian"})
		srv.AddAuthor(models.Author{Name: "Lem", Nationality: "Polish"})
		openAuthors(t, m)

		m.Update(key(keyDelete))
		_, cmd := m.Update(key(keyYes))
		assert.Equal(t, entityListScreen, m.state)

		runNotice(t, m, cmd)
		assert.Equal(t, "Автор удален", m.status)
		require.Len(t, m.entityList.Items(), 1)
		assert.Equal(t, "Lem", m.entityList.Items()[0].(entityItem).Title())
		assert.Equal(t, 1, srv.CountRequests(http.MethodDelete, "/api/author/1"))
	})
}
