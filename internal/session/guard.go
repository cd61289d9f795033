package session

import (
	"log/slog"

	"github.com/maynagashev/libadmin/models"
)

// GuestUser подставляется, если пользователь в сессии отсутствует или поврежден.
//
//nolint:gochecknoglobals // Неизменяемая заглушка
var GuestUser = models.User{ID: "xxxx", Name: "Guest"}

// Guard проверяет сессию перед показом защищенного экрана.
// Без токена возвращает ErrNotAuthenticated, иначе пользователя сессии
// или GuestUser.
func Guard(store *Store) (models.User, error) {
	if store.Token() == "" {
		slog.Warn("Доступ к защищенному экрану без токена")
		return models.User{}, ErrNotAuthenticated
	}
	user, ok := store.User()
	if !ok {
		return GuestUser, nil
	}
	return user, nil
}
