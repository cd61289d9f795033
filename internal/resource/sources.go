package resource

import (
	"context"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/models"
)

type authorSource struct {
	client api.Client
}

// AuthorSource адаптирует api.Client к Source[models.Author].
func AuthorSource(client api.Client) Source[models.Author] {
	return authorSource{client: client}
}

func (s authorSource) List(ctx context.Context) ([]models.Author, error) {
	return s.client.ListAuthors(ctx)
}

func (s authorSource) Create(ctx context.Context, item models.Author) (models.Author, error) {
	created, err := s.client.CreateAuthor(ctx, item)
	if err != nil {
		return models.Author{}, err
	}
	return *created, nil
}

func (s authorSource) Update(ctx context.Context, item models.Author) (models.Author, error) {
	updated, err := s.client.UpdateAuthor(ctx, item.ID, item)
	if err != nil {
		return models.Author{}, err
	}
	return *updated, nil
}

func (s authorSource) Delete(ctx context.Context, item models.Author) error {
	return s.client.DeleteAuthor(ctx, item.ID)
}

type userSource struct {
	client api.Client
}

// UserSource адаптирует api.Client к Source[models.UserAccount].
func UserSource(client api.Client) Source[models.UserAccount] {
	return userSource{client: client}
}

func (s userSource) List(ctx context.Context) ([]models.UserAccount, error) {
	return s.client.ListUsers(ctx)
}

func (s userSource) Create(ctx context.Context, item models.UserAccount) (models.UserAccount, error) {
	created, err := s.client.CreateUser(ctx, item)
	if err != nil {
		return models.UserAccount{}, err
	}
	return *created, nil
}

func (s userSource) Update(ctx context.Context, item models.UserAccount) (models.UserAccount, error) {
	updated, err := s.client.UpdateUser(ctx, item.ID, item)
	if err != nil {
		return models.UserAccount{}, err
	}
	return *updated, nil
}

func (s userSource) Delete(ctx context.Context, item models.UserAccount) error {
	return s.client.DeleteUser(ctx, item.ID)
}

// Authors создает контроллер списка авторов.
func Authors(client api.Client) *Controller[models.Author] {
	return NewController(AuthorSource(client), Labels{
		Created:      "Автор добавлен",
		Updated:      "Автор обновлен",
		Deleted:      "Автор удален",
		LoadFailed:   "Не удалось загрузить авторов",
		CreateFailed: "Не удалось добавить автора",
		UpdateFailed: "Не удалось обновить автора",
		DeleteFailed: "Не удалось удалить автора",
	})
}

// Users создает контроллер списка пользователей. Пароли в списке не хранятся.
func Users(client api.Client) *Controller[models.UserAccount] {
	return NewController(UserSource(client), Labels{
		Created:      "Пользователь добавлен",
		Updated:      "Пользователь обновлен",
		Deleted:      "Пользователь удален",
		LoadFailed:   "Не удалось загрузить пользователей",
		CreateFailed: "Не удалось добавить пользователя",
		UpdateFailed: "Не удалось обновить пользователя",
		DeleteFailed: "Не удалось удалить пользователя",
	}, WithSanitize(func(u models.UserAccount) models.UserAccount {
		u.Password = ""
		return u
	}))
}
