package resource

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/maynagashev/libadmin/internal/form"
	"github.com/maynagashev/libadmin/models"
)

// AuthorFields - поля формы автора.
func AuthorFields() []form.Field {
	return []form.Field{
		{Name: "name", Label: "Имя", Kind: form.KindText, Placeholder: "Pramoedya Ananta Toer"},
		{Name: "nationality", Label: "Национальность", Kind: form.KindText, Placeholder: "Indonesian"},
		{Name: "birthdate", Label: "Дата рождения", Kind: form.KindDate, Placeholder: "ГГГГ-ММ-ДД"},
	}
}

// UserFields - поля формы пользователя. Пароль только для записи.
func UserFields() []form.Field {
	return []form.Field{
		{Name: "name", Label: "Имя", Kind: form.KindText, Placeholder: "Имя пользователя"},
		{Name: "email", Label: "Email", Kind: form.KindEmail, Placeholder: "user@example.com"},
		{Name: "password", Label: "Пароль", Kind: form.KindPassword, WriteOnly: true},
	}
}

// AuthorToForm возвращает форму редактирования автора.
func AuthorToForm(a models.Author) *form.Form {
	return form.Edit(AuthorFields(), a.Key(), map[string]string{
		"name":        a.Name,
		"nationality": a.Nationality,
		"birthdate":   a.Birthdate,
	})
}

// AuthorFromForm собирает автора из значений формы.
func AuthorFromForm(f *form.Form) (models.Author, error) {
	a := models.Author{
		Name:        strings.TrimSpace(f.Value("name")),
		Nationality: strings.TrimSpace(f.Value("nationality")),
		Birthdate:   strings.TrimSpace(f.Value("birthdate")),
	}
	if f.Mode() == form.ModeEdit {
		id, err := strconv.ParseInt(f.ID(), 10, 64)
		if err != nil {
			return models.Author{}, fmt.Errorf("некорректный идентификатор автора %q: %w", f.ID(), err)
		}
		a.ID = id
	}
	return a, nil
}

// UserToForm возвращает форму редактирования пользователя.
func UserToForm(u models.UserAccount) *form.Form {
	return form.Edit(UserFields(), u.Key(), map[string]string{
		"name":  u.Name,
		"email": u.Email,
	})
}

// UserFromForm собирает пользователя из значений формы.
// Пустой пароль при редактировании не отправляется.
func UserFromForm(f *form.Form) (models.UserAccount, error) {
	u := models.UserAccount{
		Name:     strings.TrimSpace(f.Value("name")),
		Email:    strings.TrimSpace(f.Value("email")),
		Password: f.Value("password"),
	}
	if f.Mode() == form.ModeEdit {
		if f.ID() == "" {
			return models.UserAccount{}, errors.New("не задан идентификатор пользователя")
		}
		u.ID = models.ID(f.ID())
	}
	return u, nil
}
