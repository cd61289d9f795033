package models

// User представляет пользователя текущей сессии.
// Хранится в сессии в виде JSON под ключом "user".
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UserAccount представляет учетную запись, управляемую из админки.
// Пароль передается только на сервер и никогда не показывается в списке.
type UserAccount struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Key возвращает строковое представление идентификатора.
func (u UserAccount) Key() string {
	return u.ID.String()
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponse представляет тело ответа при успешном входе.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrorResponse - структурированная ошибка сервера.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
