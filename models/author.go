package models

import "strconv"

// Author представляет автора в каталоге библиотеки.
// ID присваивается сервером, 0 означает еще не созданную запись.
type Author struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	Birthdate   string `json:"birthdate"` // Формат YYYY-MM-DD
}

// Key возвращает строковое представление идентификатора.
func (a Author) Key() string {
	if a.ID == 0 {
		return ""
	}
	return strconv.FormatInt(a.ID, 10)
}
