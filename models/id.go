package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ID - идентификатор, который сервер может прислать числом или строкой.
type ID string

// IsZero сообщает, что идентификатор не задан.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// MarshalJSON кодирует каноническое число числом, остальные - строкой.
// "007" остается строкой.
func (id ID) MarshalJSON() ([]byte, error) {
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON принимает как число, так и строку.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("идентификатор должен быть числом или строкой")
	}
	*id = ID(n.String())
	return nil
}

func isNumeric(s string) bool {
	n, err := strconv.ParseUint(s, 10, 64)
	return err == nil && strconv.FormatUint(n, 10) == s
}
