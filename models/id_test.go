package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/libadmin/models"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.ID
		wantErr  bool
	}{
		{name: "Число", input: `{"id":7}`, expected: "7"},
		{name: "Строка", input: `{"id":"xxxx"}`, expected: "xxxx"},
		{name: "Null", input: `{"id":null}`, expected: ""},
		{name: "Объект", input: `{"id":{}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u models.User
			err := json.Unmarshal([]byte(tt.input), &u)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u.ID)
		})
	}
}

func TestID_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(models.User{ID: "42", Name: "admin"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"name":"admin"}`, string(data))

	data, err = json.Marshal(models.User{ID: "xxxx", Name: "Guest"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"xxxx","name":"Guest"}`, string(data))
}

func TestID_LeadingZerosStayString(t *testing.T) {
	var u models.User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"007","name":"bond"}`), &u))
	assert.Equal(t, models.ID("007"), u.ID)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"007","name":"bond"}`, string(data))

	var back models.User
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, u.ID, back.ID)

	data, err = json.Marshal(models.User{ID: "0"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":0,"name":""}`, string(data))
}

func TestUserAccount_PasswordOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(models.UserAccount{Name: "budi", Email: "budi@example.com"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), `"id"`)
}
