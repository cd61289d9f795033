package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/libadmin/internal/session"
	"github.com/maynagashev/libadmin/models"
)

func TestGuard(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		userRaw  string
		wantErr  error
		wantUser models.User
	}{
		{
			name:    "Нет токена",
			wantErr: session.ErrNotAuthenticated,
		},
		{
			name:     "Токен и пользователь",
			token:    "t",
			userRaw:  `{"id":3,"name":"Sri","email":"sri@perpus.id"}`,
			wantUser: models.User{ID: "3", Name: "Sri", Email: "sri@perpus.id"},
		},
		{
			name:     "Токен без пользователя",
			token:    "t",
			wantUser: session.GuestUser,
		},
		{
			name:     "Поврежденный пользователь",
			token:    "t",
			userRaw:  `{"id":`,
			wantUser: session.GuestUser,
		},
		{
			name:    "Пользователь без токена",
			userRaw: `{"id":3,"name":"Sri"}`,
			wantErr: session.ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := session.NewMemoryStorage()
			if tt.token != "" {
				require.NoError(t, storage.Set(session.KeyToken, tt.token))
			}
			if tt.userRaw != "" {
				require.NoError(t, storage.Set(session.KeyUser, tt.userRaw))
			}
			store := session.NewStore(storage)
			require.NoError(t, store.Init())

			user, err := session.Guard(store)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}
