package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/session"
	"github.com/maynagashev/libadmin/models"
)

const testToken = "test-bearer-token"

func newStore(t *testing.T, token string) *session.Store {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage())
	require.NoError(t, store.Init())
	if token != "" {
		require.NoError(t, store.Set(token, models.User{ID: "1", Name: "admin"}))
	}
	return store
}

func TestHTTPClient_Login(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		wantErr       bool
		wantKind      api.Kind
		wantMessage   string
		wantFieldErrs map[string][]string
	}{
		{
			name: "Успех",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/login", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"), "вход выполняется без токена")
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

				var req models.LoginRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "admin", req.Name)
				assert.Equal(t, "secret", req.Password)

				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"token":"new-token","user":{"id":1,"name":"admin","email":"a@perpus.id"}}`)
			},
		},
		{
			name: "Ошибка валидации",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = io.WriteString(w, `{"message":"The name field is required.","errors":{"name":["required"]}}`)
			},
			wantErr:       true,
			wantKind:      api.KindValidation,
			wantMessage:   "The name field is required.",
			wantFieldErrs: map[string][]string{"name": {"required"}},
		},
		{
			name: "Неверные учетные данные",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			},
			wantErr:     true,
			wantKind:    api.KindAuth,
			wantMessage: "Invalid credentials",
		},
		{
			name: "Неразборчивый ответ сервера",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, "<html>oops</html>")
			},
			wantErr:     true,
			wantKind:    api.KindTransport,
			wantMessage: api.GenericMessage(api.OpLogin),
		},
		{
			name: "Пустой токен",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"token":"","user":{"id":1,"name":"admin"}}`)
			},
			wantErr:     true,
			wantKind:    api.KindTransport,
			wantMessage: "Сервер не вернул токен.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			store := newStore(t, "")
			client := api.NewHTTPClient(server.URL+"/api", store)

			resp, err := client.Login(context.Background(), "admin", "secret")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "new-token", resp.Token)
				assert.Equal(t, "new-token", store.Token(), "токен должен попасть в сессию")
				user, ok := store.User()
				require.True(t, ok)
				assert.Equal(t, "a@perpus.id", user.Email)
				return
			}

			require.Error(t, err)
			apiErr, ok := api.AsError(err)
			require.True(t, ok, "ошибка должна быть *api.Error")
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantFieldErrs, apiErr.FieldErrors)
			assert.Empty(t, store.Token(), "при ошибке сессия не меняется")
		})
	}
}

func TestHTTPClient_Login_ServerUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := api.NewHTTPClient(url, newStore(t, ""))
	_, err := client.Login(context.Background(), "admin", "secret")

	require.Error(t, err)
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, api.KindTransport, apiErr.Kind)
	assert.Equal(t, "Произошла ошибка при входе.", apiErr.Message)
}

func TestHTTPClient_Logout(t *testing.T) {
	t.Run("Успех очищает сессию", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/logout", r.URL.Path)
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"message":"Logged out"}`)
		}))
		defer server.Close()

		store := newStore(t, testToken)
		client := api.NewHTTPClient(server.URL, store)

		require.NoError(t, client.Logout(context.Background()))
		assert.Empty(t, store.Token())
	})

	t.Run("Ошибка сервера не очищает сессию", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		store := newStore(t, testToken)
		client := api.NewHTTPClient(server.URL, store)

		err := client.Logout(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Произошла ошибка при выходе.", err.Error())
		assert.Equal(t, testToken, store.Token())
	})

	t.Run("Без токена запрос не отправляется", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			assert.Fail(t, "Сервер не должен был получить запрос без токена")
		}))
		defer server.Close()

		store := newStore(t, "")
		client := api.NewHTTPClient(server.URL, store)

		err := client.Logout(context.Background())
		require.ErrorIs(t, err, api.ErrNoToken)
		require.ErrorIs(t, err, api.ErrAuthorization)
		assert.Empty(t, store.Token())
	})
}

func TestHTTPClient_Authors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /author", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("Bearer "+testToken, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id":1,"name":"Pramoedya","nationality":"Indonesia","birthdate":"1925-02-06"}]`)
	})
	mux.HandleFunc("POST /author", func(w http.ResponseWriter, r *http.Request) {
		var a models.Author
		assert.NoError(json.NewDecoder(r.Body).Decode(&a))
		assert.Zero(a.ID, "при создании id не передается")
		a.ID = 7
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(a)
	})
	mux.HandleFunc("PATCH /author/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("7", r.PathValue("id"))
		_, _ = io.WriteString(w, `{"data":{"id":7,"name":"Chairil","nationality":"Indonesia","birthdate":"1922-07-26"}}`)
	})
	mux.HandleFunc("DELETE /author/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("7", r.PathValue("id"))
		_, _ = io.WriteString(w, `{"message":"deleted"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := api.NewHTTPClient(server.URL, newStore(t, testToken))
	ctx := context.Background()

	authors, err := client.ListAuthors(ctx)
	require.NoError(err)
	require.Len(authors, 1)
	assert.Equal("Pramoedya", authors[0].Name)

	created, err := client.CreateAuthor(ctx, models.Author{ID: 99, Name: "Pramoedya", Nationality: "Indonesia"})
	require.NoError(err)
	assert.Equal(int64(7), created.ID)

	updated, err := client.UpdateAuthor(ctx, 7, models.Author{Name: "Chairil"})
	require.NoError(err)
	assert.Equal("Chairil", updated.Name, "обертка data должна сниматься")

	require.NoError(client.DeleteAuthor(ctx, 7))
}

func TestHTTPClient_UpdateAuthor_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"Nationality is required","errors":{"nationality":["required"]}}`)
	}))
	defer server.Close()

	client := api.NewHTTPClient(server.URL, newStore(t, testToken))
	_, err := client.UpdateAuthor(context.Background(), 1, models.Author{Name: "X"})

	require.Error(t, err)
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, api.KindValidation, apiErr.Kind)
	assert.Equal(t, "Nationality is required", apiErr.Message)
	assert.Equal(t, "nationality: required", apiErr.FieldSummary())
	assert.NotErrorIs(t, err, api.ErrAuthorization)
}

func TestHTTPClient_Users(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":"u-1","name":"Sri","email":"sri@perpus.id"},{"id":2,"name":"Budi","email":"budi@perpus.id"}]}`)
	})
	mux.HandleFunc("PATCH /user/{id}", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		assert.NotContains(t, string(raw), "password", "пустой пароль не должен уходить на сервер")
		assert.Equal(t, "u-1", r.PathValue("id"))
		_, _ = w.Write(raw)
	})
	mux.HandleFunc("DELETE /user/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := api.NewHTTPClient(server.URL, newStore(t, testToken))
	ctx := context.Background()

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.ID("u-1"), users[0].ID)
	assert.Equal(t, models.ID("2"), users[1].ID)

	updated, err := client.UpdateUser(ctx, "u-1", models.UserAccount{Name: "Sri W.", Email: "sri@perpus.id"})
	require.NoError(t, err)
	assert.Equal(t, "Sri W.", updated.Name)

	err = client.DeleteUser(ctx, "u-1")
	require.ErrorIs(t, err, api.ErrAuthorization)
}

func TestHTTPClient_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"not-a-number"`)
	}))
	defer server.Close()

	client := api.NewHTTPClient(server.URL, newStore(t, testToken))
	_, err := client.ListAuthors(context.Background())

	require.Error(t, err)
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, api.KindTransport, apiErr.Kind)
	assert.Equal(t, "Произошла ошибка при загрузке авторов.", apiErr.Message)
}
