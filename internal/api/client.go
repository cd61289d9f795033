// Package api реализует HTTP клиент удаленного API библиотеки.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/maynagashev/libadmin/models"
)

const maxBodySize = 4 << 20

// Операции API. Используются в логах и для выбора общего сообщения об ошибке.
const (
	OpLogin        = "login"
	OpLogout       = "logout"
	OpListAuthors  = "list_authors"
	OpCreateAuthor = "create_author"
	OpUpdateAuthor = "update_author"
	OpDeleteAuthor = "delete_author"
	OpListUsers    = "list_users"
	OpCreateUser   = "create_user"
	OpUpdateUser   = "update_user"
	OpDeleteUser   = "delete_user"
)

//nolint:gochecknoglobals // Таблица сообщений
var genericMessages = map[string]string{
	OpLogin:        "Произошла ошибка при входе.",
	OpLogout:       "Произошла ошибка при выходе.",
	OpListAuthors:  "Произошла ошибка при загрузке авторов.",
	OpCreateAuthor: "Произошла ошибка при добавлении автора.",
	OpUpdateAuthor: "Произошла ошибка при обновлении автора.",
	OpDeleteAuthor: "Произошла ошибка при удалении автора.",
	OpListUsers:    "Произошла ошибка при загрузке пользователей.",
	OpCreateUser:   "Произошла ошибка при добавлении пользователя.",
	OpUpdateUser:   "Произошла ошибка при обновлении пользователя.",
	OpDeleteUser:   "Произошла ошибка при удалении пользователя.",
}

// GenericMessage возвращает общее сообщение об ошибке операции.
func GenericMessage(op string) string {
	if msg, ok := genericMessages[op]; ok {
		return msg
	}
	return "Произошла ошибка."
}

// SessionStore - то, что клиенту нужно от хранилища сессии.
type SessionStore interface {
	Token() string
	Set(token string, user models.User) error
	Clear() error
}

// Client определяет интерфейс для взаимодействия с API библиотеки.
type Client interface {
	// Login аутентифицирует пользователя и сохраняет сессию.
	Login(ctx context.Context, name, password string) (*models.LoginResponse, error)
	// Logout завершает сессию на сервере и очищает локальную.
	Logout(ctx context.Context) error

	ListAuthors(ctx context.Context) ([]models.Author, error)
	CreateAuthor(ctx context.Context, author models.Author) (*models.Author, error)
	UpdateAuthor(ctx context.Context, id int64, author models.Author) (*models.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error

	ListUsers(ctx context.Context) ([]models.UserAccount, error)
	CreateUser(ctx context.Context, user models.UserAccount) (*models.UserAccount, error)
	UpdateUser(ctx context.Context, id models.ID, user models.UserAccount) (*models.UserAccount, error)
	DeleteUser(ctx context.Context, id models.ID) error
}

// httpClient реализует интерфейс Client по HTTP.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	session    SessionStore
}

// NewHTTPClient создает новый экземпляр API клиента.
func NewHTTPClient(baseURL string, session SessionStore) Client {
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		session:    session,
	}
}

// request описывает один вызов API.
type request struct {
	op     string
	method string
	path   string
	auth   bool
	body   any
	out    any
}

// Login отправляет запрос на вход и сохраняет токен и пользователя в сессию.
func (c *httpClient) Login(ctx context.Context, name, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, request{
		op:     OpLogin,
		method: http.MethodPost,
		path:   "/login",
		body:   models.LoginRequest{Name: name, Password: password},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, &Error{
			Kind:    KindTransport,
			Op:      OpLogin,
			Status:  http.StatusOK,
			Message: "Сервер не вернул токен.",
		}
	}

	if err = c.session.Set(resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	slog.Info("Вход выполнен", "user", resp.User.Name)
	return &resp, nil
}

// Logout завершает сессию. Локальная сессия очищается только после
// подтверждения сервера.
func (c *httpClient) Logout(ctx context.Context) error {
	err := c.do(ctx, request{
		op:     OpLogout,
		method: http.MethodPost,
		path:   "/logout",
		auth:   true,
		body:   struct{}{},
	})
	if err != nil {
		return err
	}
	if err = c.session.Clear(); err != nil {
		return fmt.Errorf("ошибка очистки сессии: %w", err)
	}
	slog.Info("Выход выполнен")
	return nil
}

func (c *httpClient) ListAuthors(ctx context.Context) ([]models.Author, error) {
	authors := []models.Author{}
	err := c.do(ctx, request{op: OpListAuthors, method: http.MethodGet, path: "/author", auth: true, out: &authors})
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (c *httpClient) CreateAuthor(ctx context.Context, author models.Author) (*models.Author, error) {
	author.ID = 0
	var created models.Author
	err := c.do(ctx, request{
		op: OpCreateAuthor, method: http.MethodPost, path: "/author", auth: true,
		body: author, out: &created,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) UpdateAuthor(ctx context.Context, id int64, author models.Author) (*models.Author, error) {
	author.ID = id
	var updated models.Author
	err := c.do(ctx, request{
		op: OpUpdateAuthor, method: http.MethodPatch, path: authorPath(id), auth: true,
		body: author, out: &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *httpClient) DeleteAuthor(ctx context.Context, id int64) error {
	return c.do(ctx, request{op: OpDeleteAuthor, method: http.MethodDelete, path: authorPath(id), auth: true})
}

func (c *httpClient) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	users := []models.UserAccount{}
	err := c.do(ctx, request{op: OpListUsers, method: http.MethodGet, path: "/user", auth: true, out: &users})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (c *httpClient) CreateUser(ctx context.Context, user models.UserAccount) (*models.UserAccount, error) {
	user.ID = ""
	var created models.UserAccount
	err := c.do(ctx, request{
		op: OpCreateUser, method: http.MethodPost, path: "/user", auth: true,
		body: user, out: &created,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) UpdateUser(ctx context.Context, id models.ID, user models.UserAccount) (*models.UserAccount, error) {
	user.ID = id
	var updated models.UserAccount
	err := c.do(ctx, request{
		op: OpUpdateUser, method: http.MethodPatch, path: userPath(id), auth: true,
		body: user, out: &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *httpClient) DeleteUser(ctx context.Context, id models.ID) error {
	return c.do(ctx, request{op: OpDeleteUser, method: http.MethodDelete, path: userPath(id), auth: true})
}

func authorPath(id int64) string {
	return "/author/" + strconv.FormatInt(id, 10)
}

func userPath(id models.ID) string {
	return "/user/" + url.PathEscape(id.String())
}

// do выполняет запрос и нормализует любые сбои в *Error.
func (c *httpClient) do(ctx context.Context, r request) error {
	endpoint, err := url.JoinPath(c.baseURL, r.path)
	if err != nil {
		return transportError(r.op, 0, fmt.Errorf("ошибка формирования URL: %w", err))
	}

	var token string
	if r.auth {
		// Снимок токена: сессия может быть очищена параллельно
		token = c.session.Token()
		if token == "" {
			slog.Warn("Запрос без токена отклонен локально", "op", r.op)
			return &Error{Kind: KindAuth, Op: r.op, Message: "Токен не найден.", Err: ErrNoToken}
		}
	}

	var body io.Reader
	if r.body != nil {
		data, errMarshal := json.Marshal(r.body)
		if errMarshal != nil {
			return transportError(r.op, 0, fmt.Errorf("ошибка кодирования запроса: %w", errMarshal))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return transportError(r.op, 0, fmt.Errorf("ошибка создания запроса: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("Запрос к API", "op", r.op, "method", r.method, "url", endpoint, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Сервер недоступен", "op", r.op, "request_id", requestID, "error", err)
		return transportError(r.op, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return transportError(r.op, resp.StatusCode, fmt.Errorf("ошибка чтения ответа: %w", err))
	}

	slog.Debug("Ответ API", "op", r.op, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeError(r.op, resp.StatusCode, raw)
		slog.Warn("API вернул ошибку", "op", r.op, "status", resp.StatusCode,
			"kind", apiErr.Kind.String(), "message", apiErr.Message, "request_id", requestID)
		return apiErr
	}

	payload := unwrapData(raw)
	if r.out == nil || len(payload) == 0 {
		return nil
	}
	if err = json.Unmarshal(payload, r.out); err != nil {
		slog.Error("Не удалось разобрать ответ API", "op", r.op, "request_id", requestID, "error", err)
		return transportError(r.op, resp.StatusCode, fmt.Errorf("ошибка декодирования ответа: %w", err))
	}
	return nil
}

func transportError(op string, status int, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Status: status, Message: GenericMessage(op), Err: err}
}

// decodeError разбирает тело ошибки. Структурированное тело передается
// без изменений, иначе подставляется общее сообщение.
func decodeError(op string, status int, raw []byte) *Error {
	kind := KindTransport
	if status == http.StatusUnauthorized {
		kind = KindAuth
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || (body.Message == "" && len(body.Errors) == 0) {
		return &Error{
			Kind:    kind,
			Op:      op,
			Status:  status,
			Message: GenericMessage(op),
			Err:     fmt.Errorf("статус %d", status),
		}
	}

	if kind != KindAuth {
		kind = KindValidation
	}
	message := body.Message
	if message == "" {
		message = GenericMessage(op)
	}
	return &Error{
		Kind:        kind,
		Op:          op,
		Status:      status,
		Message:     message,
		FieldErrors: body.Errors,
	}
}

// unwrapData снимает обертку {"data": ...}, в которую сервер может
// завернуть ресурс или коллекцию.
func unwrapData(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return trimmed
	}
	data, hasData := envelope["data"]
	_, hasID := envelope["id"]
	if hasData && !hasID {
		return data
	}
	return trimmed
}
