// Package testserver - поддельный удаленный API библиотеки для тестов.
//
// Реализует те же эндпоинты, что и настоящий сервер: вход и выход по
// bearer-токену, CRUD авторов и пользователей, ошибки валидации в формате
// {message, errors}. Данные хранятся в памяти.
package testserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/maynagashev/libadmin/models"
)

// Server - запущенный поддельный API.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	secret       []byte
	authors      map[int64]models.Author
	nextAuthorID int64
	users        map[int64]storedUser
	nextUserID   int64
	revoked      map[string]struct{}
	failures     map[string]failure
	requests     []Request
}

// Request - запись о полученном запросе.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Auth      string
}

type storedUser struct {
	account      models.UserAccount
	passwordHash []byte
}

type failure struct {
	status int
	body   string
}

// New запускает сервер. Базовый URL API - URL() ("/api" в конце).
func New() *Server {
	s := &Server{
		secret:       []byte("testserver-secret"),
		authors:      make(map[int64]models.Author),
		nextAuthorID: 1,
		users:        make(map[int64]storedUser),
		nextUserID:   1,
		revoked:      make(map[string]struct{}),
		failures:     make(map[string]failure),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// URL возвращает базовый URL API.
func (s *Server) URL() string {
	return s.Server.URL + "/api"
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.injectFailures)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/logout", s.handleLogout)

			r.Get("/author", s.handleListAuthors)
			r.Post("/author", s.handleCreateAuthor)
			r.Patch("/author/{id}", s.handleUpdateAuthor)
			r.Delete("/author/{id}", s.handleDeleteAuthor)

			r.Get("/user", s.handleListUsers)
			r.Post("/user", s.handleCreateUser)
			r.Patch("/user/{id}", s.handleUpdateUser)
			r.Delete("/user/{id}", s.handleDeleteUser)
		})
	})
	return r
}

// AddUser добавляет учетную запись с паролем.
func (s *Server) AddUser(name, email, password string) models.UserAccount {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic("bcrypt: " + err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextUserID
	s.nextUserID++
	account := models.UserAccount{ID: models.ID(strconv.FormatInt(id, 10)), Name: name, Email: email}
	s.users[id] = storedUser{account: account, passwordHash: hash}
	return account
}

// AddAuthor добавляет автора и возвращает его с присвоенным ID.
func (s *Server) AddAuthor(a models.Author) models.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextAuthorID
	s.nextAuthorID++
	s.authors[a.ID] = a
	return a
}

// Authors возвращает текущий список авторов в порядке ID.
func (s *Server) Authors() []models.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedAuthors()
}

// FailNext заставляет следующий запрос method+path вернуть status и body.
// path указывается полностью, например "/api/author/1".
func (s *Server) FailNext(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// Requests возвращает копию журнала запросов.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests считает запросы с указанным методом и путем.
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			Auth:      r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		f, ok := s.failures[key]
		if ok {
			delete(s.failures, key)
		}
		s.mu.Unlock()

		if ok {
			slog.Debug("testserver: подмененный ответ", "route", key, "status", f.status)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) sortedAuthors() []models.Author {
	out := make([]models.Author, 0, len(s.authors))
	for _, a := range s.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("testserver: ошибка кодирования ответа", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Message: message})
}

// writeValidation отвечает 422 с первым сообщением в message, как Laravel.
func writeValidation(w http.ResponseWriter, errs map[string][]string, messages []string) {
	writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
		Message: messages[0],
		Errors:  errs,
	})
}
