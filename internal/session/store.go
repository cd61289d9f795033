// Package session хранит токен и пользователя текущей сессии.
//
// Store - единственный владелец состояния сессии. Он создается один раз при
// запуске, гидратируется из постоянного хранилища через Init и передается
// всем компонентам, которым нужен контекст аутентификации.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/maynagashev/libadmin/models"
)

// Ключи постоянного хранилища.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotAuthenticated возвращается защитником, если токен отсутствует.
var ErrNotAuthenticated = errors.New("пользователь не аутентифицирован")

// Storage - постоянное хранилище пар ключ/значение, переживающее перезапуск.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Store держит снимок сессии в памяти и пишет его сквозь в Storage.
// Безопасен для использования из нескольких горутин.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	token   string
	userRaw string
}

// NewStore создает хранилище сессии поверх storage.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Init загружает сессию из постоянного хранилища.
func (s *Store) Init() error {
	token, _, err := s.storage.Get(KeyToken)
	if err != nil {
		return fmt.Errorf("ошибка чтения токена: %w", err)
	}
	userRaw, _, err := s.storage.Get(KeyUser)
	if err != nil {
		return fmt.Errorf("ошибка чтения пользователя: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.userRaw = userRaw
	s.mu.Unlock()

	slog.Info("Сессия загружена", "token_found", token != "", "user_found", userRaw != "")
	return nil
}

// Set сохраняет токен и пользователя новой сессии.
func (s *Store) Set(token string, user models.User) error {
	if token == "" {
		return errors.New("токен не может быть пустым")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("ошибка кодирования пользователя: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.storage.Set(KeyToken, token); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	if err = s.storage.Set(KeyUser, string(data)); err != nil {
		s.rollbackToken()
		return fmt.Errorf("ошибка сохранения пользователя: %w", err)
	}
	s.token = token
	s.userRaw = string(data)
	slog.Info("Сессия сохранена", "user", user.Name)
	return nil
}

// rollbackToken возвращает в хранилище прежний токен, чтобы токен и
// пользователь на диске остались согласованы со снимком в памяти.
func (s *Store) rollbackToken() {
	var err error
	if s.token == "" {
		err = s.storage.Delete(KeyToken)
	} else {
		err = s.storage.Set(KeyToken, s.token)
	}
	if err != nil {
		slog.Error("Не удалось откатить токен", "error", err)
	}
}

// Clear удаляет токен и пользователя вместе.
// Снимок в памяти очищается даже при ошибке хранилища.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.userRaw = ""
	if err := s.storage.Delete(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("ошибка очистки сессии: %w", err)
	}
	slog.Info("Сессия очищена")
	return nil
}

// Token возвращает текущий токен или пустую строку.
// Результат - снимок, который может устареть после параллельного Clear.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User возвращает пользователя сессии. Второе значение false, если
// пользователь отсутствует или его JSON поврежден.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	raw := s.userRaw
	s.mu.RUnlock()

	if raw == "" {
		return models.User{}, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Warn("Поврежденные данные пользователя в сессии", "error", err)
		return models.User{}, false
	}
	return user, true
}
