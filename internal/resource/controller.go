// Package resource держит списки сущностей в синхронизации с сервером.
//
// Controller хранит список одного типа. Любая успешная мутация делает
// список недействительным, и он перезапрашивается целиком до того, как
// мутация считается завершенной. Локальных правок списка нет.
package resource

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/maynagashev/libadmin/internal/api"
)

// ErrBusy возвращается, если над записью уже выполняется мутация.
var ErrBusy = errors.New("над записью уже выполняется операция")

// Entity - сущность с серверным идентификатором.
// Key возвращает пустую строку для еще не созданной записи.
type Entity interface {
	Key() string
}

// Source - операции удаленного API для одного типа сущностей.
type Source[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, item T) error
}

// State - состояние контроллера.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	default:
		return "unknown"
	}
}

// Labels - тексты уведомлений для типа сущности.
type Labels struct {
	Created      string
	Updated      string
	Deleted      string
	LoadFailed   string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

// Controller владеет списком сущностей одного типа.
type Controller[T Entity] struct {
	source   Source[T]
	labels   Labels
	sanitize func(T) T

	mu       sync.Mutex
	items    []T
	loaded   bool
	loading  int
	mutating int
	stale    bool
	inFlight map[string]struct{}
}

// Option настраивает контроллер.
type Option[T Entity] func(*Controller[T])

// WithSanitize задает функцию, применяемую к каждой сущности перед
// сохранением в список (например, для удаления пароля).
func WithSanitize[T Entity](fn func(T) T) Option[T] {
	return func(c *Controller[T]) {
		c.sanitize = fn
	}
}

// NewController создает контроллер с пустым списком.
func NewController[T Entity](source Source[T], labels Labels, opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		source:   source,
		labels:   labels,
		items:    []T{},
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Items возвращает копию текущего списка.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// State возвращает текущее состояние. Пока выполняется хотя бы одна
// мутация, состояние - StateMutating, пока загрузка - StateLoading.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.mutating > 0:
		return StateMutating
	case c.loading > 0:
		return StateLoading
	case c.loaded:
		return StateReady
	default:
		return StateIdle
	}
}

// Stale сообщает, что после успешной мутации список не удалось обновить.
func (c *Controller[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// Load запрашивает список. При ошибке список не меняется.
func (c *Controller[T]) Load(ctx context.Context) Notice {
	c.enter(&c.loading)
	defer c.leave(&c.loading)

	if err := c.refresh(ctx); err != nil {
		slog.Warn("Не удалось загрузить список", "error", err)
		return failure(c.labels.LoadFailed, err)
	}
	return Notice{}
}

// Create создает сущность и пересинхронизирует список.
func (c *Controller[T]) Create(ctx context.Context, item T) Notice {
	return c.mutate(ctx, "", c.labels.Created, c.labels.CreateFailed, func() error {
		_, err := c.source.Create(ctx, item)
		return err
	})
}

// Update обновляет сущность и пересинхронизирует список.
func (c *Controller[T]) Update(ctx context.Context, item T) Notice {
	return c.mutate(ctx, item.Key(), c.labels.Updated, c.labels.UpdateFailed, func() error {
		_, err := c.source.Update(ctx, item)
		return err
	})
}

// Delete удаляет сущность и пересинхронизирует список.
func (c *Controller[T]) Delete(ctx context.Context, item T) Notice {
	return c.mutate(ctx, item.Key(), c.labels.Deleted, c.labels.DeleteFailed, func() error {
		return c.source.Delete(ctx, item)
	})
}

// mutate выполняет мутацию. key блокирует повторную мутацию той же записи,
// пустой key (создание) не блокируется.
func (c *Controller[T]) mutate(ctx context.Context, key, okText, failText string, call func() error) Notice {
	if !c.acquire(key) {
		slog.Warn("Повторная мутация отклонена", "key", key)
		return failure(failText, ErrBusy)
	}
	defer c.release(key)

	c.enter(&c.mutating)
	defer c.leave(&c.mutating)

	if err := call(); err != nil {
		slog.Warn("Мутация не выполнена", "key", key, "error", err)
		return failure(failText, err)
	}

	if err := c.refresh(ctx); err != nil {
		slog.Error("Мутация выполнена, но список не обновлен", "key", key, "error", err)
		c.mu.Lock()
		c.stale = true
		c.mu.Unlock()
		return Notice{
			Level:  LevelWarning,
			Text:   okText,
			Detail: "список не обновлен: " + errorMessage(err),
			Err:    err,
		}
	}
	return Notice{Level: LevelSuccess, Text: okText}
}

// refresh заменяет список целиком ответом сервера.
func (c *Controller[T]) refresh(ctx context.Context) error {
	items, err := c.source.List(ctx)
	if err != nil {
		return err
	}
	if c.sanitize != nil {
		for i := range items {
			items[i] = c.sanitize(items[i])
		}
	}
	if items == nil {
		items = []T{}
	}

	c.mu.Lock()
	c.items = items
	c.stale = false
	c.mu.Unlock()
	slog.Debug("Список обновлен", "count", len(items))
	return nil
}

func (c *Controller[T]) acquire(key string) bool {
	if key == "" {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[key]; busy {
		return false
	}
	c.inFlight[key] = struct{}{}
	return true
}

func (c *Controller[T]) release(key string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

// enter и leave считают операции в полете.
func (c *Controller[T]) enter(counter *int) {
	c.mu.Lock()
	*counter++
	c.mu.Unlock()
}

func (c *Controller[T]) leave(counter *int) {
	c.mu.Lock()
	*counter--
	c.loaded = true
	c.mu.Unlock()
}

// IsAuthError сообщает, что уведомление вызвано отсутствием или
// недействительностью токена.
func (n Notice) IsAuthError() bool {
	return n.Err != nil && errors.Is(n.Err, api.ErrAuthorization)
}
