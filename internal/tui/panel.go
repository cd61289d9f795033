package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/form"
	"github.com/maynagashev/libadmin/internal/resource"
	"github.com/maynagashev/libadmin/models"
)

// resourcePanel - экран одного типа сущностей без параметра типа,
// чтобы модель могла хранить авторов и пользователей одинаково.
type resourcePanel interface {
	Title() string
	Load(ctx context.Context) resource.Notice
	ListItems() []list.Item
	Stale() bool
	NewForm() *form.Form
	EditForm(key string) (*form.Form, bool)
	Submit(ctx context.Context, f *form.Form) resource.Notice
	OpenDelete(key string) bool
	Prompt() string
	ConfirmPending() bool
	CancelDelete()
	// AcceptDelete закрывает диалог и возвращает действие удаления.
	AcceptDelete() (func(ctx context.Context) resource.Notice, bool)
}

// entityItem - элемент списка сущностей. Реализует list.Item.
type entityItem struct {
	key   string
	title string
	desc  string
}

func (i entityItem) Title() string       { return i.title }
func (i entityItem) Description() string { return i.desc }
func (i entityItem) FilterValue() string { return i.title }

// panel связывает контроллер списка с формой и подтверждением удаления.
type panel[T resource.Entity] struct {
	title    string
	ctrl     *resource.Controller[T]
	fields   func() []form.Field
	toForm   func(T) *form.Form
	fromForm func(*form.Form) (T, error)
	describe func(T) entityItem
	confirm  form.Confirmer[T]
}

func (p *panel[T]) Title() string {
	return p.title
}

func (p *panel[T]) Load(ctx context.Context) resource.Notice {
	return p.ctrl.Load(ctx)
}

func (p *panel[T]) ListItems() []list.Item {
	entities := p.ctrl.Items()
	items := make([]list.Item, len(entities))
	for i, e := range entities {
		item := p.describe(e)
		item.key = e.Key()
		items[i] = item
	}
	return items
}

func (p *panel[T]) Stale() bool {
	return p.ctrl.Stale()
}

func (p *panel[T]) NewForm() *form.Form {
	return form.New(p.fields())
}

func (p *panel[T]) EditForm(key string) (*form.Form, bool) {
	e, ok := p.find(key)
	if !ok {
		return nil, false
	}
	return p.toForm(e), true
}

// Submit создает или обновляет сущность в зависимости от режима формы.
func (p *panel[T]) Submit(ctx context.Context, f *form.Form) resource.Notice {
	e, err := p.fromForm(f)
	if err != nil {
		return resource.Notice{Level: resource.LevelError, Text: "Некорректные данные формы", Detail: err.Error(), Err: err}
	}
	if f.Mode() == form.ModeEdit {
		return p.ctrl.Update(ctx, e)
	}
	return p.ctrl.Create(ctx, e)
}

func (p *panel[T]) OpenDelete(key string) bool {
	e, ok := p.find(key)
	if !ok {
		return false
	}
	p.confirm.Open(e, p.describe(e).title)
	return true
}

func (p *panel[T]) Prompt() string {
	return p.confirm.Prompt()
}

func (p *panel[T]) ConfirmPending() bool {
	return p.confirm.Pending()
}

func (p *panel[T]) CancelDelete() {
	p.confirm.Cancel()
}

func (p *panel[T]) AcceptDelete() (func(ctx context.Context) resource.Notice, bool) {
	target, ok := p.confirm.Accept()
	if !ok {
		return nil, false
	}
	return func(ctx context.Context) resource.Notice {
		return p.ctrl.Delete(ctx, target)
	}, true
}

func (p *panel[T]) find(key string) (T, bool) {
	for _, e := range p.ctrl.Items() {
		if e.Key() == key {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// newAuthorsPanel создает экран авторов.
func newAuthorsPanel(client api.Client) resourcePanel {
	return &panel[models.Author]{
		title:    "Авторы",
		ctrl:     resource.Authors(client),
		fields:   resource.AuthorFields,
		toForm:   resource.AuthorToForm,
		fromForm: resource.AuthorFromForm,
		describe: func(a models.Author) entityItem {
			desc := a.Nationality
			if a.Birthdate != "" {
				desc = fmt.Sprintf("%s | %s", a.Nationality, a.Birthdate)
			}
			return entityItem{title: a.Name, desc: desc}
		},
	}
}

// newUsersPanel создает экран пользователей.
func newUsersPanel(client api.Client) resourcePanel {
	return &panel[models.UserAccount]{
		title:    "Пользователи",
		ctrl:     resource.Users(client),
		fields:   resource.UserFields,
		toForm:   resource.UserToForm,
		fromForm: resource.UserFromForm,
		describe: func(u models.UserAccount) entityItem {
			return entityItem{title: u.Name, desc: u.Email}
		},
	}
}
