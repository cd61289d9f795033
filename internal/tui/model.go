package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/form"
	"github.com/maynagashev/libadmin/internal/resource"
	"github.com/maynagashev/libadmin/internal/session"
	"github.com/maynagashev/libadmin/models"
)

// Состояния (экраны) приложения.
type screenState int

const (
	loginScreen     screenState = iota // Экран входа
	dashboardScreen                    // Главное меню
	entityListScreen                   // Список сущностей
	entityFormScreen                   // Форма создания/редактирования
	confirmScreen                      // Подтверждение удаления
)

func (s screenState) String() string {
	switch s {
	case loginScreen:
		return "login"
	case dashboardScreen:
		return "dashboard"
	case entityListScreen:
		return "list"
	case entityFormScreen:
		return "form"
	case confirmScreen:
		return "confirm"
	default:
		return "unknown"
	}
}

// Идентификаторы экранов сущностей.
type panelKind string

const (
	panelAuthors panelKind = "authors"
	panelUsers   panelKind = "users"
)

// Константы для TUI.
const (
	defaultListWidth  = 80 // Стандартная ширина терминала для списка
	defaultListHeight = 24 // Стандартная высота терминала для списка
	inputOffset       = 4  // Отступ для полей ввода

	keyEnter    = "enter"
	keyQuit     = "q"
	keyEsc      = "esc"
	keyEdit     = "e"
	keyAdd      = "a"
	keyDelete   = "x"
	keyDel      = "delete"
	keyRefresh  = "r"
	keyYes      = "y"
	keyNo       = "n"
	keySave     = "ctrl+s"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
)

// Пункты главного меню.
const (
	menuAuthors = "authors"
	menuUsers   = "users"
	menuLogout  = "logout"
)

// menuItem - пункт главного меню.
type menuItem struct {
	title string
	id    string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return "" }
func (i menuItem) FilterValue() string { return i.title }

// model представляет состояние TUI приложения.
type model struct {
	state     screenState
	client    api.Client
	store     *session.Store
	serverURL string
	debugMode bool
	user      models.User // Пользователь текущей сессии

	loginUsernameInput textinput.Model
	loginPasswordInput textinput.Model
	loginFocusedField  int
	loginInFlight      bool

	dashboardMenu list.Model
	entityList    list.Model
	panelFactory  map[panelKind]func(api.Client) resourcePanel
	panel         resourcePanel // Смонтированный список, nil вне экранов списка
	activeKind    panelKind
	loading       bool // Идет загрузка списка

	form         *form.Form
	formInputs   []textinput.Model
	formFocused  int
	formErr      error

	status        string
	statusLevel   resource.Level
	statusSeq     int           // Номер статуса, чтобы старый таймер не стер новый
	statusTimeout time.Duration // Время отображения статусных сообщений

	docStyle    lipgloss.Style
	helpTextMap map[screenState]string
}

// active возвращает открытый экран сущностей.
func (m *model) active() resourcePanel {
	return m.panel
}
