package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/form"
	"github.com/maynagashev/libadmin/internal/session"
)

// Константы, используемые при инициализации.
const (
	initPasswordCharLimit = 156
	initUserCharLimit     = 128
	initUserWidth         = 30
	initFieldCharLimit    = 255
	initFieldWidth        = 40

	defaultStatusTimeout     = 3 * time.Second
	helpStatusHeightOffset   = 2 // Высота строки помощи и статуса
	docStyleMarginVertical   = 1
	docStyleMarginHorizontal = 2
)

// initLoginInputs инициализирует поля для экрана входа.
func initLoginInputs() (textinput.Model, textinput.Model) {
	loginUserInput := textinput.New()
	loginUserInput.Placeholder = "Имя пользователя"
	loginUserInput.CharLimit = initUserCharLimit
	loginUserInput.Width = initUserWidth
	loginUserInput.Focus()

	loginPassInput := textinput.New()
	loginPassInput.Placeholder = "Пароль"
	loginPassInput.CharLimit = initPasswordCharLimit
	loginPassInput.Width = initUserWidth
	loginPassInput.EchoMode = textinput.EchoPassword
	return loginUserInput, loginPassInput
}

// initEntityList инициализирует компонент списка сущностей.
func initEntityList() list.Model {
	delegate := list.NewDefaultDelegate()
	// Настраиваем цвета для лучшей видимости
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(lipgloss.Color("252"))
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.
		Foreground(lipgloss.Color("245"))
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("212")).
		BorderLeftForeground(lipgloss.Color("212"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("240")).
		BorderLeftForeground(lipgloss.Color("212"))

	l := list.New([]list.Item{}, delegate, defaultListWidth, defaultListHeight)
	l.SetShowHelp(false) // Мы переопределяем справку
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initDashboardMenu инициализирует главное меню.
func initDashboardMenu() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	menu := list.New([]list.Item{
		menuItem{title: "Авторы", id: menuAuthors},
		menuItem{title: "Пользователи", id: menuUsers},
		menuItem{title: "Выйти", id: menuLogout},
	}, delegate, defaultListWidth, defaultListHeight)
	menu.Title = "Панель управления"
	menu.SetShowHelp(false)
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return menu
}

// initFormInputs создает поля ввода для формы и заполняет их значениями.
func initFormInputs(f *form.Form) []textinput.Model {
	fields := f.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		ti := textinput.New()
		ti.Prompt = field.Label + ": "
		ti.Placeholder = field.Placeholder
		ti.CharLimit = initFieldCharLimit
		ti.Width = initFieldWidth
		if field.Kind == form.KindPassword {
			ti.EchoMode = textinput.EchoPassword
			if f.Mode() == form.ModeEdit {
				ti.Placeholder = "оставьте пустым, чтобы не менять"
			}
		}
		ti.SetValue(f.Value(field.Name))
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return inputs
}

// initHelpTextMap возвращает подсказки по клавишам для экранов.
func initHelpTextMap() map[screenState]string {
	return map[screenState]string{
		loginScreen:      "(Tab - поле, Enter - войти, Ctrl+C - выход)",
		dashboardScreen:  "(Enter - открыть, q - выход)",
		entityListScreen: "(a - добавить, e/Enter - изменить, x - удалить, r - обновить, / - фильтр, Esc - назад, q - выход)",
		entityFormScreen: "(Tab/↑/↓ - поле, Enter на последнем поле или Ctrl+S - сохранить, Esc - отмена)",
		confirmScreen:    "(y - удалить, n/Esc - отмена)",
	}
}

// initDocStyle инициализирует основной стиль документа.
func initDocStyle() lipgloss.Style {
	return lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal)
}

// initModel создает начальное состояние модели.
func initModel(client api.Client, store *session.Store, serverURL string, debugMode bool) model {
	loginUserInput, loginPassInput := initLoginInputs()

	return model{
		state:              loginScreen,
		client:             client,
		store:              store,
		serverURL:          serverURL,
		debugMode:          debugMode,
		loginUsernameInput: loginUserInput,
		loginPasswordInput: loginPassInput,
		dashboardMenu:      initDashboardMenu(),
		entityList:         initEntityList(),
		panelFactory: map[panelKind]func(api.Client) resourcePanel{
			panelAuthors: newAuthorsPanel,
			panelUsers:   newUsersPanel,
		},
		statusTimeout: defaultStatusTimeout,
		docStyle:      initDocStyle(),
		helpTextMap:   initHelpTextMap(),
	}
}
