// Package cli реализует неинтерактивные команды login, logout и whoami.
// Команды используют то же хранилище сессии, что и TUI.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/session"
)

// Команды.
const (
	CmdLogin  = "login"
	CmdLogout = "logout"
	CmdWhoami = "whoami"
)

// ErrUnknownCommand возвращается для неизвестной команды.
var ErrUnknownCommand = errors.New("неизвестная команда")

// IsCommand сообщает, что name - команда CLI.
func IsCommand(name string) bool {
	switch name {
	case CmdLogin, CmdLogout, CmdWhoami:
		return true
	default:
		return false
	}
}

// App выполняет команды CLI.
type App struct {
	client api.Client
	store  *session.Store
	in     *bufio.Reader
	inFd   int
	out    io.Writer
}

// New создает App. Ввод читается из in, вывод пишется в out.
// Если in - терминал, пароль вводится без эха.
func New(client api.Client, store *session.Store, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		store:  store,
		in:     bufio.NewReader(in),
		inFd:   terminalFd(in),
		out:    out,
	}
}

// Run выполняет команду args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUnknownCommand
	}
	slog.Info("Команда CLI", "command", args[0])

	switch args[0] {
	case CmdLogin:
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		return a.Login(ctx, name)
	case CmdLogout:
		return a.Logout(ctx)
	case CmdWhoami:
		return a.Whoami()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}

// Login запрашивает имя (если не задано) и пароль, затем входит.
func (a *App) Login(ctx context.Context, name string) error {
	var err error
	if name == "" {
		if name, err = readLine(a.in, "Имя пользователя", a.out); err != nil {
			return fmt.Errorf("ошибка чтения имени: %w", err)
		}
	}
	password, err := readSecret(a.in, a.inFd, a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, name, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Вход выполнен: %s\n", resp.User.Name)
	return nil
}

// Logout завершает сессию. При ошибке сервера локальная сессия все равно
// очищается, а ошибка возвращается.
func (a *App) Logout(ctx context.Context) error {
	if _, err := session.Guard(a.store); err != nil {
		fmt.Fprintln(a.out, "Вы не вошли в систему!")
		return err
	}

	if err := a.client.Logout(ctx); err != nil {
		slog.Warn("Выход на сервере не выполнен, очищаем локальную сессию", "error", err)
		if clearErr := a.store.Clear(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		fmt.Fprintln(a.out, "Локальная сессия очищена.")
		return err
	}
	fmt.Fprintln(a.out, "Выход выполнен.")
	return nil
}

// Whoami выводит текущего пользователя.
func (a *App) Whoami() error {
	user, err := session.Guard(a.store)
	if err != nil {
		fmt.Fprintln(a.out, "Вы не вошли в систему!")
		return err
	}
	if user.Email != "" {
		fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Fprintln(a.out, user.Name)
	}
	return nil
}
