package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maynagashev/libadmin/internal/api"
	"github.com/maynagashev/libadmin/internal/cli"
	"github.com/maynagashev/libadmin/internal/config"
	"github.com/maynagashev/libadmin/internal/session"
	"github.com/maynagashev/libadmin/internal/tui"
)

const (
	logFileName        = "client.log"
	logFilePermissions = 0o600
	logDirPermissions  = 0o750
)

// Переменные для версии и даты сборки, устанавливаются через ldflags.
//
//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
var (
	version    = "dev"
	buildDate  = "unknown"
	commitHash = "N/A"
)

// setupLogging настраивает логирование в файл <dir>/client.log.
// Терминал занят TUI, поэтому в stdout ничего не пишется.
func setupLogging(dir string, debug bool) (*os.File, error) {
	if err := os.MkdirAll(dir, logDirPermissions); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для логов: %w", err)
	}
	logPath := filepath.Join(dir, logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть лог-файл: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)
	return logFile, nil
}

// printVersion выводит версию и дату сборки.
func printVersion(w io.Writer) {
	fmt.Fprintln(w, "LibAdmin Client")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Date: %s\n", buildDate)
	fmt.Fprintf(w, "Commit Hash: %s\n", commitHash)
}

// newStorage выбирает постоянное хранилище сессии.
func newStorage(cfg *config.Config) (session.Storage, error) {
	switch cfg.SessionBackend {
	case config.BackendFile:
		return session.NewFileStorage(cfg.SessionPath), nil
	case config.BackendKdbx:
		return session.NewKdbxStorage(cfg.SessionPath, cfg.SessionPassword), nil
	default:
		return nil, fmt.Errorf("неизвестное хранилище сессии %q", cfg.SessionBackend)
	}
}

// run выполняет программу и возвращает код выхода.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if cfg.Version {
		printVersion(stdout)
		return 0
	}

	logFile, err := setupLogging(cfg.LogDir, cfg.Debug)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logFile.Close()

	if err = cfg.Validate(); err != nil {
		slog.Error("Некорректная конфигурация", "error", err)
		fmt.Fprintln(stderr, err)
		return 2
	}

	storage, err := newStorage(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	store := session.NewStore(storage)
	if err = store.Init(); err != nil {
		slog.Error("Не удалось загрузить сессию", "path", cfg.SessionPath, "error", err)
		fmt.Fprintln(stderr, err)
		return 1
	}

	slog.Info("Запуск LibAdmin",
		"server_url", cfg.ServerURL,
		"session_backend", cfg.SessionBackend,
		"session_path", cfg.SessionPath,
		"debug_mode", cfg.Debug,
	)
	client := api.NewHTTPClient(cfg.ServerURL, store)

	if len(cfg.Args) > 0 {
		if !cli.IsCommand(cfg.Args[0]) {
			fmt.Fprintf(stderr, "неизвестная команда %q (login, logout, whoami)\n", cfg.Args[0])
			return 2
		}
		app := cli.New(client, store, stdin, stdout)
		if err = app.Run(context.Background(), cfg.Args); err != nil {
			if !errors.Is(err, session.ErrNotAuthenticated) {
				fmt.Fprintln(stderr, err)
			}
			return 1
		}
		return 0
	}

	if err = tui.Start(client, store, cfg.ServerURL, cfg.Debug); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
