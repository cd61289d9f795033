// Package config собирает настройки клиента из флагов, переменных окружения
// и файла .env.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// Адрес API по умолчанию.
	DefaultServerURL = "http://127.0.0.1:8000/api"
	// Директория логов по умолчанию.
	DefaultLogDir = "logs"
	// Файл .env по умолчанию.
	DefaultEnvFile = ".env"

	BackendFile = "file"
	BackendKdbx = "kdbx"

	// Переменные окружения.
	EnvServerURL       = "LIBADMIN_SERVER_URL"
	EnvSessionBackend  = "LIBADMIN_SESSION_BACKEND"
	EnvSessionPath     = "LIBADMIN_SESSION_PATH"
	EnvSessionPassword = "LIBADMIN_SESSION_PASSWORD" //nolint:gosec // Имя переменной, не секрет
	EnvLogDir          = "LIBADMIN_LOG_DIR"

	appDirName = "libadmin"
)

// Config хранит настройки клиента.
type Config struct {
	ServerURL       string
	SessionBackend  string
	SessionPath     string
	SessionPassword string
	LogDir          string
	Debug           bool
	Version         bool
	// Args - аргументы после флагов (подкоманда и ее параметры).
	Args []string
}

// Load разбирает args (без имени программы).
// Приоритет: флаги, затем окружение, затем .env, затем значения по умолчанию.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	var envFile string

	flags := flag.NewFlagSet("libadmin", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&cfg.ServerURL, "server-url", "",
		fmt.Sprintf("Базовый URL API (env: %s, default: %s)", EnvServerURL, DefaultServerURL))
	flags.StringVar(&cfg.SessionBackend, "session-backend", "",
		fmt.Sprintf("Хранилище сессии: file или kdbx (env: %s)", EnvSessionBackend))
	flags.StringVar(&cfg.SessionPath, "session", "",
		fmt.Sprintf("Путь к файлу сессии (env: %s)", EnvSessionPath))
	flags.StringVar(&cfg.LogDir, "log-dir", "",
		fmt.Sprintf("Директория логов (env: %s, default: %s)", EnvLogDir, DefaultLogDir))
	flags.StringVar(&envFile, "env-file", DefaultEnvFile, "Путь к файлу .env")
	flags.BoolVar(&cfg.Debug, "debug", false, "Подробное логирование")
	flags.BoolVar(&cfg.Version, "version", false, "Показать версию и дату сборки")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("ошибка разбора флагов: %w", err)
	}
	cfg.Args = flags.Args()

	// godotenv не перезаписывает уже заданные переменные окружения
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения %s: %w", envFile, err)
	}

	applyEnv(&cfg.ServerURL, EnvServerURL, DefaultServerURL)
	applyEnv(&cfg.SessionBackend, EnvSessionBackend, BackendFile)
	applyEnv(&cfg.LogDir, EnvLogDir, DefaultLogDir)
	applyEnv(&cfg.SessionPath, EnvSessionPath, "")
	cfg.SessionPassword = os.Getenv(EnvSessionPassword)

	if cfg.SessionPath == "" {
		path, err := defaultSessionPath(cfg.SessionBackend)
		if err != nil {
			return nil, err
		}
		cfg.SessionPath = path
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("не указан URL API (--server-url или " + EnvServerURL + ")")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("некорректный URL API %q", c.ServerURL)
	}
	switch c.SessionBackend {
	case BackendFile:
	case BackendKdbx:
		if c.SessionPassword == "" {
			return errors.New("для хранилища kdbx нужен пароль (" + EnvSessionPassword + ")")
		}
	default:
		return fmt.Errorf("неизвестное хранилище сессии %q (file или kdbx)", c.SessionBackend)
	}
	if c.SessionPath == "" {
		return errors.New("не указан путь к файлу сессии (--session или " + EnvSessionPath + ")")
	}
	return nil
}

func applyEnv(dst *string, key, def string) {
	if *dst != "" {
		return
	}
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
		return
	}
	*dst = def
}

// defaultSessionPath возвращает путь в пользовательской директории настроек.
func defaultSessionPath(backend string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("не удалось определить директорию настроек: %w", err)
	}
	name := "session.json"
	if backend == BackendKdbx {
		name = "session.kdbx"
	}
	return filepath.Join(dir, appDirName, name), nil
}
