package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	sessionFilePerm = 0600
	sessionDirPerm  = 0700
)

// FileStorage хранит пары ключ/значение в JSON файле.
// Доступ к файлу сериализуется рекомендательной блокировкой path+".lock".
type FileStorage struct {
	path string
	lock *flock.Flock
}

// NewFileStorage создает файловое хранилище по указанному пути.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path возвращает путь к файлу сессии.
func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Get(key string) (string, bool, error) {
	if err := s.ensureDir(); err != nil {
		return "", false, err
	}
	if err := s.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	defer s.lock.Unlock() //nolint:errcheck // Ошибка снятия блокировки не влияет на результат

	data, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (s *FileStorage) Set(key, value string) error {
	return s.update(func(data map[string]string) {
		data[key] = value
	})
}

func (s *FileStorage) Delete(keys ...string) error {
	return s.update(func(data map[string]string) {
		for _, k := range keys {
			delete(data, k)
		}
	})
}

// update выполняет чтение-изменение-запись под эксклюзивной блокировкой.
func (s *FileStorage) update(fn func(map[string]string)) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	defer s.lock.Unlock() //nolint:errcheck // Ошибка снятия блокировки не влияет на результат

	data, err := s.read()
	if err != nil {
		return err
	}
	fn(data)
	return s.write(data)
}

func (s *FileStorage) read() (map[string]string, error) {
	data := make(map[string]string)
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла сессии '%s': %w", s.path, err)
	}
	if len(raw) == 0 {
		return data, nil
	}
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("файл сессии '%s' поврежден: %w", s.path, err)
	}
	return data, nil
}

// write пишет во временный файл и переименовывает его поверх основного.
func (s *FileStorage) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка кодирования сессии: %w", err)
	}
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, raw, sessionFilePerm); err != nil {
		return fmt.Errorf("ошибка записи файла сессии: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("ошибка замены файла сессии: %w", err)
	}
	return nil
}

func (s *FileStorage) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, sessionDirPerm); err != nil {
		return fmt.Errorf("ошибка создания директории сессии '%s': %w", dir, err)
	}
	return nil
}
