package session

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"
	"github.com/tobischo/gokeepasslib/v3"

	"github.com/maynagashev/libadmin/internal/kdbx"
)

// KdbxStorage хранит данные сессии в CustomData зашифрованного файла KDBX.
// База открывается один раз и держится в памяти, каждая запись
// сохраняет файл целиком.
type KdbxStorage struct {
	mu       sync.Mutex
	path     string
	password string
	lock     *flock.Flock
	db       *gokeepasslib.Database
}

// NewKdbxStorage создает хранилище поверх файла KDBX.
func NewKdbxStorage(path, password string) *KdbxStorage {
	return &KdbxStorage{
		path:     path,
		password: password,
		lock:     flock.New(path + ".lock"),
	}
}

func (s *KdbxStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return "", false, err
	}
	return kdbx.Value(db, key)
}

func (s *KdbxStorage) Set(key, value string) error {
	return s.update(func(db *gokeepasslib.Database) error {
		return kdbx.SetValue(db, key, value)
	})
}

func (s *KdbxStorage) Delete(keys ...string) error {
	s.mu.Lock()
	missing := s.db == nil && !fileExists(s.path)
	s.mu.Unlock()
	if missing {
		return nil
	}
	return s.update(func(db *gokeepasslib.Database) error {
		return kdbx.RemoveValues(db, keys...)
	})
}

func (s *KdbxStorage) update(fn func(*gokeepasslib.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load()
	if err != nil {
		return err
	}
	if err = fn(db); err != nil {
		return err
	}

	if err = s.lock.Lock(); err != nil {
		return fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	defer s.lock.Unlock() //nolint:errcheck // Ошибка снятия блокировки не влияет на результат

	return kdbx.SaveFile(db, s.path, s.password)
}

// load открывает базу при первом обращении.
func (s *KdbxStorage) load() (*gokeepasslib.Database, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := kdbx.OpenOrCreate(s.path, s.password)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища сессии: %w", err)
	}
	s.db = db
	return db, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
