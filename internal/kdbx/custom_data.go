package kdbx

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tobischo/gokeepasslib/v3"
	"github.com/tobischo/gokeepasslib/v3/wrappers"
)

// KeyPrefix добавляется к ключам CustomData, чтобы не пересекаться с чужими данными.
const KeyPrefix = "LibAdmin."

var errNoMeta = errors.New("база данных, ее содержимое или метаданные не инициализированы")

func hasMeta(db *gokeepasslib.Database) bool {
	return db != nil && db.Content != nil && db.Content.Meta != nil
}

// SetValue обновляет или добавляет значение в CustomData метаданных базы.
func SetValue(db *gokeepasslib.Database, key, value string) error {
	if !hasMeta(db) {
		return errNoMeta
	}
	meta := db.Content.Meta
	fullKey := KeyPrefix + key

	for i := range meta.CustomData {
		if meta.CustomData[i].Key == fullKey {
			if meta.CustomData[i].Value == value {
				return nil
			}
			meta.CustomData[i].Value = value
			touchRoot(db)
			slog.Debug("Обновлено значение CustomData", "key", fullKey)
			return nil
		}
	}

	meta.CustomData = append(meta.CustomData, gokeepasslib.CustomData{
		Key:   fullKey,
		Value: value,
	})
	touchRoot(db)
	slog.Debug("Добавлено новое значение CustomData", "key", fullKey)
	return nil
}

// Value возвращает значение из CustomData и флаг его наличия.
func Value(db *gokeepasslib.Database, key string) (string, bool, error) {
	if !hasMeta(db) {
		return "", false, errNoMeta
	}
	fullKey := KeyPrefix + key
	for _, item := range db.Content.Meta.CustomData {
		if item.Key == fullKey {
			return item.Value, true, nil
		}
	}
	return "", false, nil
}

// RemoveValues удаляет значения из CustomData по ключам.
func RemoveValues(db *gokeepasslib.Database, keys ...string) error {
	if !hasMeta(db) {
		return errNoMeta
	}
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[KeyPrefix+k] = struct{}{}
	}

	meta := db.Content.Meta
	kept := make([]gokeepasslib.CustomData, 0, len(meta.CustomData))
	for _, item := range meta.CustomData {
		if _, ok := drop[item.Key]; !ok {
			kept = append(kept, item)
		}
	}
	if len(kept) != len(meta.CustomData) {
		meta.CustomData = kept
		touchRoot(db)
		slog.Debug("Удалены значения из CustomData", "keys", keys)
	}
	return nil
}

// touchRoot обновляет время модификации корневой группы.
func touchRoot(db *gokeepasslib.Database) {
	if db.Content.Root == nil || len(db.Content.Root.Groups) == 0 {
		slog.Warn("Не удалось обновить LastModificationTime: корневая группа отсутствует")
		return
	}
	modTime := wrappers.TimeWrapper{Time: time.Now().UTC()}
	db.Content.Root.Groups[0].Times.LastModificationTime = &modTime
}
