// Package signin — store_file.go хранит состояние каждого пользователя
// в отдельном JSON-файле <dir>/<user_id>.json.
package signin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// FileStore — файловое хранилище отметок.
type FileStore struct {
	dir string
}

// NewFileStore создаёт хранилище в каталоге dir. Каталог создаётся при первой записи.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(userID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(userID, 10)+".json")
}

// Load читает файл пользователя. Нет файла — пустое состояние.
func (s *FileStore) Load(ctx context.Context, userID int64) (*UserState, error) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewUserState(), nil
		}
		return nil, fmt.Errorf("ошибка чтения файла отметок (user_id=%d): %w", userID, err)
	}
	return decodeState(data)
}

// Save перезаписывает файл пользователя через временный файл и rename,
// чтобы оборванная запись не оставила половину JSON.
func (s *FileStore) Save(ctx context.Context, userID int64, state *UserState) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания каталога %s: %w", s.dir, err)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("ошибка сериализации отметок: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, strconv.FormatInt(userID, 10)+".*.tmp")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка записи файла отметок: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка записи файла отметок: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(userID)); err != nil {
		return fmt.Errorf("ошибка замены файла отметок: %w", err)
	}
	return nil
}

// Delete удаляет файл пользователя.
func (s *FileStore) Delete(ctx context.Context, userID int64) error {
	err := os.Remove(s.path(userID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка удаления файла отметок (user_id=%d): %w", userID, err)
	}
	return nil
}
