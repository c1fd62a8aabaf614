// Package signin — store_sqlite.go хранит состояния во встроенной базе SQLite.
// Подходит для запуска на одной машине без отдельного сервера БД.
package signin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS signin_states (
    user_id    INTEGER PRIMARY KEY,
    last_day   TEXT,
    last_time  TEXT,
    total      INTEGER NOT NULL DEFAULT 0,
    history    TEXT NOT NULL DEFAULT '[]',
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore — хранилище отметок в SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore открывает (или создаёт) базу по пути path и накатывает схему.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ошибка создания каталога базы: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия SQLite: %w", err)
	}
	// SQLite не любит параллельных писателей
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка создания схемы SQLite: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close закрывает базу.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load возвращает состояние пользователя. Нет строки — пустое состояние.
func (s *SQLiteStore) Load(ctx context.Context, userID int64) (*UserState, error) {
	var (
		lastDay, lastTime sql.NullString
		total             int
		history           string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT last_day, last_time, total, history FROM signin_states WHERE user_id = ?`, userID,
	).Scan(&lastDay, &lastTime, &total, &history)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewUserState(), nil
		}
		return nil, fmt.Errorf("ошибка чтения отметок (user_id=%d): %w", userID, err)
	}

	stamps, err := decodeHistory([]byte(history))
	if err != nil {
		return nil, err
	}
	return &UserState{
		LastTime: decodeLastTime(nullable(lastDay), nullable(lastTime)),
		Total:    total,
		History:  stamps,
	}, nil
}

// Save вставляет или целиком заменяет строку пользователя.
func (s *SQLiteStore) Save(ctx context.Context, userID int64, state *UserState) error {
	history, err := encodeHistory(state.History)
	if err != nil {
		return fmt.Errorf("ошибка сериализации истории: %w", err)
	}
	lastDay, lastTime := splitLastTime(state.LastTime)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO signin_states (user_id, last_day, last_time, total, history, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
		    last_day = excluded.last_day,
		    last_time = excluded.last_time,
		    total = excluded.total,
		    history = excluded.history,
		    updated_at = CURRENT_TIMESTAMP
	`, userID, nullString(lastDay), nullString(lastTime), state.Total, string(history))
	if err != nil {
		return fmt.Errorf("ошибка записи отметок (user_id=%d): %w", userID, err)
	}
	return nil
}

// Delete удаляет строку пользователя.
func (s *SQLiteStore) Delete(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM signin_states WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("ошибка удаления отметок (user_id=%d): %w", userID, err)
	}
	return nil
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
