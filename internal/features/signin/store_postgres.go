// Package signin — store_postgres.go хранит состояния в таблице signin_states.
package signin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore — хранилище отметок в PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore создаёт хранилище поверх пула соединений.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load возвращает состояние пользователя. Нет строки — пустое состояние.
func (r *PostgresStore) Load(ctx context.Context, userID int64) (*UserState, error) {
	query := `
		SELECT last_day, last_time, total, history
		FROM signin_states
		WHERE user_id = $1
	`
	var (
		lastDay, lastTime *string
		total             int
		history           []byte
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(&lastDay, &lastTime, &total, &history)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NewUserState(), nil
		}
		return nil, fmt.Errorf("ошибка чтения отметок (user_id=%d): %w", userID, err)
	}

	stamps, err := decodeHistory(history)
	if err != nil {
		return nil, err
	}
	return &UserState{
		LastTime: decodeLastTime(lastDay, lastTime),
		Total:    total,
		History:  stamps,
	}, nil
}

// Save вставляет или целиком заменяет строку пользователя.
func (r *PostgresStore) Save(ctx context.Context, userID int64, state *UserState) error {
	history, err := encodeHistory(state.History)
	if err != nil {
		return fmt.Errorf("ошибка сериализации истории: %w", err)
	}
	lastDay, lastTime := splitLastTime(state.LastTime)

	query := `
		INSERT INTO signin_states (user_id, last_day, last_time, total, history, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET last_day = EXCLUDED.last_day,
		    last_time = EXCLUDED.last_time,
		    total = EXCLUDED.total,
		    history = EXCLUDED.history,
		    updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, userID, lastDay, lastTime, state.Total, history); err != nil {
		return fmt.Errorf("ошибка записи отметок (user_id=%d): %w", userID, err)
	}
	return nil
}

// Delete удаляет строку пользователя.
func (r *PostgresStore) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM signin_states WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка удаления отметок (user_id=%d): %w", userID, err)
	}
	return nil
}
