// Package members — repository.go отвечает за операции с таблицей members.
package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/signin-bot/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Upsert добавляет участника или обновляет его имя и username.
func (r *Repository) Upsert(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, m.UserID, m.Username, m.FirstName, m.LastName); err != nil {
		return fmt.Errorf("ошибка создания/обновления участника: %w", err)
	}
	return nil
}

// GetByUserID: если не найден — ошибка с common.ErrUserNotFound.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Member, error) {
	return r.getOne(ctx, `WHERE user_id = $1`, userID)
}

// GetByUsername ищет участника без учёта регистра.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Member, error) {
	return r.getOne(ctx, `WHERE LOWER(username) = LOWER($1)`, username)
}

func (r *Repository) getOne(ctx context.Context, where string, arg any) (*Member, error) {
	query := `
		SELECT id, user_id, COALESCE(username, ''), first_name, COALESCE(last_name, ''), joined_at, updated_at
		FROM members ` + where
	var m Member
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.UserID, &m.Username, &m.FirstName, &m.LastName, &m.JoinedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w (%v): %w", common.ErrUserNotFound, arg, err)
		}
		return nil, fmt.Errorf("ошибка чтения участника (%v): %w", arg, err)
	}
	return &m, nil
}

func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE user_id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования: %w", err)
	}
	return exists, nil
}
