// Package admin — repository.go работает с таблицами admin_sessions и admin_login_attempts.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с админ-таблицами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSession создаёт новую сессию администратора.
func (r *Repository) CreateSession(ctx context.Context, session *AdminSession) error {
	query := `
		INSERT INTO admin_sessions (user_id, session_token, expires_at, is_active)
		VALUES ($1, $2, $3, TRUE)
	`
	if _, err := r.db.Exec(ctx, query, session.UserID, session.SessionToken, session.ExpiresAt); err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

// HasActiveSession проверяет наличие непросроченной активной сессии.
func (r *Repository) HasActiveSession(ctx context.Context, userID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM admin_sessions
			WHERE user_id = $1 AND is_active = TRUE AND expires_at > NOW()
		)
	`
	var ok bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("ошибка проверки сессии: %w", err)
	}
	return ok, nil
}

// DeactivateSessions закрывает все сессии пользователя.
func (r *Repository) DeactivateSessions(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1`, userID)
	return err
}

// DeactivateExpired закрывает просроченные сессии. Возвращает число закрытых.
func (r *Repository) DeactivateExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE admin_sessions SET is_active = FALSE
		WHERE is_active = TRUE AND expires_at <= NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка закрытия просроченных сессий: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateActivity обновляет время последней активности.
func (r *Repository) UpdateActivity(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE admin_sessions SET last_activity = NOW() WHERE user_id = $1 AND is_active = TRUE`, userID)
	return err
}

// LogAttempt записывает попытку входа.
func (r *Repository) LogAttempt(ctx context.Context, userID int64, success bool) error {
	_, err := r.db.Exec(ctx, `INSERT INTO admin_login_attempts (user_id, success) VALUES ($1, $2)`, userID, success)
	return err
}

// CountFailedAttempts возвращает число неудачных попыток за период.
func (r *Repository) CountFailedAttempts(ctx context.Context, userID int64, period time.Duration) (int, error) {
	query := `
		SELECT COUNT(*) FROM admin_login_attempts
		WHERE user_id = $1 AND success = FALSE AND attempt_time >= $2
	`
	var count int
	err := r.db.QueryRow(ctx, query, userID, time.Now().Add(-period)).Scan(&count)
	return count, err
}
