// Package admin реализует админ-команды с парольной аутентификацией.
// models.go описывает сессии и попытки входа.
package admin

import "time"

// AdminSession — активная сессия администратора.
type AdminSession struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// Параметры защиты входа
const (
	SessionTTL       = 24 * time.Hour // Время жизни сессии
	MaxFailedLogins  = 3              // Неудачных попыток до блокировки
	FailedLoginsSpan = time.Hour      // Окно подсчёта неудачных попыток
)

// Command — разобранная админ-команда из лички.
type Command struct {
	Name string
	Args []string
}
