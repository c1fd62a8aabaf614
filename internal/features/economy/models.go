// Package economy ведёт баллы пользователей (积分): балансы и историю начислений.
// models.go описывает структуры для балансов и транзакций.
package economy

import "time"

// Balance представляет баланс пользователя.
// Каждый участник имеет ровно одну запись в таблице balances.
type Balance struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`      // Telegram user ID
	Balance     int64     `db:"balance"`      // Текущий баланс
	TotalEarned int64     `db:"total_earned"` // Сколько всего начислено
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Transaction — одно начисление баллов.
type Transaction struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	Amount          int64     `db:"amount"`           // Сумма (всегда положительная)
	TransactionType string    `db:"transaction_type"` // signin_reward, admin_give
	Description     string    `db:"description"`
	CreatedAt       time.Time `db:"created_at"`
}

// Типы транзакций
const (
	TxTypeSigninReward = "signin_reward" // Награда за отметку
	TxTypeAdminGive    = "admin_give"    // Выдача админом
)
