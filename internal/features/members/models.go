// Package members ведёт реестр участников чата.
// models.go описывает запись таблицы members.
package members

import "time"

// Member — участник чата.
// Запись создаётся при вступлении в SIGNIN_CHAT_ID или при первом сообщении боту.
type Member struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`    // Telegram user ID (уникальный)
	Username  string    `db:"username"`   // @username (может быть пустым)
	FirstName string    `db:"first_name"` // Имя пользователя
	LastName  string    `db:"last_name"`  // Фамилия (может быть пустой)
	JoinedAt  time.Time `db:"joined_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DisplayName возвращает @username или имя с фамилией.
func (m *Member) DisplayName() string {
	if m.Username != "" {
		return "@" + m.Username
	}
	name := m.FirstName
	if m.LastName != "" {
		name += " " + m.LastName
	}
	return name
}
