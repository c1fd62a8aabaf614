// Package common содержит общие утилиты, используемые во всём проекте:
// работа с часовым поясом бота и форматирование баллов.
package common

import (
	"fmt"
	"time"
)

// LoadLocation загружает часовой пояс по имени.
// Если tzdata недоступна — откатывается на UTC+8 (Asia/Shanghai без переходов).
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// Clock возвращает функцию текущего времени в заданном часовом поясе.
// Движок отметок получает её снаружи, чтобы тесты могли подставить фиксированное время.
func Clock(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FormatPoints форматирует сумму с названием баллов.
// Пример: FormatPoints(32, "积分") → "32积分"
func FormatPoints(amount int64, unit string) string {
	return fmt.Sprintf("%d%s", amount, unit)
}

// FormatSignedPoints создаёт строку вида "+100积分" или "-50积分".
func FormatSignedPoints(amount int64, unit string) string {
	if amount >= 0 {
		return "+" + FormatPoints(amount, unit)
	}
	return FormatPoints(amount, unit)
}

// FormatNumber форматирует число с разделителями тысяч (запятыми).
// Пример: FormatNumber(2350) → "2,350"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatNumber(n/1000), n%1000)
}

// FormatDateTime форматирует время в формат "2006-01-02 15:04" в часовом поясе loc.
// Используется для отображения дат транзакций.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}
