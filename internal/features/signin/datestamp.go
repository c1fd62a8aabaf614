// Package signin — datestamp.go формирует снимок текущего момента (день, время)
// и переводит строки дней во время для арифметики по дням.
package signin

import "time"

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04"

	// dayMs — сутки в миллисекундах, порог права на новую отметку.
	dayMs int64 = 86_400_000
)

// DateStamp — момент отметки по настенным часам бота.
type DateStamp struct {
	Day  string `json:"day"`  // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// MakeStamp формирует DateStamp из времени now.
// now уже должен быть в часовом поясе бота.
func MakeStamp(now time.Time) DateStamp {
	return DateStamp{
		Day:  now.Format(dayLayout),
		Time: now.Format(timeLayout),
	}
}

// parseDay разбирает строку дня как полночь по UTC.
// Календарные дни сравниваются без учёта переходов на летнее время:
// между соседними днями всегда ровно 24 часа.
func parseDay(day string) (time.Time, error) {
	return time.Parse(dayLayout, day)
}

// civilDay возвращает полночь календарного дня t в той же шкале, что и parseDay.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Hour возвращает час отметки или -1, если время не разбирается.
func (d DateStamp) Hour() int {
	t, err := time.Parse(timeLayout, d.Time)
	if err != nil {
		return -1
	}
	return t.Hour()
}
