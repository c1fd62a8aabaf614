// Package signin — store.go описывает внешних соавторов движка:
// хранилище состояний, реестр баллов и рендер календаря.
package signin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"serotonyl.ru/signin-bot/internal/common"
)

// Store хранит UserState по user_id.
// Реализации: FileStore (JSON-файл на пользователя), PostgresStore и SQLiteStore (таблица по ключу).
type Store interface {
	// Load возвращает состояние пользователя.
	// Если записи нет — пустое состояние без ошибки.
	// Нечитаемая запись — ошибка, оборачивающая common.ErrMalformedState.
	Load(ctx context.Context, userID int64) (*UserState, error)
	// Save целиком заменяет запись пользователя.
	Save(ctx context.Context, userID int64, state *UserState) error
	// Delete удаляет запись пользователя. Отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, userID int64) error
}

// Ledger начисляет баллы после успешной отметки.
type Ledger interface {
	Credit(ctx context.Context, userID int64, amount int64, description string) error
	Balance(ctx context.Context, userID int64) (int64, error)
}

// CalendarRenderer рисует календарь отметок.
// Ошибка или пустой результат означают «без картинки», отметку это не ломает.
type CalendarRenderer interface {
	RenderCalendar(ctx context.Context, history []DateStamp, now time.Time) (string, error)
}

// decodeState разбирает JSON-запись. Пустой объект {} — это пустое состояние.
func decodeState(data []byte) (*UserState, error) {
	state := NewUserState()
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedState, err)
	}
	if state.History == nil {
		state.History = []DateStamp{}
	}
	if state.Total < 0 {
		return nil, fmt.Errorf("%w: отрицательный total %d", common.ErrMalformedState, state.Total)
	}
	return state, nil
}

// encodeHistory сериализует историю для колонок JSON в табличных хранилищах.
func encodeHistory(history []DateStamp) ([]byte, error) {
	if history == nil {
		history = []DateStamp{}
	}
	return json.Marshal(history)
}

// decodeLastTime собирает LastTime из колонок last_day / last_time.
func decodeLastTime(day, hm *string) *DateStamp {
	if day == nil || *day == "" {
		return nil
	}
	stamp := &DateStamp{Day: *day}
	if hm != nil {
		stamp.Time = *hm
	}
	return stamp
}

// splitLastTime раскладывает LastTime на колонки last_day / last_time.
func splitLastTime(last *DateStamp) (day, hm *string) {
	if last == nil {
		return nil, nil
	}
	d, t := last.Day, last.Time
	return &d, &t
}

// decodeHistory разбирает колонку истории табличных хранилищ.
func decodeHistory(raw []byte) ([]DateStamp, error) {
	history := []DateStamp{}
	if len(raw) == 0 {
		return history, nil
	}
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("%w: history: %v", common.ErrMalformedState, err)
	}
	return history, nil
}
