// Package signin — engine.go оркестрирует одну попытку отметки:
// чтение состояния → проверка права → обновление истории → серия → запись.
package signin

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/common"
)

// Engine — движок отметок поверх хранилища.
//
// Блокировок нет: две одновременные попытки одного пользователя могут обе
// пройти проверку и обе записаться, вторая запись перетрёт первую.
type Engine struct {
	store Store
	now   func() time.Time
}

// NewEngine создаёт движок. now — часы бота в его часовом поясе.
func NewEngine(store Store, now func() time.Time) *Engine {
	return &Engine{store: store, now: now}
}

// Now возвращает текущее время по часам движка.
func (e *Engine) Now() time.Time {
	return e.now()
}

// LoadState читает состояние пользователя.
// Повреждённая запись логируется и заменяется пустым состоянием.
// Остальные ошибки хранилища оборачиваются в common.ErrStorageUnavailable.
func (e *Engine) LoadState(ctx context.Context, userID int64) (*UserState, error) {
	state, err := e.store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrMalformedState) {
			log.WithError(err).WithField("user_id", userID).Warn("Повреждённая запись отметок, начинаем с пустой")
			return NewUserState(), nil
		}
		return nil, wrapStorage(err)
	}
	if state == nil {
		return NewUserState(), nil
	}
	return state, nil
}

// Attempt пытается записать отметку пользователя в момент now.
//
// Алгоритм:
//  1. Читаем состояние (нет записи → пустое)
//  2. Проверяем IsEligible по дню последней отметки
//  3. Нельзя → {Accepted: false}, состояние не меняется и не пишется
//  4. Можно → LastTime = now, Total++, история + now (не больше 50),
//     серия за неделю, запись целиком в хранилище
func (e *Engine) Attempt(ctx context.Context, userID int64, now time.Time) (*AttemptResult, error) {
	state, err := e.LoadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	stamp := MakeStamp(now)
	if !IsEligible(stamp, state.LastTime) {
		return &AttemptResult{Accepted: false, State: state}, nil
	}

	updated := state.Clone()
	updated.LastTime = &stamp
	updated.Total++
	updated.appendStamp(stamp)

	streak := WeeklyStreakAt(now, updated.Days())

	if err := e.store.Save(ctx, userID, updated); err != nil {
		return nil, wrapStorage(err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"day":     stamp.Day,
		"total":   updated.Total,
		"streak":  streak,
	}).Debug("Отметка записана")

	return &AttemptResult{Accepted: true, Streak: streak, State: updated}, nil
}

// WeeklyStreak считает недельную серию по часам движка.
func (e *Engine) WeeklyStreak(days []string) int {
	return WeeklyStreakAt(e.now(), days)
}

// Reset удаляет запись пользователя из хранилища.
func (e *Engine) Reset(ctx context.Context, userID int64) error {
	if err := e.store.Delete(ctx, userID); err != nil {
		return wrapStorage(err)
	}
	return nil
}

func wrapStorage(err error) error {
	if errors.Is(err, common.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
}
