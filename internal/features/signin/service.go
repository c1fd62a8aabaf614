// Package signin — service.go содержит бизнес-логику команд отметки:
// отметка с начислением баллов, история с анализом и админские операции.
package signin

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/common"
	"serotonyl.ru/signin-bot/internal/config"
)

// Service связывает движок отметок с начислением баллов и рендером ответа.
type Service struct {
	engine    *Engine          // Движок отметок поверх хранилища
	ledger    Ledger           // Сервис экономики для начисления баллов
	formatter *Formatter       // Шаблоны ответов
	calendar  CalendarRenderer // nil — календарь выключен
	roller    *Roller          // Случайная базовая награда
	cfg       *config.Config
}

// NewService создаёт сервис отметок. calendar может быть nil.
func NewService(engine *Engine, ledger Ledger, formatter *Formatter, calendar CalendarRenderer, cfg *config.Config) *Service {
	return &Service{
		engine:    engine,
		ledger:    ledger,
		formatter: formatter,
		calendar:  calendar,
		roller:    NewRoller(),
		cfg:       cfg,
	}
}

// CheckInReply — результат команды 签到.
type CheckInReply struct {
	Accepted bool
	Text     string
	Context  RenderContext
}

// CheckIn обрабатывает команду 签到.
//
// Алгоритм:
//  1. Engine.Attempt — если уже отмечался, рендерим шаблон repeat
//  2. Базовая награда — случайное число из [SIGNIN_MIN, SIGNIN_MAX)
//  3. Серия > 1 — добавляем бонус по BonusRatio, тип continuous
//  4. Начисляем баллы (только после успешной отметки)
//  5. Календарь, если включён; ошибка календаря не фатальна
//  6. Рендерим шаблон
func (s *Service) CheckIn(ctx context.Context, userID int64) (*CheckInReply, error) {
	now := s.engine.Now()
	res, err := s.engine.Attempt(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	greeting := SayHi(now.Hour())
	if !res.Accepted {
		rc := RenderContext{Kind: KindRepeat, Greeting: greeting}
		return &CheckInReply{Accepted: false, Text: s.formatter.RenderKind(rc), Context: rc}, nil
	}

	base := s.roller.Roll(s.cfg.SigninMin, s.cfg.SigninMax)
	rc := RenderContext{Kind: KindBase, Greeting: greeting, Points: base}
	amount := base
	description := "签到奖励"

	if res.Streak > 1 {
		ratio := BonusRatio(res.Streak)
		amount = WithBonus(base, ratio)
		rc.Kind = KindContinuous
		rc.Day = res.Streak
		rc.AddPoints = amount
		rc.AddRatio = RatioPercent(ratio)
		description = fmt.Sprintf("签到奖励 - 本周连续%d天", res.Streak)
	}

	if err := s.ledger.Credit(ctx, userID, amount, description); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка начисления баллов за отметку")
		return nil, fmt.Errorf("%w: %w", common.ErrLedgerUnavailable, err)
	}

	if balance, err := s.ledger.Balance(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось получить баланс после начисления")
	} else {
		rc.AllPoints = balance
	}

	rc.Calendar = s.renderCalendar(ctx, userID, res.State.History, now)

	log.WithFields(log.Fields{
		"user_id": userID,
		"streak":  res.Streak,
		"points":  base,
		"amount":  amount,
	}).Info("Отметка засчитана")

	return &CheckInReply{Accepted: true, Text: s.formatter.RenderKind(rc), Context: rc}, nil
}

// History обрабатывает команду 签到历史: анализ времени отметок, серия и общее число.
func (s *Service) History(ctx context.Context, userID int64) (string, error) {
	state, err := s.engine.LoadState(ctx, userID)
	if err != nil {
		return "", err
	}
	if state.LastTime == nil {
		return "您并没有签到的历史数据，请 /签到 一下吧~", nil
	}

	now := s.engine.Now()
	habits := DescribeHabits(state.History, s.roller.Pick)
	week := s.engine.WeeklyStreak(state.Days())

	return s.renderCalendar(ctx, userID, state.History, now) + habits +
		fmt.Sprintf("\n\n本周连续签到: %d\n总签到次数: %d", week, state.Total), nil
}

// Inspect возвращает краткую сводку по записи пользователя (для админки).
func (s *Service) Inspect(ctx context.Context, userID int64) (string, error) {
	state, err := s.engine.LoadState(ctx, userID)
	if err != nil {
		return "", err
	}
	last := "—"
	if state.LastTime != nil {
		last = state.LastTime.Day + " " + state.LastTime.Time
	}
	return fmt.Sprintf("user_id: %d\nПоследняя отметка: %s\nВсего отметок: %d\nВ истории: %d\nСерия за неделю: %d",
		userID, last, state.Total, len(state.History), s.engine.WeeklyStreak(state.Days())), nil
}

// Reset удаляет запись отметок пользователя.
func (s *Service) Reset(ctx context.Context, userID int64) error {
	if err := s.engine.Reset(ctx, userID); err != nil {
		return err
	}
	log.WithField("user_id", userID).Info("Запись отметок удалена")
	return nil
}

func (s *Service) renderCalendar(ctx context.Context, userID int64, history []DateStamp, now time.Time) string {
	if s.calendar == nil {
		return ""
	}
	img, err := s.calendar.RenderCalendar(ctx, history, now)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось отрисовать календарь")
		return ""
	}
	return img
}
