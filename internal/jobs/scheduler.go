// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежедневное напоминание об отметке
// в чате и ежечасную очистку просроченных админ-сессий.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// SessionCleaner закрывает просроченные админ-сессии.
type SessionCleaner interface {
	CleanupSessions(ctx context.Context) (int64, error)
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron         *cron.Cron
	loc          *time.Location
	reminderSpec string
	chatID       int64
	sessions     SessionCleaner
	sendFunc     func(chatID int64, text string)
}

// NewScheduler создаёт планировщик в часовом поясе отметок.
// Пустой reminderSpec отключает напоминания.
func NewScheduler(
	loc *time.Location,
	reminderSpec string,
	chatID int64,
	sessions SessionCleaner,
	sendFunc func(chatID int64, text string),
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		loc:          loc,
		reminderSpec: reminderSpec,
		chatID:       chatID,
		sessions:     sessions,
		sendFunc:     sendFunc,
	}
}

// Start регистрирует задачи и запускает cron.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.reminderSpec != "" {
		if _, err := s.cron.AddFunc(s.reminderSpec, func() {
			log.Debug("[CRON] Напоминание об отметке")
			s.sendFunc(s.chatID, ReminderText(time.Now().In(s.loc)))
		}); err != nil {
			return fmt.Errorf("некорректное расписание напоминаний %q: %w", s.reminderSpec, err)
		}
	}

	if s.sessions != nil {
		if _, err := s.cron.AddFunc("@hourly", func() {
			n, err := s.sessions.CleanupSessions(ctx)
			if err != nil {
				log.WithError(err).Error("[CRON] Ошибка очистки админ-сессий")
				return
			}
			if n > 0 {
				log.WithField("closed", n).Info("[CRON] Просроченные админ-сессии закрыты")
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.WithFields(log.Fields{
		"timezone": s.loc.String(),
		"reminder": s.reminderSpec,
	}).Info("Планировщик задач запущен")
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

// ReminderText возвращает текст напоминания. В понедельник
// напоминает, что недельная серия начинается заново.
func ReminderText(now time.Time) string {
	text := "⏰ 新的一天开始啦，记得发送 /签到 领取积分哦~"
	if now.Weekday() == time.Monday {
		text += "\n\n📅 新的一周开始了，连续签到天数已重新计算。"
	}
	return text
}
