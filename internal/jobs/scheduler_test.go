package jobs

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestReminderText(t *testing.T) {
	monday := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	if got := ReminderText(tuesday); strings.Contains(got, "新的一周") {
		t.Errorf("во вторник не должно быть упоминания недели: %q", got)
	}
	if got := ReminderText(monday); !strings.Contains(got, "新的一周") {
		t.Errorf("в понедельник нужно упомянуть новую неделю: %q", got)
	}
}

type nopCleaner struct{}

func (nopCleaner) CleanupSessions(context.Context) (int64, error) { return 0, nil }

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewScheduler(time.UTC, "not a cron spec", 1, nopCleaner{}, func(int64, string) {})
	if err := s.Start(context.Background()); err == nil {
		s.Stop()
		t.Fatal("ожидалась ошибка для некорректного расписания")
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(time.UTC, "0 9 * * *", 1, nopCleaner{}, func(int64, string) {})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Stop()
}
