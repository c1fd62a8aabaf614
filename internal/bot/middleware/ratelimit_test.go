package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, 10*time.Second, func() time.Time { return now })

	if !rl.Allow(1) || !rl.Allow(1) {
		t.Fatal("первые два запроса должны проходить")
	}
	if rl.Allow(1) {
		t.Fatal("третий запрос в окне должен блокироваться")
	}
	if !rl.Allow(2) {
		t.Fatal("лимит считается отдельно для каждого пользователя")
	}

	now = now.Add(11 * time.Second)
	if !rl.Allow(1) {
		t.Fatal("после окна запросы снова разрешены")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0, time.Second, time.Now)
	for i := 0; i < 100; i++ {
		if !rl.Allow(1) {
			t.Fatalf("запрос %d заблокирован при выключенном лимите", i)
		}
	}
}

func TestRateLimiterPrune(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rl := newRateLimiter(5, time.Minute, func() time.Time { return now })

	rl.Allow(1)
	now = now.Add(30 * time.Second)
	rl.Allow(2)
	now = now.Add(45 * time.Second)

	rl.prune()

	if _, ok := rl.requests[1]; ok {
		t.Error("пользователь 1 должен быть удалён")
	}
	if got := len(rl.requests[2]); got != 1 {
		t.Errorf("у пользователя 2 осталось %d запросов, want 1", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		limit int
		want  string
	}{
		{"签到", 50, "签到"},
		{"你今日已经签到过了哦", 4, "你今日已..."},
		{"hello", 5, "hello"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
		}
	}
}
