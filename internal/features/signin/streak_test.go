package signin

import (
	"testing"
	"time"
)

// 2024-01-01 — понедельник
func at(day string, hour int) time.Time {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantStart string
	}{
		{at("2024-01-01", 0), "2024-01-01"},
		{at("2024-01-03", 15), "2024-01-01"},
		{at("2024-01-07", 23), "2024-01-01"},
		{at("2024-01-08", 0), "2024-01-08"},
	}

	for _, tt := range tests {
		start, end := WeekBounds(tt.now)
		if got := start.Format(dayLayout); got != tt.wantStart {
			t.Errorf("WeekBounds(%v) start = %s, want %s", tt.now, got, tt.wantStart)
		}
		if want := start.AddDate(0, 0, 6).Add(8 * time.Hour); !end.Equal(want) {
			t.Errorf("WeekBounds(%v) end = %v, want %v", tt.now, end, want)
		}
	}
}

func TestWeeklyStreakAt(t *testing.T) {
	wed := at("2024-01-03", 10)

	tests := []struct {
		name string
		now  time.Time
		days []string
		want int
	}{
		{"нет отметок", wed, nil, 0},
		{"одна отметка", wed, []string{"2024-01-03"}, 1},
		{"три дня подряд", wed, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, 3},
		{"пропуск дня", wed, []string{"2024-01-01", "2024-01-03"}, 1},
		{"неотсортированная история", wed, []string{"2024-01-03", "2024-01-01", "2024-01-02"}, 3},
		{"дубль дня сбрасывает пару", wed, []string{"2024-01-01", "2024-01-01", "2024-01-02"}, 2},
		{"прошлая неделя не считается", wed, []string{"2023-12-30", "2023-12-31", "2024-01-01", "2024-01-02"}, 2},
		{"только прошлая неделя", wed, []string{"2023-12-29", "2023-12-30"}, 0},
		{"серия после пропуска", at("2024-01-05", 9), []string{"2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05"}, 2},
		{"нечитаемые дни пропускаются", wed, []string{"2024-01-02", "garbage", "2024-01-03"}, 2},
		{"воскресенье входит в неделю", at("2024-01-07", 23), []string{"2024-01-05", "2024-01-06", "2024-01-07"}, 3},
		{"понедельник начинает заново", at("2024-01-08", 9), []string{"2024-01-06", "2024-01-07", "2024-01-08"}, 1},
		{"полная неделя", at("2024-01-07", 12), []string{
			"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07",
		}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeklyStreakAt(tt.now, tt.days); got != tt.want {
				t.Errorf("WeeklyStreakAt(%v) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestWeeklyStreakAtDoesNotReorderInput(t *testing.T) {
	days := []string{"2024-01-03", "2024-01-01", "2024-01-02"}
	WeeklyStreakAt(at("2024-01-03", 10), days)
	if days[0] != "2024-01-03" || days[1] != "2024-01-01" {
		t.Errorf("входной срез изменён: %v", days)
	}
}
