package signin

import (
	"context"
	"strings"
	"testing"
)

func TestTextCalendar(t *testing.T) {
	history := []DateStamp{
		{Day: "2023-12-31", Time: "23:00"},
		{Day: "2024-01-01", Time: "09:00"},
		{Day: "2024-01-02", Time: "10:00"},
	}

	out, err := NewTextCalendar().RenderCalendar(context.Background(), history, at("2024-01-02", 10))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(out, "2024年1月\n日  一  二  三  四  五  六\n") {
		t.Errorf("заголовок:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("календарь должен заканчиваться пустой строкой: %q", out)
	}
	if n := strings.Count(out, "✓"); n != 2 {
		t.Errorf("отмечено %d дней, want 2 (декабрь не входит)", n)
	}
	if !strings.Contains(out, " 1✓") || !strings.Contains(out, " 2✓") {
		t.Errorf("нет отметок 1 и 2 января:\n%s", out)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n\n"), "\n")
	// Заголовок, дни недели и 5 недель: январь 2024 начинается в понедельник
	if len(lines) != 7 {
		t.Errorf("строк = %d, want 7:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "     1") {
		t.Errorf("1 января должно стоять во второй колонке: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], " 7 ") {
		t.Errorf("воскресенье 7 января должно начинать строку: %q", lines[3])
	}
}

func TestTextCalendarLeapFebruary(t *testing.T) {
	out, _ := NewTextCalendar().RenderCalendar(context.Background(), nil, at("2024-02-10", 0))
	if !strings.Contains(out, "29") || strings.Contains(out, "30") {
		t.Errorf("февраль 2024 должен заканчиваться 29-м:\n%s", out)
	}
}
