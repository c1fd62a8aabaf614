// Package signin — calendar.go рисует календарь отметок текущего месяца текстом.
package signin

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// TextCalendar — рендер календаря в виде текстовой сетки (неделя с воскресенья).
// Отмеченные дни помечаются символом Mark.
type TextCalendar struct {
	Mark string
}

// NewTextCalendar создаёт рендер с отметкой "✓".
func NewTextCalendar() *TextCalendar {
	return &TextCalendar{Mark: "✓"}
}

// RenderCalendar рисует месяц, в который попадает now.
//
//	2024年1月
//	日  一  二  三  四  五  六
//	     1✓  2✓  3   4   5   6
//	...
func (c *TextCalendar) RenderCalendar(ctx context.Context, history []DateStamp, now time.Time) (string, error) {
	checked := make(map[string]bool, len(history))
	for _, h := range history {
		checked[h.Day] = true
	}

	year, month, _ := now.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d年%d月\n", year, int(month))
	sb.WriteString("日  一  二  三  四  五  六\n")

	col := int(first.Weekday())
	sb.WriteString(strings.Repeat("    ", col))
	for day := 1; day <= lastDay; day++ {
		mark := " "
		if checked[first.AddDate(0, 0, day-1).Format(dayLayout)] {
			mark = c.Mark
		}
		fmt.Fprintf(&sb, "%2d%s", day, mark)

		col++
		if col == 7 {
			sb.WriteString("\n")
			col = 0
		} else if day < lastDay {
			sb.WriteString(" ")
		}
	}
	if col != 0 {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String(), nil
}
