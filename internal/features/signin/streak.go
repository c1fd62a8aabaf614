// Package signin — streak.go считает серию отметок подряд в пределах текущей недели.
package signin

import (
	"math"
	"sort"
	"time"
)

// weekEndTolerance — запас после полуночи воскресенья,
// чтобы поздняя воскресная отметка всё ещё считалась этой неделей.
const weekEndTolerance = 8 * time.Hour

// WeekBounds возвращает границы недели, в которую попадает now:
// понедельник 00:00 и воскресенье 00:00 + 8 часов. Обе границы включительно.
func WeekBounds(now time.Time) (start, end time.Time) {
	today := civilDay(now)
	offset := int(today.Weekday()) - 1
	if today.Weekday() == time.Sunday {
		offset = 6
	}
	start = today.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6).Add(weekEndTolerance)
	return start, end
}

// WeeklyStreakAt считает серию отметок за неделю, содержащую now.
//
// Алгоритм:
//  1. Сортируем дни по времени (стабильно)
//  2. Оставляем только дни текущей недели
//  3. Одна отметка за неделю → 1
//  4. Идём по соседним парам: разница ровно в 1 день увеличивает счётчик,
//     любая другая (0 — дубль, >1 — пропуск) сбрасывает его в 0
//  5. Возвращаем счётчик + 1 (первый день серии парами не считается)
//
// Серия заканчивается на последней отметке недели, не обязательно сегодня.
// Нет отметок за неделю → 0. Нечитаемые строки дней пропускаются.
func WeeklyStreakAt(now time.Time, days []string) int {
	start, end := WeekBounds(now)

	parsed := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := parseDay(d)
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	week := parsed[:0]
	for _, t := range parsed {
		if !t.Before(start) && !t.After(end) {
			week = append(week, t)
		}
	}

	switch len(week) {
	case 0:
		return 0
	case 1:
		return 1
	}

	consecutive := 0
	for i := 0; i < len(week)-1; i++ {
		diff := math.Abs(float64(week[i+1].Sub(week[i]).Milliseconds()))
		if int(math.Ceil(diff/float64(dayMs))) == 1 {
			consecutive++
		} else {
			consecutive = 0
		}
	}

	return consecutive + 1
}
