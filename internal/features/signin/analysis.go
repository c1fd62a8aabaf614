// Package signin — analysis.go анализирует, в какое время суток пользователь обычно отмечается.
package signin

import (
	"fmt"
	"slices"
	"strings"
)

// minAnalysisEntries — анализ строится, только когда отметок больше этого числа.
const minAnalysisEntries = 10

// TimeBucket — интервал времени суток для анализа.
type TimeBucket string

const (
	BucketNight   TimeBucket = "night"
	BucketMorning TimeBucket = "morning"
	BucketNoon    TimeBucket = "noon"
	BucketNormal  TimeBucket = "normal"
)

// bucketOrder задаёт приоритет при равных счётчиках.
var bucketOrder = []TimeBucket{BucketNight, BucketMorning, BucketNoon, BucketNormal}

var bucketRemarks = map[TimeBucket][]string{
	BucketNight: {
		"您在最近大部分时间都是深夜签到，注意休息哦~",
		"您总在深夜里签到，是工作太晚了吗？",
	},
	BucketMorning: {
		"您最近常常是凌晨或者早上签到，请继续保持早起的好习惯嗯！",
		"看您最近签到的数据；似乎常常早起呢~ 继续保持！",
	},
	BucketNoon: {
		"您最近总在中午时段签到，注意好好吃饭哦~",
		"您常常在中午的时候签到，请一定要专心吃饭...",
	},
	BucketNormal: {
		"您最近的签到记录多在日常正常时段，闲暇时光记得也笑口常开哦~",
		"您最近的签到记录是在日常正常时段，注意劳逸结合。",
	},
}

// TimeProfile — распределение отметок по интервалам суток.
type TimeProfile struct {
	Counts map[TimeBucket]int
	Total  int
}

// BucketOf относит час к интервалу анализа.
func BucketOf(hour int) TimeBucket {
	switch {
	case slices.Contains(lateNightHours, hour):
		return BucketNight
	case slices.Contains(morningHours, hour):
		return BucketMorning
	case slices.Contains(noonHours, hour):
		return BucketNoon
	}
	return BucketNormal
}

// ProfileOf считает распределение по истории отметок.
// Записи с нечитаемым временем попадают в BucketNormal.
func ProfileOf(history []DateStamp) TimeProfile {
	p := TimeProfile{Counts: make(map[TimeBucket]int, len(bucketOrder))}
	for _, h := range history {
		p.Counts[BucketOf(h.Hour())]++
		p.Total++
	}
	return p
}

// Dominant возвращает самый частый интервал. При равенстве побеждает более ранний в bucketOrder.
func (p TimeProfile) Dominant() TimeBucket {
	best := bucketOrder[0]
	for _, b := range bucketOrder[1:] {
		if p.Counts[b] > p.Counts[best] {
			best = b
		}
	}
	return best
}

// Percent возвращает долю интервала в процентах с округлением вниз.
func (p TimeProfile) Percent(b TimeBucket) int {
	if p.Total == 0 {
		return 0
	}
	return p.Counts[b] * 100 / p.Total
}

// DescribeHabits формирует текст анализа времени отметок.
// pick выбирает одну из реплик для доминирующего интервала.
func DescribeHabits(history []DateStamp, pick func(n int) int) string {
	if len(history) <= minAnalysisEntries {
		return fmt.Sprintf("暂无签到评价，再签到10天后再分析。\n目前记录里签到了 %d 天", len(history))
	}

	p := ProfileOf(history)
	remarks := bucketRemarks[p.Dominant()]
	i := pick(len(remarks))
	if i < 0 || i >= len(remarks) {
		i = 0
	}

	var sb strings.Builder
	sb.WriteString(remarks[i])
	fmt.Fprintf(&sb, "\n\n 凌晨签到比例: %d%%", p.Percent(BucketMorning))
	fmt.Fprintf(&sb, "\n 深夜签到比例: %d%%", p.Percent(BucketNight))
	fmt.Fprintf(&sb, "\n 中午签到比例: %d%%", p.Percent(BucketNoon))
	fmt.Fprintf(&sb, "\n 正常时段签到比例: %d%%", p.Percent(BucketNormal))
	return sb.String()
}
