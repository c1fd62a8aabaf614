// Package signin — greeting.go выбирает приветствие по часу отметки.
package signin

import "slices"

var (
	lateNightHours = []int{22, 23, 24, 1, 2, 3, 4} // 深夜
	morningHours   = []int{5, 6, 7}                // 早上
	noonHours      = []int{12, 13}                 // 中午
	forenoonHours  = []int{8, 9, 10, 11}           // 上午
	afternoonHours = []int{14, 15, 16, 17, 18, 19} // 下午
	eveningHours   = []int{20, 21}                 // 晚上
)

// SayHi возвращает приветствие для часа hour (0–23).
// Час 0 ни в один интервал не входит и получает приветствие по умолчанию.
func SayHi(hour int) string {
	switch {
	case slices.Contains(lateNightHours, hour):
		return "深夜好,注意休息哦~"
	case slices.Contains(morningHours, hour):
		return "早上好！"
	case slices.Contains(noonHours, hour):
		return "中午好！"
	case slices.Contains(afternoonHours, hour):
		return "下午好！"
	case slices.Contains(forenoonHours, hour):
		return "上午好！"
	case slices.Contains(eveningHours, hour):
		return "晚上好！"
	}
	return "好久不见~"
}
