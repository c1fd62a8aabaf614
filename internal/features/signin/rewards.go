// Package signin — rewards.go содержит расчёт награды за отметку.
package signin

import (
	"math"
	"math/rand/v2"
)

// BonusRatios — доля бонуса к базовой награде по длине серии.
// Индекс = длина серии - 1. С 7-го дня и далее — 50%.
//
//	День 1: 0%
//	День 2: 10%
//	День 3: 10%
//	День 4: 20%
//	День 5: 30%
//	День 6+: 50%
var BonusRatios = []float64{0, 0.1, 0.1, 0.2, 0.3, 0.5, 0.5}

// BonusRatio возвращает долю бонуса для серии streakLen.
// Серия 0 или 1 бонуса не даёт.
func BonusRatio(streakLen int) float64 {
	i := streakLen - 1
	if i < 0 {
		return 0
	}
	if i >= len(BonusRatios) {
		i = len(BonusRatios) - 1
	}
	return BonusRatios[i]
}

// WithBonus возвращает награду с бонусом: base + floor(base * ratio).
func WithBonus(base int64, ratio float64) int64 {
	return base + int64(math.Floor(float64(base)*ratio))
}

// RatioPercent переводит долю бонуса в целые проценты для показа.
func RatioPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// Roller выдаёт случайную базовую награду.
type Roller struct {
	intN func(n int) int
}

// NewRoller создаёт генератор на общем источнике math/rand/v2.
func NewRoller() *Roller {
	return &Roller{intN: rand.IntN}
}

// Roll возвращает случайное целое из [min, max).
// Если max <= min — возвращает min.
func (r *Roller) Roll(min, max int) int64 {
	if max <= min {
		return int64(min)
	}
	return int64(min + r.intN(max-min))
}

// Pick возвращает случайный индекс из [0, n). Нужен для выбора реплик анализа.
func (r *Roller) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return r.intN(n)
}
