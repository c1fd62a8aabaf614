// Package signin — eligibility.go решает, можно ли записать новую отметку.
package signin

// IsEligible сообщает, прошли ли полные сутки между днём последней отметки и текущим днём.
//
// Дни сравниваются как полночь своих дат, поэтому фактически правило такое:
// текущий день хотя бы на один календарный день позже дня последней отметки.
// Время суток не учитывается: две отметки в один день всегда отклоняются.
//
//	IsEligible({Day: "2024-01-02"}, &{Day: "2024-01-01"}) → true
//	IsEligible({Day: "2024-01-01"}, &{Day: "2024-01-01"}) → false
//	IsEligible({Day: "2024-01-01"}, nil)                  → true
func IsEligible(now DateStamp, last *DateStamp) bool {
	if last == nil || last.Day == "" {
		return true
	}

	lastDay, err := parseDay(last.Day)
	if err != nil {
		// Нечитаемая запись не должна навсегда блокировать отметки
		return true
	}
	nowDay, err := parseDay(now.Day)
	if err != nil {
		return false
	}

	return nowDay.Sub(lastDay).Milliseconds() >= dayMs
}
