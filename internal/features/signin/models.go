// Package signin реализует ежедневные отметки (签到): проверку права на отметку,
// подсчёт недельной серии, расчёт награды и рендер ответа по шаблону.
// models.go описывает состояние пользователя и контекст рендера.
package signin

// HistoryLimit — сколько последних отметок хранится в истории пользователя.
// Более старые вытесняются по FIFO. Счётчик Total этим лимитом не ограничен.
const HistoryLimit = 50

// UserState — сохраняемая запись отметок одного пользователя.
// JSON-форма совпадает с файлом <user_id>.json файлового хранилища.
type UserState struct {
	LastTime *DateStamp  `json:"lastTime"` // Последняя успешная отметка (nil — ещё не отмечался)
	Total    int         `json:"total"`    // Всего успешных отметок за всё время
	History  []DateStamp `json:"history"`  // Последние отметки в хронологическом порядке
}

// NewUserState возвращает пустое состояние для пользователя без записей.
func NewUserState() *UserState {
	return &UserState{History: []DateStamp{}}
}

// Clone возвращает независимую копию состояния.
// Движок мутирует копию и отдаёт её хранилищу целиком.
func (s *UserState) Clone() *UserState {
	out := &UserState{Total: s.Total, History: make([]DateStamp, len(s.History))}
	copy(out.History, s.History)
	if s.LastTime != nil {
		last := *s.LastTime
		out.LastTime = &last
	}
	return out
}

// Days возвращает дни истории в виде строк YYYY-MM-DD.
func (s *UserState) Days() []string {
	days := make([]string, len(s.History))
	for i, h := range s.History {
		days[i] = h.Day
	}
	return days
}

// Times возвращает время отметок истории в виде строк HH:MM.
func (s *UserState) Times() []string {
	times := make([]string, len(s.History))
	for i, h := range s.History {
		times[i] = h.Time
	}
	return times
}

// appendStamp добавляет отметку и вытесняет самые старые записи сверх HistoryLimit.
func (s *UserState) appendStamp(stamp DateStamp) {
	s.History = append(s.History, stamp)
	if over := len(s.History) - HistoryLimit; over > 0 {
		s.History = append([]DateStamp(nil), s.History[over:]...)
	}
}

// Kind — тип ответа на попытку отметки.
type Kind string

const (
	KindBase       Kind = "base"       // Обычная отметка без бонуса
	KindContinuous Kind = "continuous" // Отметка с бонусом за серию
	KindRepeat     Kind = "repeat"     // Уже отмечался сегодня
)

// RenderContext — данные одной попытки отметки для подстановки в шаблон.
// Нигде не сохраняется.
type RenderContext struct {
	Kind      Kind
	Greeting  string // Приветствие по времени суток (%sayHi%)
	Points    int64  // Базовая награда
	Day       int    // Длина серии, только для KindContinuous
	AddPoints int64  // Награда с бонусом, только для KindContinuous
	AddRatio  int    // Бонус в процентах, только для KindContinuous
	AllPoints int64  // Баланс пользователя после начисления
	Calendar  string // Отрисованный календарь или пустая строка
}

// AttemptResult — итог Engine.Attempt.
// Streak равен 0, если отметка отклонена.
type AttemptResult struct {
	Accepted bool
	Streak   int
	State    *UserState
}
