package signin

import (
	"fmt"
	"testing"
)

func TestUserStateClone(t *testing.T) {
	orig := &UserState{
		LastTime: &DateStamp{Day: "2024-01-01", Time: "09:00"},
		Total:    1,
		History:  []DateStamp{{Day: "2024-01-01", Time: "09:00"}},
	}
	c := orig.Clone()
	c.LastTime.Day = "2024-01-02"
	c.History[0].Day = "2024-01-02"
	c.Total = 2

	if orig.LastTime.Day != "2024-01-01" || orig.History[0].Day != "2024-01-01" || orig.Total != 1 {
		t.Errorf("оригинал изменён через копию: %+v", orig)
	}
}

func TestAppendStampCapsHistory(t *testing.T) {
	s := NewUserState()
	for i := 0; i < HistoryLimit+5; i++ {
		s.appendStamp(DateStamp{Day: fmt.Sprintf("d%02d", i)})
	}
	if len(s.History) != HistoryLimit {
		t.Fatalf("len(History) = %d, want %d", len(s.History), HistoryLimit)
	}
	if s.History[0].Day != "d05" || s.History[HistoryLimit-1].Day != "d54" {
		t.Errorf("история должна хранить последние записи: first=%s last=%s",
			s.History[0].Day, s.History[HistoryLimit-1].Day)
	}
}

func TestUserStateDaysTimes(t *testing.T) {
	s := &UserState{History: []DateStamp{{"2024-01-01", "09:00"}, {"2024-01-02", "22:30"}}}
	days, times := s.Days(), s.Times()
	if len(days) != 2 || days[1] != "2024-01-02" || times[1] != "22:30" {
		t.Errorf("Days() = %v, Times() = %v", days, times)
	}
}
