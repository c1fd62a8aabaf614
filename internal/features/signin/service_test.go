package signin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"serotonyl.ru/signin-bot/internal/common"
	"serotonyl.ru/signin-bot/internal/config"
)

type credit struct {
	userID      int64
	amount      int64
	description string
}

type fakeLedger struct {
	credits    []credit
	creditErr  error
	balanceErr error
}

func (l *fakeLedger) Credit(_ context.Context, userID, amount int64, description string) error {
	if l.creditErr != nil {
		return l.creditErr
	}
	l.credits = append(l.credits, credit{userID, amount, description})
	return nil
}

func (l *fakeLedger) Balance(_ context.Context, userID int64) (int64, error) {
	if l.balanceErr != nil {
		return 0, l.balanceErr
	}
	var sum int64
	for _, c := range l.credits {
		if c.userID == userID {
			sum += c.amount
		}
	}
	return sum, nil
}

type failingCalendar struct{}

func (failingCalendar) RenderCalendar(context.Context, []DateStamp, time.Time) (string, error) {
	return "", errors.New("no fonts")
}

// newTestService собирает сервис с управляемыми часами и базовой наградой 32.
func newTestService(ledger *fakeLedger, calendar CalendarRenderer) (*Service, *time.Time) {
	now := at("2024-01-01", 9)
	engine := NewEngine(newMemStore(), func() time.Time { return now })
	cfg := &config.Config{SigninMin: 20, SigninMax: 50}
	s := NewService(engine, ledger, NewFormatter("积分", Templates{}), calendar, cfg)
	s.roller = &Roller{intN: func(int) int { return 12 }}
	return s, &now
}

func TestCheckInFlow(t *testing.T) {
	ledger := &fakeLedger{}
	s, now := newTestService(ledger, nil)
	ctx := context.Background()

	reply, err := s.CheckIn(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !reply.Accepted || reply.Context.Kind != KindBase {
		t.Fatalf("первая отметка: %+v", reply)
	}
	if reply.Text != "上午好！签到成功，获得 32积分。" {
		t.Errorf("text = %q", reply.Text)
	}
	if reply.Context.AllPoints != 32 {
		t.Errorf("AllPoints = %d, want 32", reply.Context.AllPoints)
	}

	*now = at("2024-01-02", 13)
	reply, err = s.CheckIn(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	want := "中午好！签到成功，获得 32积分。\n\n因您本周连续签到 2 天，额外奖励您 10% 的积分。因此一共获得：35积分"
	if reply.Text != want {
		t.Errorf("text = %q, want %q", reply.Text, want)
	}
	if reply.Context.AllPoints != 67 {
		t.Errorf("AllPoints = %d, want 67", reply.Context.AllPoints)
	}

	*now = at("2024-01-02", 20)
	reply, err = s.CheckIn(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Accepted || reply.Text != "你今日已经签到过了哦~" {
		t.Errorf("повторная отметка: %+v", reply)
	}

	wantCredits := []credit{
		{7, 32, "签到奖励"},
		{7, 35, "签到奖励 - 本周连续2天"},
	}
	if len(ledger.credits) != len(wantCredits) {
		t.Fatalf("credits = %+v", ledger.credits)
	}
	for i, c := range wantCredits {
		if ledger.credits[i] != c {
			t.Errorf("credit[%d] = %+v, want %+v", i, ledger.credits[i], c)
		}
	}
}

func TestCheckInLedgerFailure(t *testing.T) {
	ledger := &fakeLedger{creditErr: errors.New("connection refused")}
	s, _ := newTestService(ledger, nil)
	ctx := context.Background()

	_, err := s.CheckIn(ctx, 7)
	if !errors.Is(err, common.ErrLedgerUnavailable) {
		t.Fatalf("error = %v, want ErrLedgerUnavailable", err)
	}

	// Отметка уже записана: повторная попытка в тот же день отклоняется
	reply, err := s.CheckIn(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Accepted {
		t.Error("отметка должна остаться записанной после ошибки начисления")
	}
}

func TestCheckInBalanceFailureIsNotFatal(t *testing.T) {
	s, _ := newTestService(&fakeLedger{balanceErr: errors.New("timeout")}, failingCalendar{})

	reply, err := s.CheckIn(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if !reply.Accepted || reply.Context.AllPoints != 0 || reply.Context.Calendar != "" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestCheckInWithCalendar(t *testing.T) {
	s, _ := newTestService(&fakeLedger{}, NewTextCalendar())

	reply, err := s.CheckIn(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(reply.Text, "2024年1月\n") || !strings.Contains(reply.Text, " 1✓") {
		t.Errorf("календарь не попал в ответ:\n%s", reply.Text)
	}
	if !strings.HasSuffix(reply.Text, "\n\n上午好！签到成功，获得 32积分。") {
		t.Errorf("text = %q", reply.Text)
	}
}

func TestHistory(t *testing.T) {
	s, now := newTestService(&fakeLedger{}, nil)
	ctx := context.Background()

	got, err := s.History(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got != "您并没有签到的历史数据，请 /签到 一下吧~" {
		t.Errorf("пустая история: %q", got)
	}

	for _, day := range []string{"2024-01-01", "2024-01-02"} {
		*now = at(day, 9)
		if _, err := s.CheckIn(ctx, 7); err != nil {
			t.Fatal(err)
		}
	}

	got, err = s.History(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	want := "暂无签到评价，再签到10天后再分析。\n目前记录里签到了 2 天\n\n本周连续签到: 2\n总签到次数: 2"
	if got != want {
		t.Errorf("History() = %q, want %q", got, want)
	}
}

func TestInspectAndReset(t *testing.T) {
	s, _ := newTestService(&fakeLedger{}, nil)
	ctx := context.Background()

	if _, err := s.CheckIn(ctx, 7); err != nil {
		t.Fatal(err)
	}
	info, err := s.Inspect(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(info, "2024-01-01 09:00") || !strings.Contains(info, "Всего отметок: 1") {
		t.Errorf("Inspect() = %q", info)
	}

	if err := s.Reset(ctx, 7); err != nil {
		t.Fatal(err)
	}
	reply, err := s.CheckIn(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !reply.Accepted {
		t.Error("после сброса отметка должна снова пройти")
	}
}

func TestFailureText(t *testing.T) {
	ledgerErr := errors.Join(common.ErrLedgerUnavailable, errors.New("x"))
	if got := failureText(ledgerErr); !strings.Contains(got, "积分发放失败") {
		t.Errorf("failureText(ledger) = %q", got)
	}
	if got := failureText(common.ErrStorageUnavailable); !strings.Contains(got, "暂时不可用") {
		t.Errorf("failureText(storage) = %q", got)
	}
}
