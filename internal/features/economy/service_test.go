package economy

import (
	"errors"
	"testing"
	"time"

	"serotonyl.ru/signin-bot/internal/common"
)

func TestFormatHistory(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)

	if got := FormatHistory(nil, "积分", loc); got != "📋 暂无积分记录" {
		t.Errorf("пустая история = %q", got)
	}

	txs := []*Transaction{
		{Amount: 35, Description: "签到奖励 - 本周连续2天", CreatedAt: time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)},
		{Amount: 20, Description: "签到奖励", CreatedAt: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)},
	}
	got := FormatHistory(txs, "积分", loc)
	want := "📋 最近 2 条积分记录:\n\n" +
		"1. 2024-01-02 09:00 | +35积分 | 签到奖励 - 本周连续2天\n" +
		"2. 2024-01-01 09:00 | +20积分 | 签到奖励\n"
	if got != want {
		t.Errorf("FormatHistory() =\n%s\nwant\n%s", got, want)
	}
}

func TestAddBalanceRejectsNonPositive(t *testing.T) {
	s := NewService(nil, "积分", time.UTC)
	for _, amount := range []int64{0, -5} {
		err := s.AddBalance(t.Context(), 1, amount, TxTypeAdminGive, "x")
		if !errors.Is(err, common.ErrInvalidAmount) {
			t.Errorf("AddBalance(%d) error = %v", amount, err)
		}
	}
}
