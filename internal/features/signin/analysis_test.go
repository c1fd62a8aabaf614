package signin

import (
	"strings"
	"testing"
)

func stamps(n int, hm string) []DateStamp {
	out := make([]DateStamp, n)
	for i := range out {
		out[i] = DateStamp{Day: "2024-01-01", Time: hm}
	}
	return out
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		hour int
		want TimeBucket
	}{
		{0, BucketNormal},
		{2, BucketNight},
		{23, BucketNight},
		{6, BucketMorning},
		{12, BucketNoon},
		{9, BucketNormal},
		{20, BucketNormal},
		{-1, BucketNormal},
	}
	for _, tt := range tests {
		if got := BucketOf(tt.hour); got != tt.want {
			t.Errorf("BucketOf(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestProfileDominantTie(t *testing.T) {
	history := append(stamps(3, "06:00"), stamps(3, "12:30")...)
	if got := ProfileOf(history).Dominant(); got != BucketMorning {
		t.Errorf("Dominant() = %s, want %s", got, BucketMorning)
	}
	if got := ProfileOf(nil).Percent(BucketNight); got != 0 {
		t.Errorf("Percent на пустой истории = %d", got)
	}
}

func TestDescribeHabitsTooFew(t *testing.T) {
	got := DescribeHabits(stamps(10, "09:00"), func(int) int { return 0 })
	want := "暂无签到评价，再签到10天后再分析。\n目前记录里签到了 10 天"
	if got != want {
		t.Errorf("DescribeHabits() = %q, want %q", got, want)
	}
}

func TestDescribeHabits(t *testing.T) {
	history := append(stamps(6, "23:10"), stamps(5, "09:00")...)

	got := DescribeHabits(history, func(n int) int { return n - 1 })
	want := "您总在深夜里签到，是工作太晚了吗？" +
		"\n\n 凌晨签到比例: 0%" +
		"\n 深夜签到比例: 54%" +
		"\n 中午签到比例: 0%" +
		"\n 正常时段签到比例: 45%"
	if got != want {
		t.Errorf("DescribeHabits() =\n%q\nwant\n%q", got, want)
	}
}

func TestDescribeHabitsBadPick(t *testing.T) {
	history := stamps(11, "12:00")
	got := DescribeHabits(history, func(int) int { return 99 })
	if !strings.HasPrefix(got, "您最近总在中午时段签到") {
		t.Errorf("некорректный индекс должен давать первую реплику: %q", got)
	}
}
