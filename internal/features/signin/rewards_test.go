package signin

import "testing"

func TestBonusRatio(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{-1, 0},
		{0, 0},
		{1, 0},
		{2, 0.1},
		{3, 0.1},
		{4, 0.2},
		{5, 0.3},
		{6, 0.5},
		{7, 0.5},
		{10, 0.5},
	}
	for _, tt := range tests {
		if got := BonusRatio(tt.streak); got != tt.want {
			t.Errorf("BonusRatio(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestWithBonus(t *testing.T) {
	tests := []struct {
		base  int64
		ratio float64
		want  int64
	}{
		{32, 0, 32},
		{32, 0.1, 35},
		{20, 0.5, 30},
		{49, 0.3, 63},
		{0, 0.5, 0},
	}
	for _, tt := range tests {
		if got := WithBonus(tt.base, tt.ratio); got != tt.want {
			t.Errorf("WithBonus(%d, %v) = %d, want %d", tt.base, tt.ratio, got, tt.want)
		}
	}
}

func TestRatioPercent(t *testing.T) {
	for ratio, want := range map[float64]int{0: 0, 0.1: 10, 0.2: 20, 0.3: 30, 0.5: 50} {
		if got := RatioPercent(ratio); got != want {
			t.Errorf("RatioPercent(%v) = %d, want %d", ratio, got, want)
		}
	}
}

func TestRollerRoll(t *testing.T) {
	last := &Roller{intN: func(n int) int { return n - 1 }}
	first := &Roller{intN: func(int) int { return 0 }}

	if got := first.Roll(20, 50); got != 20 {
		t.Errorf("Roll min = %d, want 20", got)
	}
	if got := last.Roll(20, 50); got != 49 {
		t.Errorf("Roll max = %d, want 49 (верхняя граница не входит)", got)
	}
	if got := last.Roll(5, 5); got != 5 {
		t.Errorf("Roll(5, 5) = %d, want 5", got)
	}
	if got := last.Roll(7, 3); got != 7 {
		t.Errorf("Roll(7, 3) = %d, want 7", got)
	}
}

func TestRollerRange(t *testing.T) {
	r := NewRoller()
	for i := 0; i < 1000; i++ {
		if got := r.Roll(20, 50); got < 20 || got >= 50 {
			t.Fatalf("Roll(20, 50) = %d вне [20, 50)", got)
		}
	}
}

func TestRollerPick(t *testing.T) {
	r := &Roller{intN: func(n int) int { return n - 1 }}
	if got := r.Pick(0); got != 0 {
		t.Errorf("Pick(0) = %d, want 0", got)
	}
	if got := r.Pick(1); got != 0 {
		t.Errorf("Pick(1) = %d, want 0", got)
	}
	if got := r.Pick(2); got != 1 {
		t.Errorf("Pick(2) = %d, want 1", got)
	}
}
