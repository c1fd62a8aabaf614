package common

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1250, "1,250"},
		{1000000, "1,000,000"},
		{-2350, "-2,350"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatSignedPoints(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{32, "+32积分"},
		{0, "+0积分"},
		{-50, "-50积分"},
	}
	for _, tt := range tests {
		if got := FormatSignedPoints(tt.amount, "积分"); got != tt.want {
			t.Errorf("FormatSignedPoints(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestLoadLocationFallback(t *testing.T) {
	loc := LoadLocation("Nowhere/Atlantis")
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	if offset != 8*60*60 {
		t.Errorf("offset = %d, want UTC+8", offset)
	}
	if got := LoadLocation("UTC"); got.String() != "UTC" {
		t.Errorf("LoadLocation(UTC) = %s", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2024, 1, 1, 1, 30, 0, 0, time.UTC)
	loc := time.FixedZone("CST", 8*60*60)
	if got := FormatDateTime(ts, loc); got != "2024-01-01 09:30" {
		t.Errorf("FormatDateTime() = %q", got)
	}
}

func TestClock(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)
	if got := Clock(loc)().Location(); got != loc {
		t.Errorf("Clock() location = %v, want %v", got, loc)
	}
}
