package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		text      string
		wantCmd   string
		wantArgs  []string
		isCommand bool
	}{
		{"/签到", "签到", nil, true},
		{"!签到", "签到", nil, true},
		{"！签到", "签到", nil, true},
		{".history", "history", nil, true},
		{"/签到@signin_bot", "签到", nil, true},
		{"/Points", "points", nil, true},
		{"签到", "签到", nil, true},
		{"  签到历史  ", "签到历史", nil, true},
		{"签到 一下", "", nil, false},
		{"今天签到了吗", "", nil, false},
		{"/help me", "help", []string{"me"}, true},
		{"/", "", nil, false},
		{"", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cmd, args, ok := p.ParseCommand(tt.text)
			if ok != tt.isCommand || cmd != tt.wantCmd || !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("ParseCommand(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tt.text, cmd, args, ok, tt.wantCmd, tt.wantArgs, tt.isCommand)
			}
		})
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		cmd  string
		want int
	}{
		{"签到", RouteCheckIn},
		{"qd", RouteCheckIn},
		{"签到历史", RouteHistory},
		{"积分", RouteBalance},
		{"积分记录", RouteTransactions},
		{"help", RouteHelp},
		{"казино", RouteUnknown},
	}
	for _, tt := range tests {
		if got := Route(tt.cmd); got != tt.want {
			t.Errorf("Route(%q) = %d, want %d", tt.cmd, got, tt.want)
		}
	}
}
