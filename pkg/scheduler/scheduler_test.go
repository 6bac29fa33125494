package scheduler

import (
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "凌晨时刻", input: "00:05", want: "5 0 * * *"},
		{name: "一般时刻", input: "09:30", want: "30 9 * * *"},
		{name: "最晚时刻", input: "23:59", want: "59 23 * * *"},
		{name: "缺少分钟", input: "09", wantErr: true},
		{name: "小时越界", input: "24:00", wantErr: true},
		{name: "分钟越界", input: "09:60", wantErr: true},
		{name: "非数字", input: "ab:cd", wantErr: true},
		{name: "空字符串", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildDailySpec(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("输入 %q 期望报错", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("输入 %q 不应报错: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("期望 %q，实际 %q", tt.want, got)
			}
		})
	}
}

func TestScheduler_ScheduleDaily_InvalidTime(t *testing.T) {
	s := New(time.UTC)
	if _, err := s.ScheduleDaily("25:00", func() {}); err == nil {
		t.Error("非法时刻注册期望报错")
	}
}
