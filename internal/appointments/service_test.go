package appointments

import (
	"testing"
	"time"

	"github.com/riddhima-gkmit/mindease-platform/pkg/schedule"
)

func TestSlotWithinWindows(t *testing.T) {
	windows := []schedule.Window{
		{DayOfWeek: "Monday", StartTime: "09:00:00", EndTime: "12:00:00"},
	}

	tests := []struct {
		name    string
		weekday time.Weekday
		slot    string
		want    bool
	}{
		{"first slot", time.Monday, "09:00:00", true},
		{"last full slot", time.Monday, "11:00:00", true},
		{"window end is not a start", time.Monday, "12:00:00", false},
		{"off the hour", time.Monday, "09:30:00", false},
		{"wrong weekday", time.Tuesday, "09:00:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slotWithinWindows(windows, tt.weekday, tt.slot); got != tt.want {
				t.Fatalf("slotWithinWindows(%s %s) = %v, want %v", tt.weekday, tt.slot, got, tt.want)
			}
		})
	}
}
