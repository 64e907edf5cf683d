package study

import (
	"testing"
	"time"
)

func TestDaysUntilExam(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name string
		exam *time.Time
		want int
	}{
		{"absent", nil, DefaultDaysUntilExam},
		{"exactly three days", at(72 * time.Hour), 3},
		{"partial day rounds up", at(49 * time.Hour), 3},
		{"same instant", at(0), 0},
		{"passed", at(-48 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilExam(tt.exam, now); got != tt.want {
				t.Errorf("DaysUntilExam = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	if got := DaysSince(now.Add(-7*24*time.Hour), now); got != 7 {
		t.Errorf("DaysSince(7d ago) = %d, want 7", got)
	}
	if got := DaysSince(now.Add(-30*time.Hour), now); got != 1 {
		t.Errorf("DaysSince(30h ago) = %d, want 1", got)
	}
	if got := DaysSince(now.Add(48*time.Hour), now); got != 0 {
		t.Errorf("DaysSince(future) = %d, want 0", got)
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var c Clock = FixedClock{T: at}
	if !c.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", c.Now(), at)
	}
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)
	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(at); !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}
