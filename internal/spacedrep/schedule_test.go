package spacedrep

import "testing"

func TestBaseIntervals_Values(t *testing.T) {
	expected := []int{1, 3, 7, 14, 30, 60}
	if len(BaseIntervals) != len(expected) {
		t.Fatalf("len(BaseIntervals) = %d, want %d", len(BaseIntervals), len(expected))
	}
	for i, v := range expected {
		if BaseIntervals[i] != v {
			t.Errorf("BaseIntervals[%d] = %d, want %d", i, BaseIntervals[i], v)
		}
	}
}

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		confidence int
		want       int
	}{
		{"first stage", 0, 3, 1},
		{"second stage", 1, 3, 3},
		{"third stage", 2, 4, 7},
		{"fourth stage", 3, 4, 14},
		{"fifth stage", 4, 4, 30},
		{"last stage", 5, 4, 60},
		{"beyond last stage", 9, 4, 60},
		{"negative count", -2, 4, 1},
		{"low confidence resets", 4, 2, 1},
		{"graduated", 6, 5, 90},
		{"not confident enough to graduate", 6, 4, 60},
		{"confident but too early", 5, 5, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntervalDays(tt.count, tt.confidence); got != tt.want {
				t.Errorf("IntervalDays(%d, %d) = %d, want %d", tt.count, tt.confidence, got, tt.want)
			}
		})
	}
}
