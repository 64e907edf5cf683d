package recovery

import (
	"strings"
	"testing"
)

func TestRebalance_ShortHorizon(t *testing.T) {
	got := Rebalance(300, 2, 180, 25)

	if got.MaxExtraPerDay != 45 {
		t.Errorf("MaxExtraPerDay = %d, want 45", got.MaxExtraPerDay)
	}
	if got.DaysToRecover != 2 {
		t.Errorf("DaysToRecover = %d, want 2", got.DaysToRecover)
	}
	if got.ExtraMinutesPerDay != 45 {
		t.Errorf("ExtraMinutesPerDay = %d, want 45", got.ExtraMinutesPerDay)
	}
	if got.RecoverableMinutes != 90 {
		t.Errorf("RecoverableMinutes = %d, want 90", got.RecoverableMinutes)
	}
	if !strings.Contains(got.Message, "Only 90 of 300") {
		t.Errorf("Message = %q, want partial-recovery note", got.Message)
	}
}

func TestRebalance_FullRecovery(t *testing.T) {
	// cap 45/day, ceil(100/45) = 3 days, round(100/3) = 33.
	got := Rebalance(100, 10, 180, DefaultMaxOverloadPct)
	if got.DaysToRecover != 3 || got.ExtraMinutesPerDay != 33 {
		t.Errorf("got %d days x %d min, want 3 x 33", got.DaysToRecover, got.ExtraMinutesPerDay)
	}
	if got.RecoverableMinutes != 99 {
		t.Errorf("RecoverableMinutes = %d, want 99", got.RecoverableMinutes)
	}

	got = Rebalance(30, 10, 180, DefaultMaxOverloadPct)
	if got.DaysToRecover != 1 || got.ExtraMinutesPerDay != 30 {
		t.Errorf("got %d days x %d min, want 1 x 30", got.DaysToRecover, got.ExtraMinutesPerDay)
	}
	if !strings.Contains(got.Message, "for 1 day ") {
		t.Errorf("Message = %q", got.Message)
	}
}

func TestRebalance_NoTimeLeft(t *testing.T) {
	for _, days := range []int{0, -3} {
		got := Rebalance(120, days, 180, 25)
		if got.ExtraMinutesPerDay != 0 || got.DaysToRecover != 0 {
			t.Errorf("days=%d: got %+v, want zeroed plan", days, got)
		}
		if !strings.Contains(strings.ToLower(got.Message), "no time left") {
			t.Errorf("days=%d: Message = %q", days, got.Message)
		}
	}
}

func TestRebalance_DegenerateInputs(t *testing.T) {
	if got := Rebalance(0, 5, 180, 25); got.ExtraMinutesPerDay != 0 || got.DaysToRecover != 0 {
		t.Errorf("nothing missed: got %+v", got)
	}
	if got := Rebalance(60, 5, 0, 25); got.ExtraMinutesPerDay != 0 {
		t.Errorf("zero daily budget: got %+v", got)
	}
	if got := Rebalance(60, 5, 180, 0); got.ExtraMinutesPerDay != 0 {
		t.Errorf("zero overload: got %+v", got)
	}
}

func TestRebalance_NeverExceedsCap(t *testing.T) {
	for missed := 0; missed <= 1000; missed += 37 {
		for days := -1; days <= 15; days++ {
			for _, daily := range []int{0, 30, 61, 120, 180, 333} {
				for _, pct := range []int{0, 10, 25, 50, 100} {
					got := Rebalance(missed, days, daily, pct)
					limit := int(float64(daily)*float64(pct)/100 + 0.5)
					if got.ExtraMinutesPerDay > limit {
						t.Fatalf("Rebalance(%d,%d,%d,%d) extra %d > cap %d",
							missed, days, daily, pct, got.ExtraMinutesPerDay, limit)
					}
					if days > 0 && got.DaysToRecover > days {
						t.Fatalf("Rebalance(%d,%d,%d,%d) uses %d days", missed, days, daily, pct, got.DaysToRecover)
					}
					if got.RecoverableMinutes > missed {
						t.Fatalf("recoverable %d > missed %d", got.RecoverableMinutes, missed)
					}
				}
			}
		}
	}
}
