package recovery

import (
	"fmt"
	"math"
)

// DefaultMaxOverloadPct caps extra daily study at a quarter of the usual budget.
const DefaultMaxOverloadPct = 25

// Plan spreads missed study time over the days left before the exam.
type Plan struct {
	ExtraMinutesPerDay int
	DaysToRecover      int
	MaxExtraPerDay     int
	// RecoverableMinutes is ExtraMinutesPerDay * DaysToRecover, capped at
	// the missed total.
	RecoverableMinutes int
	Message            string
}

// Rebalance computes how many extra minutes per day absorb missedMinutes
// without exceeding maxOverloadPct of the daily budget. It prefers the
// fewest days the cap allows, limited to remainingDays.
func Rebalance(missedMinutes, remainingDays, dailyStudyMinutes, maxOverloadPct int) Plan {
	if remainingDays <= 0 {
		return Plan{Message: "No time left before the exam to recover missed study."}
	}
	if missedMinutes <= 0 {
		return Plan{Message: "Nothing to recover. You're on track."}
	}

	maxExtra := int(math.Round(float64(dailyStudyMinutes) * float64(maxOverloadPct) / 100))
	if maxExtra <= 0 {
		return Plan{Message: "Your daily budget leaves no room for extra study."}
	}

	ideal := int(math.Ceil(float64(missedMinutes) / float64(maxExtra)))
	days := min(ideal, remainingDays)
	extra := min(int(math.Round(float64(missedMinutes)/float64(days))), maxExtra)
	recoverable := min(extra*days, missedMinutes)

	p := Plan{
		ExtraMinutesPerDay: extra,
		DaysToRecover:      days,
		MaxExtraPerDay:     maxExtra,
		RecoverableMinutes: recoverable,
	}
	if ideal > remainingDays {
		p.Message = fmt.Sprintf("Add %d extra minutes per day for %s. Only %d of %d missed minutes fit before the exam.",
			extra, plural(days, "day"), recoverable, missedMinutes)
	} else {
		p.Message = fmt.Sprintf("Add %d extra minutes per day for %s to catch up.", extra, plural(days, "day"))
	}
	return p
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
