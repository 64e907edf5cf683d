package study

import (
	"math"
	"time"
)

// Clock supplies the current time. Scoring code never reads the wall clock
// itself; callers pass Now() in.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

const day = 24 * time.Hour

// DaysUntilExam returns whole days from now until examDate, rounded up.
// A nil exam date yields DefaultDaysUntilExam. The result is negative once
// the exam has passed.
func DaysUntilExam(examDate *time.Time, now time.Time) int {
	if examDate == nil {
		return DefaultDaysUntilExam
	}
	return int(math.Ceil(examDate.Sub(now).Hours() / 24.0))
}

// DaysSince returns the whole days elapsed between t and now. Timestamps in
// the future count as zero days.
func DaysSince(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / day)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
