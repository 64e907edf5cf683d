package spacedrep

import (
	"time"

	"github.com/riyaagrawal02/clivra/internal/study"
)

// IsDue returns true if the topic has a scheduled revision at or before now.
func IsDue(t study.Topic, now time.Time) bool {
	return t.NextRevisionAt != nil && !now.Before(*t.NextRevisionAt)
}

// OverdueDays returns how many days past due the topic is. Returns 0 if not yet due.
func OverdueDays(t study.Topic, now time.Time) float64 {
	if !IsDue(t, now) {
		return 0
	}
	return now.Sub(*t.NextRevisionAt).Hours() / 24.0
}

// IsOverdue returns true once the topic is past its due date by more than
// half of its current interval.
func IsOverdue(t study.Topic, now time.Time) bool {
	if !IsDue(t, now) {
		return false
	}
	interval := IntervalDays(t.RevisionCount, t.ConfidenceLevel)
	graceHours := float64(interval) * 0.5 * 24.0
	threshold := t.NextRevisionAt.Add(time.Duration(graceHours * float64(time.Hour)))
	return now.After(threshold)
}

// ReviewStatus describes a topic's revision status for display.
type ReviewStatus string

const (
	ReviewNotScheduled ReviewStatus = "not_scheduled"
	ReviewNotDue       ReviewStatus = "not_due"
	ReviewDue          ReviewStatus = "due"
	ReviewOverdue      ReviewStatus = "overdue"
)

// Status returns the revision status for display.
func Status(t study.Topic, now time.Time) ReviewStatus {
	switch {
	case t.NextRevisionAt == nil:
		return ReviewNotScheduled
	case IsOverdue(t, now):
		return ReviewOverdue
	case IsDue(t, now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// DaysUntilReview returns the number of days until the next revision.
// Returns 0 if already due or not scheduled.
func DaysUntilReview(t study.Topic, now time.Time) int {
	if t.NextRevisionAt == nil || IsDue(t, now) {
		return 0
	}
	return int(t.NextRevisionAt.Sub(now).Hours()/24.0) + 1
}
