package spacedrep

import (
	"time"

	"github.com/riyaagrawal02/clivra/internal/study"
)

// Backfill schedules a first revision for studied topics that have none.
// The due date is counted from the last revision, or the last study session
// when the topic was never revised. Topics that already have a schedule,
// were never studied, or are completed are returned unchanged.
func Backfill(topics []study.Topic) []study.Topic {
	out := make([]study.Topic, len(topics))
	for i, t := range topics {
		out[i] = t
		if t.NextRevisionAt != nil || t.IsCompleted {
			continue
		}
		var from *time.Time
		switch {
		case t.LastRevisionDate != nil:
			from = t.LastRevisionDate
		case t.LastStudiedAt != nil:
			from = t.LastStudiedAt
		default:
			continue
		}
		next := from.AddDate(0, 0, IntervalDays(t.RevisionCount, t.ConfidenceLevel))
		out[i].NextRevisionAt = &next
	}
	return out
}
