package spacedrep

import (
	"sort"
	"time"

	"github.com/riyaagrawal02/clivra/internal/study"
)

// RevisionInput describes one revision attempt.
type RevisionInput struct {
	UserID          string
	ConfidenceAfter int
	Skipped         bool
}

// RecordRevision applies a revision attempt to a topic. It returns the
// updated topic and the history entry to append; the input is not modified.
//
// A completed revision bumps the revision count, stamps the revision date,
// takes the new confidence and schedules the next revision. A skipped one
// only pushes the due date out by SkipRetryDays.
func RecordRevision(t study.Topic, in RevisionInput, now time.Time) (study.Topic, study.RevisionEvent) {
	before := study.ClampConfidence(t.ConfidenceLevel)
	ev := study.RevisionEvent{
		TopicID:          t.ID,
		UserID:           in.UserID,
		ConfidenceBefore: before,
		ConfidenceAfter:  before,
		Completed:        !in.Skipped,
		Skipped:          in.Skipped,
		RecordedAt:       now,
	}

	if in.Skipped {
		next := now.AddDate(0, 0, SkipRetryDays)
		t.NextRevisionAt = &next
		return t, ev
	}

	after := study.ClampConfidence(in.ConfidenceAfter)
	ev.ConfidenceAfter = after

	t.RevisionCount++
	t.ConfidenceLevel = after
	revised := now
	t.LastRevisionDate = &revised
	next := now.AddDate(0, 0, IntervalDays(t.RevisionCount, after))
	t.NextRevisionAt = &next
	return t, ev
}

// DueTopics returns non-completed topics due for revision, most overdue
// first. Ties are broken by topic ID.
func DueTopics(topics []study.Topic, now time.Time) []study.Topic {
	type dueTopic struct {
		topic   study.Topic
		overdue float64
	}
	var due []dueTopic

	for _, t := range topics {
		if t.IsCompleted || !IsDue(t, now) {
			continue
		}
		due = append(due, dueTopic{topic: t, overdue: OverdueDays(t, now)})
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].topic.ID < due[j].topic.ID
	})

	out := make([]study.Topic, len(due))
	for i, d := range due {
		out[i] = d.topic
	}
	return out
}
