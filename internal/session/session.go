// Package session applies finished study sessions to topic state.
package session

import (
	"time"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/study"
)

// Completion describes one finished study session on a topic.
type Completion struct {
	Minutes int

	// Confidence, when non-nil, replaces the topic's confidence level.
	Confidence *int

	// MarkCompleted flags the topic as done.
	MarkCompleted bool
}

// Complete applies a finished session to a topic. It returns the updated topic
// and the progress delta for the session's day. The input topic is not
// modified; persisting both results is left to the caller.
func Complete(t study.Topic, c Completion, now time.Time) (study.Topic, progress.DailyDelta) {
	minutes := max(c.Minutes, 0)

	t.CompletedHours = max(t.CompletedHours, 0) + float64(minutes)/60
	studied := now
	t.LastStudiedAt = &studied
	if c.Confidence != nil {
		t.ConfidenceLevel = study.ClampConfidence(*c.Confidence)
	}
	if c.MarkCompleted {
		t.IsCompleted = true
	}

	delta := progress.DailyDelta{
		Date:     study.StartOfDay(now),
		Minutes:  minutes,
		Sessions: 1,
	}
	if minutes == 0 {
		delta.Sessions = 0
	}
	return t, delta
}
