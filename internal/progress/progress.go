// Package progress aggregates topic state and study history into the inputs
// the readiness and recovery calculations need.
package progress

import (
	"github.com/riyaagrawal02/clivra/internal/study"
)

// Summary is a point-in-time view of how far through the syllabus a user is.
type Summary struct {
	Total         int
	Completed     int
	CompletionPct float64
	AvgConfidence float64
}

// Summarize computes completion and average confidence across topics.
//
// Completion is hours done over hours estimated. A topic marked completed
// counts its full estimate, and no topic counts more than its estimate. When
// no topic carries an estimate, completion falls back to the share of
// completed topics.
func Summarize(topics []study.Topic) Summary {
	var s Summary
	s.Total = len(topics)
	if s.Total == 0 {
		return s
	}

	var estimated, done float64
	confSum := 0
	for _, t := range topics {
		if t.IsCompleted {
			s.Completed++
		}
		confSum += study.ClampConfidence(t.ConfidenceLevel)

		est := max(t.EstimatedHours, 0)
		estimated += est
		if t.IsCompleted {
			done += est
		} else {
			done += study.ClampFloat(t.CompletedHours, 0, est)
		}
	}

	if estimated > 0 {
		s.CompletionPct = study.ClampFloat(done/estimated*100, 0, 100)
	} else {
		s.CompletionPct = float64(s.Completed) / float64(s.Total) * 100
	}
	s.AvgConfidence = float64(confSum) / float64(s.Total)
	return s
}
