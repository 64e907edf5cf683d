package priority

import (
	"fmt"
	"math"
	"time"

	"github.com/riyaagrawal02/clivra/internal/study"
)

// Learning-priority weights. They sum to 100.
const (
	WeightStrength   = 30.0
	WeightUrgency    = 25.0
	WeightConfidence = 25.0
	WeightRecency    = 15.0
	WeightCompletion = 5.0
)

// Revision-priority weights. They sum to 100.
const (
	RevisionWeightRecency    = 35.0
	RevisionWeightConfidence = 30.0
	RevisionWeightExam       = 20.0
	RevisionWeightDifficulty = 15.0
)

// RevisionIntervalDays is the gap after which a studied topic is due for
// revision regardless of confidence.
const RevisionIntervalDays = 7

// LowConfidenceThreshold is the highest confidence level still treated as low.
const LowConfidenceThreshold = 3

// Score is a 0-100 priority together with the conditions that raised it.
type Score struct {
	Value   int
	Reasons []string
}

// TopReason returns the first reason, or "" if none fired.
func (s Score) TopReason() string {
	if len(s.Reasons) == 0 {
		return ""
	}
	return s.Reasons[0]
}

// ScoreLearning scores how urgently a topic should be learned next.
func ScoreLearning(t study.Topic, strength study.Strength, daysUntilExam int, now time.Time) Score {
	conf := study.ClampConfidence(t.ConfidenceLevel)

	// Factors are raw points (0-100); weights sum to 100.
	total := (StrengthPoints(strength)*WeightStrength +
		learningUrgencyPoints(daysUntilExam)*WeightUrgency +
		confidencePoints(conf)*WeightConfidence +
		recencyPoints(t.LastStudiedAt, now)*WeightRecency +
		completionPoints(t.EstimatedHours, t.CompletedHours)*WeightCompletion) / 100

	var reasons []string
	if strength == study.StrengthWeak {
		reasons = append(reasons, "Weak subject needs extra attention")
	}
	if daysUntilExam <= 7 {
		reasons = append(reasons, "Exam is less than a week away")
	}
	if conf <= 2 {
		reasons = append(reasons, "Low confidence on this topic")
	}
	if t.LastStudiedAt == nil {
		reasons = append(reasons, "Never studied before")
	} else if days := study.DaysSince(*t.LastStudiedAt, now); days >= RevisionIntervalDays {
		reasons = append(reasons, fmt.Sprintf("Not studied for %d days", days))
	}

	return Score{Value: roundScore(total), Reasons: reasons}
}

// CheckRevisionEligibility decides whether a topic should be scheduled as
// spaced review rather than fresh learning.
func CheckRevisionEligibility(t study.Topic, daysUntilExam int, now time.Time) study.RevisionEligibility {
	var result study.RevisionEligibility
	if !t.HasBeenStudied() {
		return result
	}

	conf := study.ClampConfidence(t.ConfidenceLevel)
	lowConfidence := conf <= LowConfidenceThreshold

	days, known := daysSinceReview(t, now)
	timeDue := known && days >= RevisionIntervalDays

	if !lowConfidence && !timeDue {
		return result
	}
	result.Eligible = true

	urgency := 0
	if lowConfidence {
		urgency += (4 - conf) * 20
		result.Reasons = append(result.Reasons, fmt.Sprintf("Low confidence (%d/5)", conf))
	}
	if timeDue {
		urgency += min(days*5, 50)
		result.Reasons = append(result.Reasons, fmt.Sprintf("Last reviewed %d days ago", days))
	}
	switch {
	case daysUntilExam <= 7:
		urgency += 30
		result.Reasons = append(result.Reasons, "Exam within a week")
	case daysUntilExam <= 14:
		urgency += 20
		result.Reasons = append(result.Reasons, "Exam within two weeks")
	}
	result.UrgencyScore = study.ClampInt(urgency, 0, 100)
	return result
}

// ScoreRevision ranks a revision-eligible topic.
func ScoreRevision(t study.Topic, strength study.Strength, daysUntilExam int, now time.Time) Score {
	conf := study.ClampConfidence(t.ConfidenceLevel)

	recency := 100.0
	days, known := daysSinceReview(t, now)
	if known {
		recency = math.Min(float64(days)*5, 100)
	}

	total := (recency*RevisionWeightRecency +
		confidencePoints(conf)*RevisionWeightConfidence +
		examProximityPoints(daysUntilExam)*RevisionWeightExam +
		StrengthPoints(strength)*RevisionWeightDifficulty) / 100

	var reasons []string
	if known && days >= RevisionIntervalDays {
		reasons = append(reasons, fmt.Sprintf("Due for revision (%d days since last review)", days))
	} else if !known {
		reasons = append(reasons, "Never revised")
	}
	if conf <= 2 {
		reasons = append(reasons, "Low confidence on this topic")
	}
	if daysUntilExam <= 14 {
		reasons = append(reasons, "Exam approaching")
	}
	if strength == study.StrengthWeak {
		reasons = append(reasons, "Weak subject needs extra attention")
	}

	return Score{Value: roundScore(total), Reasons: reasons}
}

// StrengthPoints maps a subject strength to raw points (0-100).
func StrengthPoints(s study.Strength) float64 {
	switch s {
	case study.StrengthWeak:
		return 100
	case study.StrengthStrong:
		return 30
	default:
		return 60
	}
}

func learningUrgencyPoints(daysUntilExam int) float64 {
	switch {
	case daysUntilExam <= 7:
		return 100
	case daysUntilExam <= 30:
		return 80
	case daysUntilExam <= 60:
		return 50
	default:
		return 30
	}
}

func examProximityPoints(daysUntilExam int) float64 {
	switch {
	case daysUntilExam <= 7:
		return 100
	case daysUntilExam <= 14:
		return 80
	case daysUntilExam <= 30:
		return 60
	default:
		return 30
	}
}

// confidencePoints is the linear inverse of confidence: 1 -> 100, 5 -> 0.
func confidencePoints(conf int) float64 {
	return float64(study.MaxConfidence-conf) / 4 * 100
}

func recencyPoints(lastStudied *time.Time, now time.Time) float64 {
	if lastStudied == nil {
		return 100
	}
	days := study.DaysSince(*lastStudied, now)
	switch {
	case days >= 14:
		return 100
	case days >= 7:
		return 75
	case days >= 3:
		return 50
	default:
		return 25
	}
}

func completionPoints(estimated, completed float64) float64 {
	if estimated <= 0 {
		return 0
	}
	return study.ClampFloat((1-completed/estimated)*100, 0, 100)
}

// daysSinceReview measures from the last revision, falling back to the last
// study. known is false when neither timestamp is set.
func daysSinceReview(t study.Topic, now time.Time) (days int, known bool) {
	switch {
	case t.LastRevisionDate != nil:
		return study.DaysSince(*t.LastRevisionDate, now), true
	case t.LastStudiedAt != nil:
		return study.DaysSince(*t.LastStudiedAt, now), true
	}
	return 0, false
}

func roundScore(total float64) int {
	return int(math.Round(study.ClampFloat(total, 0, 100)))
}

// Rank applies the revision gate and scores the topic with the matching
// formula: revision priority when eligible, learning priority otherwise.
func Rank(t study.Topic, strength study.Strength, daysUntilExam int, now time.Time) (Score, study.RevisionEligibility) {
	elig := CheckRevisionEligibility(t, daysUntilExam, now)
	if elig.Eligible {
		return ScoreRevision(t, strength, daysUntilExam, now), elig
	}
	return ScoreLearning(t, strength, daysUntilExam, now), elig
}

// Rescore returns a copy of the topic with PriorityScore refreshed from Rank.
func Rescore(t study.Topic, strength study.Strength, daysUntilExam int, now time.Time) study.Topic {
	score, _ := Rank(t, strength, daysUntilExam, now)
	t.PriorityScore = score.Value
	return t
}
