package readiness

import (
	"fmt"
	"math"

	"github.com/riyaagrawal02/clivra/internal/study"
)

// Status is a discrete readiness band. Bands are ordered from NotReady to
// ExamReady.
type Status string

const (
	StatusNotReady    Status = "not_ready"
	StatusImproving   Status = "improving"
	StatusAlmostReady Status = "almost_ready"
	StatusExamReady   Status = "exam_ready"
)

// Band thresholds (inclusive lower bounds, percent).
const (
	ExamReadyThreshold   = 80
	AlmostReadyThreshold = 60
	ImprovingThreshold   = 35
)

// Factor weights. They sum to 1.
const (
	WeightCompletion  = 0.40
	WeightConfidence  = 0.35
	WeightConsistency = 0.15
	WeightTime        = 0.10
)

// StreakTarget is the streak length that maxes out consistency.
const StreakTarget = 14

// TimeHorizonDays is the number of remaining days that maxes out the time factor.
const TimeHorizonDays = 30

var messages = map[Status]string{
	StatusExamReady:   "You're well prepared. Keep revising to stay sharp!",
	StatusAlmostReady: "Almost there! Focus on your weaker topics.",
	StatusImproving:   "Good progress. Stay consistent with your study plan.",
	StatusNotReady:    "You need more preparation. Start with high-priority topics.",
}

// Result is a readiness verdict.
type Result struct {
	Status     Status
	Percentage int
	Message    string
}

// Rank orders statuses: 0 for NotReady up to 3 for ExamReady.
func (s Status) Rank() int {
	switch s {
	case StatusExamReady:
		return 3
	case StatusAlmostReady:
		return 2
	case StatusImproving:
		return 1
	default:
		return 0
	}
}

// Label is the status as shown to users.
func (s Status) Label() string {
	switch s {
	case StatusExamReady:
		return "Exam ready"
	case StatusAlmostReady:
		return "Almost ready"
	case StatusImproving:
		return "Improving"
	default:
		return "Not ready"
	}
}

// ParseStatus parses a stored status label.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotReady, StatusImproving, StatusAlmostReady, StatusExamReady:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown readiness status %q", s)
}

// Estimate combines completion (0-100), average confidence (0-5), the
// consistency streak and days to the exam into a readiness verdict.
// Out-of-range inputs are clamped.
func Estimate(completionPct, avgConfidence float64, streakDays, daysUntilExam int) Result {
	completion := study.ClampFloat(completionPct, 0, 100) / 100
	confidence := study.ClampFloat(avgConfidence, 0, study.MaxConfidence) / study.MaxConfidence
	consistency := math.Min(math.Max(float64(streakDays), 0)/StreakTarget, 1)
	timeLeft := 0.0
	if daysUntilExam > 0 {
		timeLeft = math.Min(float64(daysUntilExam)/TimeHorizonDays, 1)
	}

	sum := completion*WeightCompletion +
		confidence*WeightConfidence +
		consistency*WeightConsistency +
		timeLeft*WeightTime
	pct := study.ClampInt(int(math.Round(sum*100)), 0, 100)

	status := StatusFor(pct)
	return Result{Status: status, Percentage: pct, Message: messages[status]}
}

// StatusFor maps a percentage onto its band.
func StatusFor(pct int) Status {
	switch {
	case pct >= ExamReadyThreshold:
		return StatusExamReady
	case pct >= AlmostReadyThreshold:
		return StatusAlmostReady
	case pct >= ImprovingThreshold:
		return StatusImproving
	default:
		return StatusNotReady
	}
}

// MessageFor returns the fixed message for a status.
func MessageFor(s Status) string {
	return messages[s]
}
