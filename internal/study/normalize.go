package study

import "time"

// Defaults applied when optional topic fields are missing.
const (
	DefaultConfidence     = 1
	DefaultPriority       = 50
	DefaultEstimatedHours = 1.0
	DefaultDaysUntilExam  = 30

	MinConfidence = 1
	MaxConfidence = 5
)

// Profile defaults.
const (
	DefaultDailyStudyMinutes    = 180
	DefaultPomodoroWorkMinutes  = 25
	DefaultPomodoroBreakMinutes = 5
)

// RawTopic is a topic as read from storage or an import file, with every
// optional field left as a pointer.
type RawTopic struct {
	ID               string
	SubjectID        string
	Name             string
	ConfidenceLevel  *int
	PriorityScore    *int
	EstimatedHours   *float64
	CompletedHours   *float64
	LastStudiedAt    *time.Time
	LastRevisionDate *time.Time
	NextRevisionAt   *time.Time
	RevisionCount    *int
	IsCompleted      bool
}

// NormalizeTopic fills defaults and clamps every numeric field into range.
// It is the only place where missing topic data is resolved.
func NormalizeTopic(r RawTopic) Topic {
	t := Topic{
		ID:               r.ID,
		SubjectID:        r.SubjectID,
		Name:             r.Name,
		ConfidenceLevel:  DefaultConfidence,
		PriorityScore:    DefaultPriority,
		EstimatedHours:   DefaultEstimatedHours,
		LastStudiedAt:    r.LastStudiedAt,
		LastRevisionDate: r.LastRevisionDate,
		NextRevisionAt:   r.NextRevisionAt,
		IsCompleted:      r.IsCompleted,
	}
	if r.ConfidenceLevel != nil {
		t.ConfidenceLevel = ClampConfidence(*r.ConfidenceLevel)
	}
	if r.PriorityScore != nil {
		t.PriorityScore = ClampInt(*r.PriorityScore, 0, 100)
	}
	if r.EstimatedHours != nil {
		t.EstimatedHours = nonNegative(*r.EstimatedHours)
	}
	if r.CompletedHours != nil {
		t.CompletedHours = nonNegative(*r.CompletedHours)
	}
	if r.RevisionCount != nil && *r.RevisionCount > 0 {
		t.RevisionCount = *r.RevisionCount
	}
	return t
}

// NormalizeProfile replaces unset or invalid preferences with defaults.
func NormalizeProfile(p Profile) Profile {
	if p.DailyStudyMinutes <= 0 {
		p.DailyStudyMinutes = DefaultDailyStudyMinutes
	}
	if p.PomodoroWorkMinutes <= 0 {
		p.PomodoroWorkMinutes = DefaultPomodoroWorkMinutes
	}
	if p.PomodoroBreakMinutes < 0 {
		p.PomodoroBreakMinutes = DefaultPomodoroBreakMinutes
	}
	if p.PreferredSlot == "" {
		p.PreferredSlot = SlotEvening
	}
	return p
}

// DefaultProfile returns the preferences used for a user with no saved profile.
func DefaultProfile(userID string) Profile {
	return Profile{
		UserID:               userID,
		DailyStudyMinutes:    DefaultDailyStudyMinutes,
		PomodoroWorkMinutes:  DefaultPomodoroWorkMinutes,
		PomodoroBreakMinutes: DefaultPomodoroBreakMinutes,
		PreferredSlot:        SlotEvening,
	}
}

// ClampConfidence clamps a confidence level into [1,5].
func ClampConfidence(c int) int {
	return ClampInt(c, MinConfidence, MaxConfidence)
}

// ClampInt clamps v into [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat clamps v into [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
