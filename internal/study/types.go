package study

import (
	"fmt"
	"strings"
	"time"
)

// Strength is a subject's self-assessed strength.
type Strength string

const (
	StrengthWeak    Strength = "weak"
	StrengthAverage Strength = "average"
	StrengthStrong  Strength = "strong"
)

// ParseStrength parses a strength label. Matching is case-insensitive.
func ParseStrength(s string) (Strength, error) {
	switch Strength(strings.ToLower(strings.TrimSpace(s))) {
	case StrengthWeak:
		return StrengthWeak, nil
	case StrengthAverage:
		return StrengthAverage, nil
	case StrengthStrong:
		return StrengthStrong, nil
	}
	return "", fmt.Errorf("unknown subject strength %q", s)
}

// SessionType classifies a scheduled study block.
type SessionType string

const (
	SessionLearning SessionType = "learning"
	SessionRevision SessionType = "revision"
	SessionRecall   SessionType = "recall"
)

// ParseSessionType parses a session type label.
func ParseSessionType(s string) (SessionType, error) {
	switch SessionType(strings.ToLower(strings.TrimSpace(s))) {
	case SessionLearning:
		return SessionLearning, nil
	case SessionRevision:
		return SessionRevision, nil
	case SessionRecall:
		return SessionRecall, nil
	}
	return "", fmt.Errorf("unknown session type %q", s)
}

// TimeSlot is the user's preferred time of day for studying.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

// ParseTimeSlot parses a preferred time-of-day slot.
func ParseTimeSlot(s string) (TimeSlot, error) {
	switch TimeSlot(strings.ToLower(strings.TrimSpace(s))) {
	case SlotMorning:
		return SlotMorning, nil
	case SlotAfternoon:
		return SlotAfternoon, nil
	case SlotEvening:
		return SlotEvening, nil
	case SlotNight:
		return SlotNight, nil
	}
	return "", fmt.Errorf("unknown time slot %q", s)
}

// Topic is an atomic unit of study material. All fields are populated;
// optional inputs are resolved by NormalizeTopic.
type Topic struct {
	ID               string
	SubjectID        string
	Name             string
	ConfidenceLevel  int // 1 (struggling) .. 5 (mastered)
	PriorityScore    int // cached Priority Engine output, 0..100
	EstimatedHours   float64
	CompletedHours   float64
	LastStudiedAt    *time.Time
	LastRevisionDate *time.Time
	NextRevisionAt   *time.Time
	RevisionCount    int
	IsCompleted      bool
}

// HasBeenStudied reports whether the topic was studied at least once.
func (t Topic) HasBeenStudied() bool {
	return t.LastStudiedAt != nil || t.CompletedHours > 0
}

// Subject groups topics that share a strength label.
type Subject struct {
	ID       string
	UserID   string
	Name     string
	Strength Strength
	Color    string
	Topics   []Topic
}

// ScheduleSession is one block of a generated daily schedule.
type ScheduleSession struct {
	TopicID             string
	TopicName           string
	SubjectName         string
	SubjectColor        string
	Type                SessionType
	DurationMinutes     int
	PriorityScore       int
	Reason              string
	IsRevisionScheduled bool
}

// RevisionEligibility is the outcome of the revision gate for one topic.
type RevisionEligibility struct {
	Eligible     bool
	Reasons      []string
	UrgencyScore int
}

// RevisionEvent is one entry of the revision-history log.
type RevisionEvent struct {
	TopicID          string
	UserID           string
	ConfidenceBefore int
	ConfidenceAfter  int
	Completed        bool
	Skipped          bool
	RecordedAt       time.Time
}

// Profile holds a user's study preferences.
type Profile struct {
	UserID               string
	DailyStudyMinutes    int
	PomodoroWorkMinutes  int
	PomodoroBreakMinutes int
	PreferredSlot        TimeSlot
	ExamDate             *time.Time
}
