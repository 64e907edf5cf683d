package schedule

import "github.com/riyaagrawal02/clivra/internal/study"

// DefaultRevisionShare is the largest fraction of the day that full
// revision sessions may take.
const DefaultRevisionShare = 0.40

// RecallMinRevisions and RecallMinConfidence gate the short recall format.
const (
	RecallMinRevisions  = 3
	RecallMinConfidence = 3
)

// Fallback reasons used when no scoring condition fired.
const (
	reasonLearning = "Next in your study plan"
	reasonRevision = "Scheduled for spaced revision"
	reasonRecall   = "Quick recall to keep it fresh"
)

// Config is the daily time budget and pomodoro sizing.
type Config struct {
	AvailableMinutes     int
	PomodoroWorkMinutes  int
	PomodoroBreakMinutes int
	RevisionShare        float64
}

// DefaultConfig returns the standard daily budget.
func DefaultConfig() Config {
	return Config{
		AvailableMinutes:     study.DefaultDailyStudyMinutes,
		PomodoroWorkMinutes:  study.DefaultPomodoroWorkMinutes,
		PomodoroBreakMinutes: study.DefaultPomodoroBreakMinutes,
		RevisionShare:        DefaultRevisionShare,
	}
}

// ConfigFromProfile builds a Config from a user's preferences.
func ConfigFromProfile(p study.Profile) Config {
	p = study.NormalizeProfile(p)
	return Config{
		AvailableMinutes:     p.DailyStudyMinutes,
		PomodoroWorkMinutes:  p.PomodoroWorkMinutes,
		PomodoroBreakMinutes: p.PomodoroBreakMinutes,
		RevisionShare:        DefaultRevisionShare,
	}
}

// SessionMinutes is one full pomodoro: work plus break.
func (c Config) SessionMinutes() int {
	return c.PomodoroWorkMinutes + c.PomodoroBreakMinutes
}

// RevisionBudget is floor(available * share).
func (c Config) RevisionBudget() int {
	share := c.RevisionShare
	if share <= 0 {
		share = DefaultRevisionShare
	}
	if share > 1 {
		share = 1
	}
	return int(float64(c.AvailableMinutes) * share)
}

// Totals summarises a schedule's minutes by session type.
type Totals struct {
	Sessions        int
	TotalMinutes    int
	LearningMinutes int
	RevisionMinutes int
	RecallMinutes   int
}

// Summarize adds up a schedule.
func Summarize(sessions []study.ScheduleSession) Totals {
	var t Totals
	for _, s := range sessions {
		t.Sessions++
		t.TotalMinutes += s.DurationMinutes
		switch s.Type {
		case study.SessionLearning:
			t.LearningMinutes += s.DurationMinutes
		case study.SessionRevision:
			t.RevisionMinutes += s.DurationMinutes
		case study.SessionRecall:
			t.RecallMinutes += s.DurationMinutes
		}
	}
	return t
}
