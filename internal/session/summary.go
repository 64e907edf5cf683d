package session

import "github.com/riyaagrawal02/clivra/internal/study"

// DaySummary compares a day's planned schedule against what was studied.
type DaySummary struct {
	PlannedSessions int
	PlannedMinutes  int
	StudiedMinutes  int
	DoneSessions    int

	// Adherence is studied over planned minutes, capped at 1.
	Adherence float64

	// Remaining lists planned sessions whose topic has not been studied on
	// that day, in schedule order.
	Remaining []study.ScheduleSession
}

// Summarize builds the day summary. studiedTopics holds the IDs of topics
// with a completed session on the day.
func Summarize(plan []study.ScheduleSession, studiedMinutes int, studiedTopics map[string]bool) DaySummary {
	s := DaySummary{
		PlannedSessions: len(plan),
		StudiedMinutes:  max(studiedMinutes, 0),
	}
	for _, sess := range plan {
		s.PlannedMinutes += sess.DurationMinutes
		if studiedTopics[sess.TopicID] {
			s.DoneSessions++
			continue
		}
		s.Remaining = append(s.Remaining, sess)
	}

	if s.PlannedMinutes > 0 {
		s.Adherence = study.ClampFloat(float64(s.StudiedMinutes)/float64(s.PlannedMinutes), 0, 1)
	}
	return s
}
