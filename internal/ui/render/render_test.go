package render

import (
	"strings"
	"testing"
	"time"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/readiness"
	"github.com/riyaagrawal02/clivra/internal/recovery"
	"github.com/riyaagrawal02/clivra/internal/session"
	"github.com/riyaagrawal02/clivra/internal/study"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestSchedule(t *testing.T) {
	sessions := []study.ScheduleSession{
		{TopicName: "Algebra", SubjectName: "Math", Type: study.SessionLearning, DurationMinutes: 60, Reason: "Never studied before"},
		{TopicName: "Cells", SubjectName: "Biology", SubjectColor: "#22C55E", Type: study.SessionRevision, DurationMinutes: 30, Reason: "Low confidence (2/5)"},
	}
	out := Schedule(now, sessions)
	assertContains(t, out, "Mon, 10 Mar 2025", "Algebra", "Biology", "revision", "Never studied before", "90 min in 2 sessions", "learning 60", "revision 30")
}

func TestSchedule_Empty(t *testing.T) {
	assertContains(t, Schedule(now, nil), "Nothing scheduled")
}

func TestReadiness(t *testing.T) {
	res := readiness.Estimate(50, 3, 7, 20)
	prev := readiness.Result{Status: res.Status, Percentage: res.Percentage - 4}
	out := Readiness(res, progress.Summary{Total: 10, Completed: 4, CompletionPct: 50, AvgConfidence: 3}, 7, 20, &prev)
	assertContains(t, out, res.Status.Label(), res.Message, "▲ 4", "4/10 topics", "7 days streak", "20 days to exam")
	if strings.Contains(out, "up from") || strings.Contains(out, "down from") {
		t.Errorf("unchanged status reported a change:\n%s", out)
	}

	prev = readiness.Result{Status: readiness.StatusNotReady, Percentage: res.Percentage - 30}
	out = Readiness(res, progress.Summary{}, 7, 20, &prev)
	assertContains(t, out, "up from "+readiness.StatusNotReady.Label())

	prev = readiness.Result{Status: readiness.StatusExamReady, Percentage: 95}
	out = Readiness(res, progress.Summary{}, 7, 20, &prev)
	assertContains(t, out, "down from "+readiness.StatusExamReady.Label())

	out = Readiness(res, progress.Summary{}, 1, -2, nil)
	assertContains(t, out, "1 day streak", "exam has passed")
}

func TestRecovery(t *testing.T) {
	plan := recovery.Rebalance(300, 2, 180, 25)
	out := Recovery(plan, 300)
	assertContains(t, out, "300 min", "+45 min/day", "2 days", plan.Message)
}

func TestDue(t *testing.T) {
	due := now.Add(-10 * 24 * time.Hour)
	out := Due([]study.Topic{{Name: "Optics", ConfidenceLevel: 2, RevisionCount: 1, NextRevisionAt: &due}}, now)
	assertContains(t, out, "Optics", "overdue", "+10 days")
	assertContains(t, Due(nil, now), "Nothing due")
}

func TestSubjectsAndTopics(t *testing.T) {
	topics := []study.Topic{
		{Name: "Algebra", ConfidenceLevel: 3, EstimatedHours: 2, CompletedHours: 1},
		{Name: "Geometry", ConfidenceLevel: 1, EstimatedHours: 2, IsCompleted: true},
	}
	out := Subjects([]study.Subject{{Name: "Math", Strength: study.StrengthWeak, Topics: topics}})
	assertContains(t, out, "Math", "weak", "2 topics", "75% complete")

	out = Topics(topics, now)
	assertContains(t, out, "Algebra", "conf 3/5", "1.0/2.0h", "not_scheduled")
}

func TestProfileAndDay(t *testing.T) {
	exam := now.AddDate(0, 0, 12)
	p := study.DefaultProfile("riya")
	p.ExamDate = &exam
	assertContains(t, Profile(p, now), "riya", "180 min", "25 min work / 5 min break", "evening", "2025-03-22", "12 days to exam")

	out := DayProgress(session.DaySummary{PlannedSessions: 4, PlannedMinutes: 120, StudiedMinutes: 60, DoneSessions: 2, Adherence: 0.5})
	assertContains(t, out, "50%", "60 of 120 planned minutes", "2 of 4 sessions")
}

func TestWeekly(t *testing.T) {
	weeks := progress.RollupWeekly([]progress.DailyRecord{
		{Date: now, MinutesStudied: 120, SessionsCompleted: 3},
		{Date: now.AddDate(0, 0, 1), MinutesStudied: 60, SessionsCompleted: 1},
	})
	assertContains(t, Weekly(weeks, 180), "Weekly progress", "10 Mar", "180 min, 4 sessions, 2 days studied")
	assertContains(t, Weekly(nil, 180), "No study logged yet")
}

func TestHistory(t *testing.T) {
	events := []study.RevisionEvent{
		{ConfidenceBefore: 2, ConfidenceAfter: 4, Completed: true, RecordedAt: now},
		{ConfidenceBefore: 4, ConfidenceAfter: 4, Skipped: true, RecordedAt: now.AddDate(0, 0, 3)},
	}
	assertContains(t, History("Cells", events), "Revisions of Cells", "2025-03-10 08:00", "confidence 2 -> 4", "skipped")
	assertContains(t, History("Cells", nil), "Not revised yet")
}
