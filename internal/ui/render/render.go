// Package render formats planner output for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/readiness"
	"github.com/riyaagrawal02/clivra/internal/recovery"
	"github.com/riyaagrawal02/clivra/internal/schedule"
	"github.com/riyaagrawal02/clivra/internal/session"
	"github.com/riyaagrawal02/clivra/internal/spacedrep"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/components"
	"github.com/riyaagrawal02/clivra/internal/ui/theme"
)

const barWidth = 48

// Schedule renders a day's sessions followed by minute totals.
func Schedule(date time.Time, sessions []study.ScheduleSession) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Study plan for "+date.Format("Mon, 02 Jan 2006")) + "\n")

	if len(sessions) == 0 {
		b.WriteString(theme.Hint.Render("Nothing scheduled. Add topics or raise your daily study minutes.") + "\n")
		return b.String()
	}

	nameWidth := 0
	for _, s := range sessions {
		nameWidth = max(nameWidth, lipgloss.Width(s.SubjectName+" / "+s.TopicName))
	}

	for i, s := range sessions {
		kind := lipgloss.NewStyle().Foreground(theme.SessionColor(s.Type)).Bold(true).Width(9).Render(string(s.Type))
		subject := lipgloss.NewStyle().Foreground(theme.SubjectColor(s.SubjectColor)).Render(s.SubjectName)
		name := lipgloss.NewStyle().Width(nameWidth).Render(subject + theme.Subtitle.Render(" / ") + theme.Body.Render(s.TopicName))
		fmt.Fprintf(&b, "%2d. %s %s %4d min  %s\n", i+1, kind, name, s.DurationMinutes, theme.Hint.Render(s.Reason))
	}

	t := schedule.Summarize(sessions)
	fmt.Fprintf(&b, "\n%s %d min in %d sessions (learning %d, revision %d, recall %d)\n",
		theme.Label.Render("Total:"), t.TotalMinutes, t.Sessions, t.LearningMinutes, t.RevisionMinutes, t.RecallMinutes)
	return b.String()
}

// DayProgress renders how much of the planned day is done.
func DayProgress(s session.DaySummary) string {
	var b strings.Builder
	bar := components.NewProgressBar("Today", s.Adherence, true, barWidth)
	b.WriteString(bar.View() + "\n")
	fmt.Fprintf(&b, "%d of %d planned minutes studied, %d of %d sessions done\n",
		s.StudiedMinutes, s.PlannedMinutes, s.DoneSessions, s.PlannedSessions)
	return b.String()
}

// Readiness renders a readiness estimate with the inputs behind it. previous
// is the last stored percentage, or nil when there is none.
func Readiness(res readiness.Result, sum progress.Summary, streak, daysUntilExam int, previous *readiness.Result) string {
	var b strings.Builder
	status := theme.StatusStyle(res.Status).Render(fmt.Sprintf("%s (%d%%)", res.Status.Label(), res.Percentage))
	b.WriteString(theme.Title.Render("Exam readiness") + "  " + status)
	if previous != nil {
		b.WriteString("  " + trend(res.Percentage-previous.Percentage))
		b.WriteString(statusChange(res.Status, previous.Status))
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(res.Message) + "\n\n")

	bars := []components.ProgressBar{
		{Label: "Readiness ", Percent: float64(res.Percentage) / 100, ShowPercent: true, Width: barWidth, Fill: theme.Primary},
		{Label: "Completion", Percent: sum.CompletionPct / 100, ShowPercent: true, Width: barWidth},
		{Label: "Confidence", Percent: sum.AvgConfidence / study.MaxConfidence, ShowPercent: true, Width: barWidth, Fill: theme.Accent},
	}
	for _, bar := range bars {
		b.WriteString(bar.View() + "\n")
	}

	fmt.Fprintf(&b, "\n%s %d/%d topics completed, %s streak, %s\n",
		theme.Label.Render("Details:"), sum.Completed, sum.Total, days(streak), examDays(daysUntilExam))
	return b.String()
}

func trend(delta int) string {
	switch {
	case delta > 0:
		return theme.Good.Render(fmt.Sprintf("▲ %d", delta))
	case delta < 0:
		return theme.Bad.Render(fmt.Sprintf("▼ %d", -delta))
	default:
		return theme.Subtitle.Render("= 0")
	}
}

func statusChange(cur, prev readiness.Status) string {
	switch {
	case cur.Rank() > prev.Rank():
		return "  " + theme.Good.Render("up from "+prev.Label())
	case cur.Rank() < prev.Rank():
		return "  " + theme.Bad.Render("down from "+prev.Label())
	default:
		return ""
	}
}

// Recovery renders a catch-up plan.
func Recovery(p recovery.Plan, missed int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Recovery plan") + "\n")
	fmt.Fprintf(&b, "%s %d min\n", theme.Label.Render("Missed:"), missed)
	if p.DaysToRecover > 0 {
		fmt.Fprintf(&b, "%s +%d min/day for %s (cap %d min/day)\n",
			theme.Label.Render("Plan:  "), p.ExtraMinutesPerDay, days(p.DaysToRecover), p.MaxExtraPerDay)
	}
	style := theme.Body
	if p.RecoverableMinutes < missed {
		style = theme.Warn
	}
	b.WriteString(style.Render(p.Message) + "\n")
	return b.String()
}

// Due renders topics due for revision, as returned by spacedrep.DueTopics.
func Due(topics []study.Topic, now time.Time) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Due for revision") + "\n")
	if len(topics) == 0 {
		b.WriteString(theme.Hint.Render("Nothing due. Nice work.") + "\n")
		return b.String()
	}
	for _, t := range topics {
		status := spacedrep.Status(t, now)
		style := theme.Warn
		if status == spacedrep.ReviewOverdue {
			style = theme.Bad
		}
		overdue := int(spacedrep.OverdueDays(t, now))
		fmt.Fprintf(&b, "  %s %s  %s  confidence %d/5, %d revisions\n",
			style.Width(8).Render(string(status)), theme.Body.Render(t.Name),
			theme.Subtitle.Render(fmt.Sprintf("+%s", days(overdue))), t.ConfidenceLevel, t.RevisionCount)
	}
	return b.String()
}

// Subjects renders subjects with per-subject completion.
func Subjects(subjects []study.Subject) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Subjects") + "\n")
	if len(subjects) == 0 {
		b.WriteString(theme.Hint.Render("No subjects yet. Add one with `clivra subject add` or `clivra import`.") + "\n")
		return b.String()
	}
	for _, s := range subjects {
		sum := progress.Summarize(s.Topics)
		name := lipgloss.NewStyle().Foreground(theme.SubjectColor(s.Color)).Bold(true).Render(s.Name)
		fmt.Fprintf(&b, "  %s  %s  %d topics, %.0f%% complete\n",
			name, theme.Subtitle.Render(string(s.Strength)), sum.Total, sum.CompletionPct)
	}
	return b.String()
}

// Topics renders topics with their study state, ordered as given.
func Topics(topics []study.Topic, now time.Time) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Topics") + "\n")
	if len(topics) == 0 {
		b.WriteString(theme.Hint.Render("No topics yet.") + "\n")
		return b.String()
	}
	for _, t := range topics {
		mark := theme.Subtitle.Render("○")
		if t.IsCompleted {
			mark = theme.Good.Render("●")
		}
		fmt.Fprintf(&b, "  %s %s  conf %d/5  %.1f/%.1fh  priority %d  %s\n",
			mark, theme.Body.Render(t.Name), t.ConfidenceLevel, t.CompletedHours, t.EstimatedHours,
			t.PriorityScore, theme.Subtitle.Render(string(spacedrep.Status(t, now))))
	}
	return b.String()
}

// Profile renders a user's study preferences.
func Profile(p study.Profile, now time.Time) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Profile: "+p.UserID) + "\n")
	fmt.Fprintf(&b, "  %s %d min\n", theme.Label.Render("Daily study:   "), p.DailyStudyMinutes)
	fmt.Fprintf(&b, "  %s %d min work / %d min break\n", theme.Label.Render("Pomodoro:      "), p.PomodoroWorkMinutes, p.PomodoroBreakMinutes)
	fmt.Fprintf(&b, "  %s %s\n", theme.Label.Render("Preferred slot:"), p.PreferredSlot)
	exam := "not set"
	if p.ExamDate != nil {
		exam = fmt.Sprintf("%s (%s)", p.ExamDate.Format("2006-01-02"), examDays(study.DaysUntilExam(p.ExamDate, now)))
	}
	fmt.Fprintf(&b, "  %s %s\n", theme.Label.Render("Exam date:     "), exam)
	return b.String()
}

// Weekly renders weekly study totals against the weekly target.
func Weekly(weeks []progress.WeeklyRecord, dailyTarget int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Weekly progress") + "\n")
	if len(weeks) == 0 {
		b.WriteString(theme.Hint.Render("No study logged yet.") + "\n")
		return b.String()
	}
	target := dailyTarget * 7
	for _, w := range weeks {
		pct := 0.0
		if target > 0 {
			pct = float64(w.MinutesStudied) / float64(target)
		}
		bar := components.ProgressBar{Width: barWidth / 2, Percent: pct}
		fmt.Fprintf(&b, "  %s  %s  %d min, %d sessions, %s studied\n",
			theme.Label.Render(w.WeekStart.Format("02 Jan")), bar.View(),
			w.MinutesStudied, w.SessionsCompleted, days(w.DaysStudied))
	}
	return b.String()
}

// History renders a topic's revision log, oldest first.
func History(topic string, events []study.RevisionEvent) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Revisions of "+topic) + "\n")
	if len(events) == 0 {
		b.WriteString(theme.Hint.Render("Not revised yet.") + "\n")
		return b.String()
	}
	for _, ev := range events {
		when := theme.Label.Render(ev.RecordedAt.Format("2006-01-02 15:04"))
		if ev.Skipped {
			fmt.Fprintf(&b, "  %s  %s\n", when, theme.Warn.Render("skipped"))
			continue
		}
		fmt.Fprintf(&b, "  %s  confidence %d -> %d\n", when, ev.ConfidenceBefore, ev.ConfidenceAfter)
	}
	return b.String()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func examDays(n int) string {
	switch {
	case n < 0:
		return "exam has passed"
	case n == 0:
		return "exam is today"
	default:
		return days(n) + " to exam"
	}
}
