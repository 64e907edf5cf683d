package schedule

import (
	"sort"
	"time"

	"github.com/riyaagrawal02/clivra/internal/priority"
	"github.com/riyaagrawal02/clivra/internal/study"
)

// candidate is a topic together with its subject and ranking.
type candidate struct {
	topic   study.Topic
	subject *study.Subject
	score   priority.Score
}

// packState is the running result of the greedy packing fold.
type packState struct {
	remaining     int
	revisionSpent int
	sessions      []study.ScheduleSession
}

func (st packState) with(s study.ScheduleSession, countsTowardRevision bool) packState {
	next := packState{
		remaining:     st.remaining - s.DurationMinutes,
		revisionSpent: st.revisionSpent,
		sessions:      append(st.sessions[:len(st.sessions):len(st.sessions)], s),
	}
	if countsTowardRevision {
		next.revisionSpent += s.DurationMinutes
	}
	return next
}

// Generate builds one day's study sessions.
//
// Studied topics that pass the revision gate are packed first, up to the
// revision budget; the rest of the day goes to learning sessions. The result
// is interleaved for variety, so callers wanting priority order must sort by
// PriorityScore themselves. Inputs are never modified.
func Generate(subjects []study.Subject, cfg Config, daysUntilExam int, now time.Time) []study.ScheduleSession {
	if cfg.PomodoroWorkMinutes <= 0 || cfg.AvailableMinutes < cfg.PomodoroWorkMinutes {
		return nil
	}

	revisionCands, learningCands := partition(subjects, daysUntilExam, now)

	st := packState{remaining: cfg.AvailableMinutes}
	st = packRevision(st, revisionCands, cfg)
	st = packLearning(st, learningCands, cfg)

	return interleave(st.sessions)
}

// partition splits every non-completed topic into revision and learning
// candidates, each sorted by descending score. Ties keep enumeration order
// (subjects as given, then topics as given).
func partition(subjects []study.Subject, daysUntilExam int, now time.Time) (revision, learning []candidate) {
	for i := range subjects {
		subj := &subjects[i]
		for _, t := range subj.Topics {
			if t.IsCompleted {
				continue
			}
			score, elig := priority.Rank(t, subj.Strength, daysUntilExam, now)
			c := candidate{topic: t, subject: subj, score: score}
			if elig.Eligible {
				revision = append(revision, c)
			} else {
				learning = append(learning, c)
			}
		}
	}

	byScore := func(cs []candidate) func(i, j int) bool {
		return func(i, j int) bool { return cs[i].score.Value > cs[j].score.Value }
	}
	sort.SliceStable(revision, byScore(revision))
	sort.SliceStable(learning, byScore(learning))
	return revision, learning
}

// packRevision consumes revision candidates while at least one work block
// remains and the revision budget is not used up. Recall sessions cost one
// work block and do not count toward the budget. A full revision session
// that would overrun the remaining time or the budget is skipped.
func packRevision(st packState, cands []candidate, cfg Config) packState {
	work := cfg.PomodoroWorkMinutes
	full := cfg.SessionMinutes()
	budget := cfg.RevisionBudget()

	for _, c := range cands {
		if st.remaining < work || st.revisionSpent >= budget {
			break
		}
		if isRecall(c.topic) {
			st = st.with(newSession(c, study.SessionRecall, work, reasonRecall), false)
			continue
		}
		if full > st.remaining || st.revisionSpent+full > budget {
			continue
		}
		st = st.with(newSession(c, study.SessionRevision, full, reasonRevision), true)
	}
	return st
}

// packLearning consumes learning candidates while a full session fits.
// First exposure to a topic gets a double session, capped at what is left.
func packLearning(st packState, cands []candidate, cfg Config) packState {
	full := cfg.SessionMinutes()
	if full <= 0 {
		return st
	}

	for _, c := range cands {
		if st.remaining < full {
			break
		}
		d := full
		if !c.topic.HasBeenStudied() {
			d = min(2*full, st.remaining)
		}
		st = st.with(newSession(c, study.SessionLearning, d, reasonLearning), false)
	}
	return st
}

func isRecall(t study.Topic) bool {
	return t.RevisionCount >= RecallMinRevisions && t.ConfidenceLevel >= RecallMinConfidence
}

func newSession(c candidate, typ study.SessionType, minutes int, fallback string) study.ScheduleSession {
	reason := c.score.TopReason()
	if reason == "" {
		reason = fallback
	}
	return study.ScheduleSession{
		TopicID:             c.topic.ID,
		TopicName:           c.topic.Name,
		SubjectName:         c.subject.Name,
		SubjectColor:        c.subject.Color,
		Type:                typ,
		DurationMinutes:     minutes,
		PriorityScore:       c.score.Value,
		Reason:              reason,
		IsRevisionScheduled: typ != study.SessionLearning,
	}
}

// interleave emits up to two non-revision sessions, then one revision
// session, repeating until both queues are empty.
func interleave(sessions []study.ScheduleSession) []study.ScheduleSession {
	if len(sessions) == 0 {
		return nil
	}

	var revisions, others []study.ScheduleSession
	for _, s := range sessions {
		if s.Type == study.SessionRevision {
			revisions = append(revisions, s)
		} else {
			others = append(others, s)
		}
	}

	out := make([]study.ScheduleSession, 0, len(sessions))
	i, j := 0, 0
	for i < len(others) || j < len(revisions) {
		for k := 0; k < 2 && i < len(others); k++ {
			out = append(out, others[i])
			i++
		}
		if j < len(revisions) {
			out = append(out, revisions[j])
			j++
		}
	}
	return out
}
