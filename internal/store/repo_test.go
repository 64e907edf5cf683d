package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/readiness"
	"github.com/riyaagrawal02/clivra/internal/study"
)

func seedSyllabus(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	subjects := []study.Subject{
		{ID: "s-math", UserID: "u1", Name: "Math", Strength: study.StrengthWeak, Color: "#ff0000"},
		{ID: "s-bio", UserID: "u1", Name: "Biology", Strength: study.StrengthStrong},
		{ID: "s-other", UserID: "u2", Name: "History"},
	}
	for _, sub := range subjects {
		require.NoError(t, s.Subjects().Upsert(ctx, sub))
	}

	studied := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	topics := []study.Topic{
		{ID: "t-alg", SubjectID: "s-math", Name: "Algebra", ConfidenceLevel: 2, PriorityScore: 70, EstimatedHours: 4, CompletedHours: 1.5, LastStudiedAt: &studied},
		{ID: "t-calc", SubjectID: "s-math", Name: "Calculus", ConfidenceLevel: 1, PriorityScore: 50, EstimatedHours: 6},
		{ID: "t-cell", SubjectID: "s-bio", Name: "Cells", ConfidenceLevel: 5, PriorityScore: 20, EstimatedHours: 2, CompletedHours: 2, IsCompleted: true},
		{ID: "t-war", SubjectID: "s-other", Name: "Wars", ConfidenceLevel: 3, EstimatedHours: 1},
	}
	for _, topic := range topics {
		require.NoError(t, s.Topics().Upsert(ctx, topic))
	}
}

func TestSubjectRepo(t *testing.T) {
	s := openTestStore(t)
	seedSyllabus(t, s)
	ctx := context.Background()
	repo := s.Subjects()

	subs, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Math", subs[0].Name)
	assert.Equal(t, study.StrengthWeak, subs[0].Strength)
	assert.Equal(t, "#ff0000", subs[0].Color)
	assert.Equal(t, "Biology", subs[1].Name)

	got, err := repo.FindByName(ctx, "u2", "History")
	require.NoError(t, err)
	assert.Equal(t, study.StrengthAverage, got.Strength)

	_, err = repo.FindByName(ctx, "u1", "History")
	assert.ErrorIs(t, err, ErrNotFound)

	// Upsert keeps the row and updates its fields.
	require.NoError(t, repo.Upsert(ctx, study.Subject{ID: "s-math", UserID: "u1", Name: "Mathematics", Strength: study.StrengthAverage}))
	got, err = repo.Get(ctx, "u1", "s-math")
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", got.Name)
	assert.Equal(t, study.StrengthAverage, got.Strength)

	users, err := repo.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, users)
}

func TestSubjectDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	seedSyllabus(t, s)
	ctx := context.Background()

	require.NoError(t, s.Subjects().Delete(ctx, "u1", "s-math"))

	_, err := s.Topics().Get(ctx, "u1", "t-alg")
	assert.True(t, errors.Is(err, ErrNotFound), "topic should be deleted with its subject, got %v", err)

	err = s.Subjects().Delete(ctx, "u1", "s-math")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepos_ScopeLookupsByUser(t *testing.T) {
	s := openTestStore(t)
	seedSyllabus(t, s)
	ctx := context.Background()

	_, err := s.Topics().Get(ctx, "u2", "t-alg")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Subjects().Get(ctx, "u2", "s-math")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Subjects().Delete(ctx, "u2", "s-math")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Subjects().Get(ctx, "u1", "s-math")
	assert.NoError(t, err, "another user's delete must leave the subject in place")

	got, err := s.Topics().Get(ctx, "u2", "t-war")
	require.NoError(t, err)
	assert.Equal(t, "Wars", got.Name)
}

func TestTopicRepo(t *testing.T) {
	s := openTestStore(t)
	seedSyllabus(t, s)
	ctx := context.Background()
	repo := s.Topics()

	got, err := repo.Get(ctx, "u1", "t-alg")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", got.Name)
	assert.Equal(t, 2, got.ConfidenceLevel)
	assert.Equal(t, 70, got.PriorityScore)
	assert.InDelta(t, 1.5, got.CompletedHours, 1e-9)
	require.NotNil(t, got.LastStudiedAt)
	assert.True(t, got.LastStudiedAt.Equal(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.Nil(t, got.NextRevisionAt)

	all, err := repo.List(ctx, "u1", TopicFilter{})
	require.NoError(t, err)
	var names []string
	for _, topic := range all {
		names = append(names, topic.Name)
	}
	assert.Equal(t, []string{"Algebra", "Calculus", "Cells"}, names)

	open := false
	pending, err := repo.List(ctx, "u1", TopicFilter{Completed: &open})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	bio, err := repo.List(ctx, "u1", TopicFilter{SubjectID: "s-bio"})
	require.NoError(t, err)
	require.Len(t, bio, 1)
	assert.True(t, bio[0].IsCompleted)

	found, err := repo.FindByName(ctx, "u1", "Calculus")
	require.NoError(t, err)
	assert.Equal(t, "t-calc", found.ID)

	_, err = repo.FindByName(ctx, "u2", "Calculus")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopicRepo_NormalizesMissingColumns(t *testing.T) {
	s := openTestStore(t)
	seedSyllabus(t, s)
	ctx := context.Background()

	_, err := s.db.Exec(`INSERT INTO topics (id, subject_id, name, confidence_level, priority_score, estimated_hours, completed_hours, revision_count, is_completed)
		VALUES ('t-raw', 's-bio', 'Genetics', NULL, NULL, NULL, -3, 0, 0)`)
	require.NoError(t, err)

	got, err := s.Topics().Get(ctx, "u1", "t-raw")
	require.NoError(t, err)
	assert.Equal(t, study.DefaultConfidence, got.ConfidenceLevel)
	assert.Equal(t, study.DefaultPriority, got.PriorityScore)
	assert.Equal(t, study.DefaultEstimatedHours, got.EstimatedHours)
	assert.Equal(t, 0.0, got.CompletedHours)
}

func TestTopicRepo_RoundTripsRevisionState(t *testing.T) {
	s := openTestStore(t)
	seedSyllabus(t, s)
	ctx := context.Background()

	topic, err := s.Topics().Get(ctx, "u1", "t-alg")
	require.NoError(t, err)
	revised := time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC)
	next := revised.AddDate(0, 0, 3)
	topic.LastRevisionDate = &revised
	topic.NextRevisionAt = &next
	topic.RevisionCount = 1
	require.NoError(t, s.Topics().Upsert(ctx, topic))

	got, err := s.Topics().Get(ctx, "u1", "t-alg")
	require.NoError(t, err)
	assert.Equal(t, 1, got.RevisionCount)
	require.NotNil(t, got.NextRevisionAt)
	assert.True(t, got.NextRevisionAt.Equal(next))
	require.NotNil(t, got.LastRevisionDate)
	assert.True(t, got.LastRevisionDate.Equal(revised))
}

func TestProfileRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Profiles()

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	exam := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, study.Profile{
		UserID:              "u1",
		DailyStudyMinutes:   240,
		PomodoroWorkMinutes: 50,
		PreferredSlot:       study.SlotMorning,
		ExamDate:            &exam,
	}))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 240, got.DailyStudyMinutes)
	assert.Equal(t, 50, got.PomodoroWorkMinutes)
	assert.Equal(t, study.DefaultPomodoroBreakMinutes, got.PomodoroBreakMinutes)
	assert.Equal(t, study.SlotMorning, got.PreferredSlot)
	require.NotNil(t, got.ExamDate)
	assert.True(t, got.ExamDate.Equal(exam))
}

func TestScheduleRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Schedules()
	day := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)

	empty, err := repo.ForDate(ctx, "u1", day)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := []study.ScheduleSession{
		{TopicID: "t1", TopicName: "Algebra", SubjectName: "Math", Type: study.SessionLearning, DurationMinutes: 60, PriorityScore: 80, Reason: "Never studied before"},
		{TopicID: "t2", TopicName: "Cells", SubjectName: "Biology", Type: study.SessionRevision, DurationMinutes: 30, PriorityScore: 60, IsRevisionScheduled: true},
	}
	require.NoError(t, repo.Replace(ctx, "u1", day, first))

	got, err := repo.ForDate(ctx, "u1", day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := []study.ScheduleSession{
		{TopicID: "t3", TopicName: "Optics", SubjectName: "Physics", Type: study.SessionRecall, DurationMinutes: 25, IsRevisionScheduled: true},
	}
	require.NoError(t, repo.Replace(ctx, "u1", day, second))
	got, err = repo.ForDate(ctx, "u1", day)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	other, err := repo.ForDate(ctx, "u2", day)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRevisionLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	log := s.Revisions()
	base := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		topic := "t1"
		if i == 2 {
			topic = "t2"
		}
		seq, err := log.Append(ctx, study.RevisionEvent{
			TopicID:          topic,
			UserID:           "u1",
			ConfidenceBefore: 2,
			ConfidenceAfter:  3,
			Completed:        true,
			RecordedAt:       base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), seq)
	}

	hist, err := log.History(ctx, "t1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, []int64{1, 2, 4}, []int64{hist[0].Sequence, hist[1].Sequence, hist[2].Sequence})
	assert.True(t, hist[2].RecordedAt.Equal(base.AddDate(0, 0, 3)))
	assert.True(t, hist[0].Completed)

	latest, err := log.History(ctx, "t1", QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, []int64{2, 4}, []int64{latest[0].Sequence, latest[1].Sequence}, "limit keeps the newest events, oldest first")

	after, err := log.History(ctx, "t1", QueryOpts{After: 1, Before: 4, Limit: 1})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, int64(2), after[0].Sequence)

	window, err := log.History(ctx, "t1", QueryOpts{From: base.AddDate(0, 0, 1), To: base.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, int64(2), window[0].Sequence)
}

func TestProgressRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Progress()

	d1 := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 5, 21, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddDaily(ctx, "u1", progress.DailyDelta{Date: d1, Minutes: 25, Sessions: 1}))
	require.NoError(t, repo.AddDaily(ctx, "u1", progress.DailyDelta{Date: d1, Minutes: 50, Sessions: 1}))
	require.NoError(t, repo.AddDaily(ctx, "u1", progress.DailyDelta{Date: d2, Minutes: 30, Sessions: 1}))
	require.NoError(t, repo.AddDaily(ctx, "u2", progress.DailyDelta{Date: d1, Minutes: 90, Sessions: 2}))

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	got, err := repo.DailyRange(ctx, "u1", from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-03", got[0].Key())
	assert.Equal(t, 75, got[0].MinutesStudied)
	assert.Equal(t, 2, got[0].SessionsCompleted)
	assert.Equal(t, "2025-03-05", got[1].Key())
	assert.Equal(t, 30, got[1].MinutesStudied)

	narrow, err := repo.DailyRange(ctx, "u1", d2, d2)
	require.NoError(t, err)
	assert.Len(t, narrow, 1)
}

func TestReadinessRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Readiness()

	snap, err := repo.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, snap)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		result := readiness.Estimate(float64(i*10), 3, i, 30)
		err := repo.Save(ctx, &ReadinessSnapshot{
			UserID:        "u1",
			TakenAt:       base.AddDate(0, 0, i),
			Result:        result,
			CompletionPct: float64(i * 10),
			AvgConfidence: 3,
			StreakDays:    i,
			DaysUntilExam: 30,
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Save(ctx, &ReadinessSnapshot{UserID: "u2", TakenAt: base, Result: readiness.Estimate(0, 1, 0, 30)}))

	latest, err := repo.Latest(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 6, latest.StreakDays)
	assert.Equal(t, int64(7), latest.Sequence)
	assert.Equal(t, readiness.Estimate(60, 3, 6, 30), latest.Result)
	assert.True(t, latest.TakenAt.Equal(base.AddDate(0, 0, 6)))

	require.NoError(t, repo.Prune(ctx, "u1", 5))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM readiness_snapshots WHERE user_id = 'u1'`).Scan(&count))
	assert.Equal(t, 5, count)
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM readiness_snapshots WHERE user_id = 'u2'`).Scan(&count))
	assert.Equal(t, 1, count, "prune must not touch other users")

	latest, err = repo.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), latest.Sequence)

	// Pruning with fewer snapshots than keep is a no-op.
	require.NoError(t, repo.Prune(ctx, "u1", 10))
}
