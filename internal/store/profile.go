package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/riyaagrawal02/clivra/internal/study"
)

var profileFields = []string{
	"user_id", "daily_study_minutes", "pomodoro_work_minutes",
	"pomodoro_break_minutes", "preferred_slot", "exam_date",
}

// profileRepo implements ProfileRepo.
type profileRepo struct {
	s *Store
}

func (r *profileRepo) Get(ctx context.Context, userID string) (study.Profile, error) {
	b := builder()
	query, args := b.Select(profileFields...).
		From(b.Table(profilesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var (
		p    study.Profile
		slot string
		exam sql.NullTime
	)
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(
		&p.UserID, &p.DailyStudyMinutes, &p.PomodoroWorkMinutes,
		&p.PomodoroBreakMinutes, &slot, &exam,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return study.Profile{}, ErrNotFound
	}
	if err != nil {
		return study.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	if parsed, err := study.ParseTimeSlot(slot); err == nil {
		p.PreferredSlot = parsed
	}
	p.ExamDate = timePtr(exam)
	return study.NormalizeProfile(p), nil
}

func (r *profileRepo) Save(ctx context.Context, p study.Profile) error {
	p = study.NormalizeProfile(p)
	q := builder().Insert(profilesTable.Name).
		Columns(profileFields...).
		Values(p.UserID, p.DailyStudyMinutes, p.PomodoroWorkMinutes,
			p.PomodoroBreakMinutes, string(p.PreferredSlot), nullTime(p.ExamDate)).
		OnConflict(entsql.ConflictColumns("user_id"), entsql.ResolveWithNewValues())
	if _, err := exec(ctx, r.s.db, q); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
