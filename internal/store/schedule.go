package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/study"
)

var scheduleFields = []string{
	"topic_id", "topic_name", "subject_name", "subject_color", "session_type",
	"duration_minutes", "priority_score", "reason", "is_revision_scheduled",
}

// scheduleRepo implements ScheduleRepo.
type scheduleRepo struct {
	s *Store
}

func (r *scheduleRepo) Replace(ctx context.Context, userID string, date time.Time, sessions []study.ScheduleSession) error {
	day := progress.DayKey(date)
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		del := builder().Delete(scheduleTable.Name).
			Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("date", day)))
		if _, err := exec(ctx, tx, del); err != nil {
			return fmt.Errorf("clear schedule: %w", err)
		}
		if len(sessions) == 0 {
			return nil
		}

		ins := builder().Insert(scheduleTable.Name).
			Columns(append([]string{"user_id", "date", "position"}, scheduleFields...)...)
		for i, sess := range sessions {
			ins.Values(userID, day, i,
				sess.TopicID, sess.TopicName, sess.SubjectName, sess.SubjectColor, string(sess.Type),
				sess.DurationMinutes, sess.PriorityScore, sess.Reason, sess.IsRevisionScheduled)
		}
		if _, err := exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}
		return nil
	})
}

func (r *scheduleRepo) ForDate(ctx context.Context, userID string, date time.Time) ([]study.ScheduleSession, error) {
	b := builder()
	q := b.Select(scheduleFields...).
		From(b.Table(scheduleTable.Name)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("date", progress.DayKey(date)))).
		OrderBy("position")
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	out := []study.ScheduleSession{}
	for rows.Next() {
		var (
			sess study.ScheduleSession
			kind  string
		)
		err := rows.Scan(&sess.TopicID, &sess.TopicName, &sess.SubjectName, &sess.SubjectColor, &kind,
			&sess.DurationMinutes, &sess.PriorityScore, &sess.Reason, &sess.IsRevisionScheduled)
		if err != nil {
			return nil, fmt.Errorf("scan schedule session: %w", err)
		}
		if sess.Type, err = study.ParseSessionType(kind); err != nil {
			return nil, fmt.Errorf("schedule session %s: %w", sess.TopicID, err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}
