package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/riyaagrawal02/clivra/internal/progress"
)

// progressRepo implements ProgressRepo.
type progressRepo struct {
	s *Store
}

func (r *progressRepo) AddDaily(ctx context.Context, userID string, d progress.DailyDelta) error {
	minutes, sessions := max(d.Minutes, 0), max(d.Sessions, 0)
	q := builder().Insert(progressTable.Name).
		Columns("user_id", "date", "minutes_studied", "sessions_completed").
		Values(userID, progress.DayKey(d.Date), minutes, sessions).
		OnConflict(
			entsql.ConflictColumns("user_id", "date"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("minutes_studied", minutes)
				u.Add("sessions_completed", sessions)
			}),
		)
	if _, err := exec(ctx, r.s.db, q); err != nil {
		return fmt.Errorf("add daily progress: %w", err)
	}
	return nil
}

func (r *progressRepo) DailyRange(ctx context.Context, userID string, from, to time.Time) ([]progress.DailyRecord, error) {
	b := builder()
	q := b.Select("date", "minutes_studied", "sessions_completed").
		From(b.Table(progressTable.Name)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.GTE("date", progress.DayKey(from)),
			entsql.LTE("date", progress.DayKey(to)),
		)).
		OrderBy("date")
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query daily progress: %w", err)
	}
	defer rows.Close()

	var out []progress.DailyRecord
	for rows.Next() {
		var (
			rec progress.DailyRecord
			day string
		)
		if err := rows.Scan(&day, &rec.MinutesStudied, &rec.SessionsCompleted); err != nil {
			return nil, fmt.Errorf("scan daily progress: %w", err)
		}
		rec.Date, err = time.ParseInLocation("2006-01-02", day, from.Location())
		if err != nil {
			return nil, fmt.Errorf("parse progress date %q: %w", day, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
