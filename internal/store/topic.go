package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/riyaagrawal02/clivra/internal/study"
)

var topicFields = []string{
	"id", "subject_id", "name",
	"confidence_level", "priority_score",
	"estimated_hours", "completed_hours",
	"last_studied_at", "last_revision_date", "next_revision_at",
	"revision_count", "is_completed",
}

// topicRepo implements TopicRepo.
type topicRepo struct {
	s *Store
}

func (r *topicRepo) Upsert(ctx context.Context, t study.Topic) error {
	values := []any{
		t.ID, t.SubjectID, t.Name,
		t.ConfidenceLevel, t.PriorityScore,
		t.EstimatedHours, t.CompletedHours,
		nullTime(t.LastStudiedAt), nullTime(t.LastRevisionDate), nullTime(t.NextRevisionAt),
		t.RevisionCount, t.IsCompleted,
	}
	q := builder().Insert(topicsTable.Name).
		Columns(topicFields...).
		Values(values...).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if _, err := exec(ctx, r.s.db, q); err != nil {
		return fmt.Errorf("upsert topic %q: %w", t.Name, err)
	}
	return nil
}

func (r *topicRepo) Get(ctx context.Context, userID, id string) (study.Topic, error) {
	q, t, s := r.joined()
	q.Where(entsql.And(entsql.EQ(s.C("user_id"), userID), entsql.EQ(t.C("id"), id)))
	return r.one(ctx, q)
}

func (r *topicRepo) FindByName(ctx context.Context, userID, name string) (study.Topic, error) {
	q, t, s := r.joined()
	q.Where(entsql.And(entsql.EQ(s.C("user_id"), userID), entsql.EQ(t.C("name"), name))).
		OrderBy(s.C("created_at")).
		Limit(1)
	return r.one(ctx, q)
}

func (r *topicRepo) List(ctx context.Context, userID string, f TopicFilter) ([]study.Topic, error) {
	q, t, s := r.joined()
	preds := []*entsql.Predicate{entsql.EQ(s.C("user_id"), userID)}
	if f.SubjectID != "" {
		preds = append(preds, entsql.EQ(t.C("subject_id"), f.SubjectID))
	}
	if f.Completed != nil {
		preds = append(preds, entsql.EQ(t.C("is_completed"), *f.Completed))
	}
	q.Where(entsql.And(preds...)).
		OrderBy(s.C("created_at"), s.C("rowid"), t.C("rowid"))

	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var out []study.Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		out = append(out, topic)
	}
	return out, rows.Err()
}

// joined selects topic columns from topics joined to their subject.
func (r *topicRepo) joined() (*entsql.Selector, *entsql.SelectTable, *entsql.SelectTable) {
	b := builder()
	t := b.Table(topicsTable.Name)
	s := b.Table(subjectsTable.Name)
	cols := make([]string, len(topicFields))
	for i, f := range topicFields {
		cols[i] = t.C(f)
	}
	q := b.Select(cols...).From(t).Join(s).On(t.C("subject_id"), s.C("id"))
	return q, t, s
}

func (r *topicRepo) one(ctx context.Context, q *entsql.Selector) (study.Topic, error) {
	query, args := q.Query()
	topic, err := scanTopic(r.s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return study.Topic{}, ErrNotFound
	}
	if err != nil {
		return study.Topic{}, fmt.Errorf("query topic: %w", err)
	}
	return topic, nil
}

// scanTopic reads a row in topicFields order and normalizes it, so rows
// written by older versions or by hand get the same defaults as imports.
func scanTopic(row rowScanner) (study.Topic, error) {
	var (
		raw                      study.RawTopic
		confidence, priority     sql.NullInt64
		estimated, completed     sql.NullFloat64
		studied, revised, nextAt sql.NullTime
		count                    sql.NullInt64
	)
	err := row.Scan(
		&raw.ID, &raw.SubjectID, &raw.Name,
		&confidence, &priority,
		&estimated, &completed,
		&studied, &revised, &nextAt,
		&count, &raw.IsCompleted,
	)
	if err != nil {
		return study.Topic{}, err
	}
	raw.ConfidenceLevel = intPtr(confidence)
	raw.PriorityScore = intPtr(priority)
	raw.EstimatedHours = floatPtr(estimated)
	raw.CompletedHours = floatPtr(completed)
	raw.LastStudiedAt = timePtr(studied)
	raw.LastRevisionDate = timePtr(revised)
	raw.NextRevisionAt = timePtr(nextAt)
	raw.RevisionCount = intPtr(count)
	return study.NormalizeTopic(raw), nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
