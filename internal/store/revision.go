package store

import (
	"context"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/riyaagrawal02/clivra/internal/study"
)

var revisionFields = []string{
	"sequence", "topic_id", "user_id", "confidence_before", "confidence_after",
	"completed", "skipped", "recorded_at",
}

// revisionLog implements RevisionLog.
type revisionLog struct {
	s *Store
}

func (r *revisionLog) Append(ctx context.Context, ev study.RevisionEvent) (int64, error) {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	q := builder().Insert(revisionTable.Name).
		Columns(revisionFields...).
		Values(seqNum, ev.TopicID, ev.UserID, ev.ConfidenceBefore, ev.ConfidenceAfter,
			ev.Completed, ev.Skipped, ev.RecordedAt.UTC())
	if _, err := exec(ctx, r.s.db, q); err != nil {
		return 0, fmt.Errorf("save revision event: %w", err)
	}
	r.s.log.Debug("revision recorded", "topic_id", ev.TopicID, "sequence", seqNum, "skipped", ev.Skipped)
	return seqNum, nil
}

func (r *revisionLog) History(ctx context.Context, topicID string, opts QueryOpts) ([]RevisionRecord, error) {
	b := builder()
	preds := []*entsql.Predicate{entsql.EQ("topic_id", topicID)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("recorded_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("recorded_at", opts.To.UTC()))
	}

	// Newest first so a limit keeps the latest events; reversed below.
	q := b.Select(revisionFields...).
		From(b.Table(revisionTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		q.Limit(opts.Limit)
	}

	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query revision history: %w", err)
	}
	defer rows.Close()

	var out []RevisionRecord
	for rows.Next() {
		var rec RevisionRecord
		err := rows.Scan(&rec.Sequence, &rec.TopicID, &rec.UserID, &rec.ConfidenceBefore,
			&rec.ConfidenceAfter, &rec.Completed, &rec.Skipped, &rec.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("scan revision event: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read revision history: %w", err)
	}
	slices.Reverse(out)
	return out, nil
}
