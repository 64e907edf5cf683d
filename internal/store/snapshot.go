package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/riyaagrawal02/clivra/internal/readiness"
)

var readinessFields = []string{
	"id", "sequence", "user_id", "taken_at", "status", "percentage",
	"completion_pct", "avg_confidence", "streak_days", "days_until_exam",
}

// readinessRepo implements ReadinessRepo.
type readinessRepo struct {
	s *Store
}

func (r *readinessRepo) Save(ctx context.Context, snap *ReadinessSnapshot) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q := builder().Insert(readinessTable.Name).
		Columns(readinessFields[1:]...).
		Values(seqNum, snap.UserID, snap.TakenAt.UTC(), string(snap.Result.Status), snap.Result.Percentage,
			snap.CompletionPct, snap.AvgConfidence, snap.StreakDays, snap.DaysUntilExam)
	res, err := exec(ctx, r.s.db, q)
	if err != nil {
		return fmt.Errorf("save readiness snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("readiness snapshot id: %w", err)
	}
	snap.ID = int(id)
	snap.Sequence = seqNum
	return nil
}

func (r *readinessRepo) Latest(ctx context.Context, userID string) (*ReadinessSnapshot, error) {
	b := builder()
	query, args := b.Select(readinessFields...).
		From(b.Table(readinessTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var (
		snap   ReadinessSnapshot
		status string
	)
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(
		&snap.ID, &snap.Sequence, &snap.UserID, &snap.TakenAt, &status, &snap.Result.Percentage,
		&snap.CompletionPct, &snap.AvgConfidence, &snap.StreakDays, &snap.DaysUntilExam,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest readiness snapshot: %w", err)
	}

	if snap.Result.Status, err = readiness.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("readiness snapshot %d: %w", snap.ID, err)
	}
	snap.Result.Message = readiness.MessageFor(snap.Result.Status)
	return &snap, nil
}

func (r *readinessRepo) Prune(ctx context.Context, userID string, keep int) error {
	// Find the sequence threshold: the Nth most recent snapshot is the newest
	// one that goes.
	b := builder()
	query, args := b.Select("sequence").
		From(b.Table(readinessTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	del := builder().Delete(readinessTable.Name).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.LTE("sequence", threshold)))
	if _, err := exec(ctx, r.s.db, del); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
