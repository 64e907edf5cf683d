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

var subjectFields = []string{"id", "user_id", "name", "strength", "color"}

// subjectRepo implements SubjectRepo.
type subjectRepo struct {
	s *Store
}

func (r *subjectRepo) Upsert(ctx context.Context, sub study.Subject) error {
	if sub.Strength == "" {
		sub.Strength = study.StrengthAverage
	}
	q := builder().Insert(subjectsTable.Name).
		Columns(append(subjectFields, "created_at")...).
		Values(sub.ID, sub.UserID, sub.Name, string(sub.Strength), sub.Color, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("name")
				u.SetExcluded("strength")
				u.SetExcluded("color")
			}),
		)
	if _, err := exec(ctx, r.s.db, q); err != nil {
		return fmt.Errorf("upsert subject %q: %w", sub.Name, err)
	}
	return nil
}

func (r *subjectRepo) Get(ctx context.Context, userID, id string) (study.Subject, error) {
	b := builder()
	q := b.Select(subjectFields...).
		From(b.Table(subjectsTable.Name)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id)))
	return r.one(ctx, q)
}

func (r *subjectRepo) FindByName(ctx context.Context, userID, name string) (study.Subject, error) {
	b := builder()
	q := b.Select(subjectFields...).
		From(b.Table(subjectsTable.Name)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("name", name)))
	return r.one(ctx, q)
}

func (r *subjectRepo) List(ctx context.Context, userID string) ([]study.Subject, error) {
	b := builder()
	q := b.Select(subjectFields...).
		From(b.Table(subjectsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("created_at", "rowid")
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var out []study.Subject
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (r *subjectRepo) Delete(ctx context.Context, userID, id string) error {
	q := builder().Delete(subjectsTable.Name).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id)))
	res, err := exec(ctx, r.s.db, q)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete subject %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *subjectRepo) Users(ctx context.Context) ([]string, error) {
	b := builder()
	q := b.Select("user_id").Distinct().From(b.Table(subjectsTable.Name)).OrderBy("user_id")
	rows, err := r.s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *subjectRepo) one(ctx context.Context, q *entsql.Selector) (study.Subject, error) {
	query, args := q.Query()
	sub, err := scanSubject(r.s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return study.Subject{}, ErrNotFound
	}
	if err != nil {
		return study.Subject{}, fmt.Errorf("query subject: %w", err)
	}
	return sub, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (study.Subject, error) {
	var (
		sub      study.Subject
		strength string
	)
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Name, &strength, &sub.Color); err != nil {
		return study.Subject{}, err
	}
	s, err := study.ParseStrength(strength)
	if err != nil {
		s = study.StrengthAverage
	}
	sub.Strength = s
	return sub, nil
}
