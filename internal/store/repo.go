package store

import (
	"context"
	"errors"
	"time"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/readiness"
	"github.com/riyaagrawal02/clivra/internal/study"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // keep the newest N results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// TopicFilter narrows topic listings. Zero values match everything.
type TopicFilter struct {
	SubjectID string
	Completed *bool
}

// SubjectRepo manages subjects.
type SubjectRepo interface {
	// Upsert inserts the subject or overwrites the row with the same ID.
	Upsert(ctx context.Context, sub study.Subject) error

	// Get returns one of the user's subjects without its topics. Subjects
	// owned by other users are reported as ErrNotFound.
	Get(ctx context.Context, userID, id string) (study.Subject, error)

	// FindByName looks up a user's subject by exact name.
	FindByName(ctx context.Context, userID, name string) (study.Subject, error)

	// List returns a user's subjects in creation order, without topics.
	List(ctx context.Context, userID string) ([]study.Subject, error)

	// Delete removes one of the user's subjects and, through the foreign key,
	// its topics.
	Delete(ctx context.Context, userID, id string) error

	// Users returns every user ID that owns at least one subject.
	Users(ctx context.Context) ([]string, error)
}

// TopicRepo manages topics.
type TopicRepo interface {
	Upsert(ctx context.Context, t study.Topic) error

	// Get returns a topic by ID if its subject belongs to the user.
	Get(ctx context.Context, userID, id string) (study.Topic, error)

	// FindByName looks up a user's topic by exact name across subjects.
	FindByName(ctx context.Context, userID, name string) (study.Topic, error)

	// List returns a user's topics matching the filter, grouped by subject
	// creation order and then by name.
	List(ctx context.Context, userID string, f TopicFilter) ([]study.Topic, error)
}

// ProfileRepo manages per-user study preferences.
type ProfileRepo interface {
	// Get returns the stored profile, or ErrNotFound when the user has not
	// saved one.
	Get(ctx context.Context, userID string) (study.Profile, error)
	Save(ctx context.Context, p study.Profile) error
}

// ScheduleRepo persists generated daily schedules.
type ScheduleRepo interface {
	// Replace stores sessions as the schedule for the user's date, dropping
	// any schedule already stored for that date.
	Replace(ctx context.Context, userID string, date time.Time, sessions []study.ScheduleSession) error

	// ForDate returns the stored schedule in session order. It returns an
	// empty slice when no schedule exists.
	ForDate(ctx context.Context, userID string, date time.Time) ([]study.ScheduleSession, error)
}

// RevisionRecord is a revision event with its position in the global log.
type RevisionRecord struct {
	Sequence int64
	study.RevisionEvent
}

// RevisionLog is the append-only revision history.
type RevisionLog interface {
	// Append records an event and returns its sequence number.
	Append(ctx context.Context, ev study.RevisionEvent) (int64, error)

	// History returns a topic's events in sequence order. With a limit it
	// keeps the most recent matching events.
	History(ctx context.Context, topicID string, opts QueryOpts) ([]RevisionRecord, error)
}

// ProgressRepo accumulates daily study totals.
type ProgressRepo interface {
	// AddDaily adds the delta to the user's record for the delta's date.
	AddDaily(ctx context.Context, userID string, d progress.DailyDelta) error

	// DailyRange returns the records for dates in [from, to], oldest first.
	// Days without study have no record.
	DailyRange(ctx context.Context, userID string, from, to time.Time) ([]progress.DailyRecord, error)
}

// ReadinessSnapshot is a stored readiness estimate with the inputs it was
// computed from.
type ReadinessSnapshot struct {
	ID            int
	Sequence      int64
	UserID        string
	TakenAt       time.Time
	Result        readiness.Result
	CompletionPct float64
	AvgConfidence float64
	StreakDays    int
	DaysUntilExam int
}

// ReadinessRepo manages readiness snapshots.
type ReadinessRepo interface {
	// Save stores a new snapshot, assigning its ID and sequence.
	Save(ctx context.Context, snap *ReadinessSnapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, userID string) (*ReadinessSnapshot, error)

	// Prune deletes all but the N most recent snapshots for the user.
	Prune(ctx context.Context, userID string, keep int) error
}
