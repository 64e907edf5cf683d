package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/config"
	"github.com/riyaagrawal02/clivra/internal/platform/logger"
	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/study"
)

// env bundles what every command needs: settings, logging, storage and the
// clock.
type env struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
	clock study.Clock
	user  string
}

// openEnv loads config, builds the logger and opens the store. Callers must
// call close when done.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.User = u
	}

	mode := cfg.LogMode
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		mode = "dev"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	var clock study.Clock = study.SystemClock{}
	if raw, _ := cmd.Flags().GetString("now"); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("--now: %w", err)
		}
		clock = study.FixedClock{T: t}
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cmd.Context(), dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &env{cfg: cfg, log: log.With("user", cfg.User), store: st, clock: clock, user: cfg.User}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
	e.log.Sync()
}

// profile returns the user's saved profile, or the configured defaults.
func (e *env) profile(ctx context.Context, userID string) (study.Profile, error) {
	p, err := e.store.Profiles().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return e.cfg.Profile(userID), nil
	}
	return p, err
}

// syllabus loads the user's subjects with their topics attached.
func (e *env) syllabus(ctx context.Context, userID string) ([]study.Subject, error) {
	subjects, err := e.store.Subjects().List(ctx, userID)
	if err != nil {
		return nil, err
	}
	topics, err := e.store.Topics().List(ctx, userID, store.TopicFilter{})
	if err != nil {
		return nil, err
	}
	bySubject := make(map[string][]study.Topic, len(subjects))
	for _, t := range topics {
		bySubject[t.SubjectID] = append(bySubject[t.SubjectID], t)
	}
	for i := range subjects {
		subjects[i].Topics = bySubject[subjects[i].ID]
	}
	return subjects, nil
}

// findTopic resolves a topic by ID or, failing that, by name.
func (e *env) findTopic(ctx context.Context, ref string) (study.Topic, error) {
	t, err := e.store.Topics().Get(ctx, e.user, ref)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return study.Topic{}, err
	}
	t, err = e.store.Topics().FindByName(ctx, e.user, ref)
	if errors.Is(err, store.ErrNotFound) {
		return study.Topic{}, fmt.Errorf("topic %q: %w", ref, err)
	}
	return t, err
}

// subjectStrength looks up the strength of a topic's subject.
func (e *env) subjectStrength(ctx context.Context, subjectID string) (study.Strength, error) {
	sub, err := e.store.Subjects().Get(ctx, e.user, subjectID)
	if err != nil {
		return "", fmt.Errorf("load subject: %w", err)
	}
	return sub.Strength, nil
}

// parseTime accepts RFC3339 or a local YYYY-MM-DD date.
func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor YYYY-MM-DD", raw)
	}
	return t, nil
}
