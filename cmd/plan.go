package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/riyaagrawal02/clivra/internal/priority"
	"github.com/riyaagrawal02/clivra/internal/schedule"
	"github.com/riyaagrawal02/clivra/internal/spacedrep"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the study schedule for a day",
	Long: `Plan rescores every topic, generates the day's schedule from the profile's
time budget and stores it. Running it again for the same day replaces the
stored schedule.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("date", "", "Day to plan (YYYY-MM-DD, default today)")
	planCmd.Flags().Bool("all-users", false, "Plan for every user in the database")
}

func runPlan(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()

	date, err := planDate(cmd, e.clock.Now())
	if err != nil {
		return err
	}

	users := []string{e.user}
	if all, _ := cmd.Flags().GetBool("all-users"); all {
		if users, err = e.store.Subjects().Users(ctx); err != nil {
			return fmt.Errorf("list users: %w", err)
		}
	}

	rendered := make([]string, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.PlanWorkers)
	for i, user := range users {
		g.Go(func() error {
			sessions, err := e.generatePlan(gctx, user, date)
			if err != nil {
				return fmt.Errorf("plan for %s: %w", user, err)
			}
			rendered[i] = render.Schedule(date, sessions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	writeSections(cmd.OutOrStdout(), users, rendered)
	return nil
}

// writeSections prints one block per user, headed by the user's name only
// when more than one user was planned.
func writeSections(w io.Writer, users, blocks []string) {
	for i, block := range blocks {
		if len(users) > 1 {
			fmt.Fprintf(w, "== %s ==\n", users[i])
		}
		fmt.Fprint(w, block)
		if i < len(blocks)-1 {
			fmt.Fprintln(w)
		}
	}
}

// generatePlan backfills review dates, refreshes priority scores, then builds
// and stores the schedule for the user's date. Scores for today are taken at
// the current time, scores for other days at their midnight.
func (e *env) generatePlan(ctx context.Context, userID string, date time.Time) ([]study.ScheduleSession, error) {
	p, err := e.profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	subjects, err := e.syllabus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load syllabus: %w", err)
	}

	ref := date
	if now := e.clock.Now(); study.StartOfDay(now).Equal(date) {
		ref = now
	}
	daysUntil := study.DaysUntilExam(p.ExamDate, ref)
	for i := range subjects {
		topics := spacedrep.Backfill(subjects[i].Topics)
		for j, t := range topics {
			topics[j] = priority.Rescore(t, subjects[i].Strength, daysUntil, ref)
			if err := e.store.Topics().Upsert(ctx, topics[j]); err != nil {
				return nil, fmt.Errorf("save topic %s: %w", t.Name, err)
			}
		}
		subjects[i].Topics = topics
	}

	cfg := schedule.ConfigFromProfile(p)
	cfg.RevisionShare = e.cfg.RevisionShare
	sessions := schedule.Generate(subjects, cfg, daysUntil, ref)

	if err := e.store.Schedules().Replace(ctx, userID, date, sessions); err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}
	e.log.Debug("plan generated", "for", userID, "date", date.Format("2006-01-02"), "sessions", len(sessions))
	return sessions, nil
}

// planDate returns the --date flag, or the start of today.
func planDate(cmd *cobra.Command, now time.Time) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return study.StartOfDay(now), nil
	}
	d, err := parseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date: %w", err)
	}
	return study.StartOfDay(d), nil
}
