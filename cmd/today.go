package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/session"
	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's schedule and how much of it is done",
	Long: `Today shows the stored schedule for the day, generating one first if none
exists, followed by the minutes studied so far.`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func runToday(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()

	now := e.clock.Now()
	date, err := planDate(cmd, now)
	if err != nil {
		return err
	}

	sessions, err := e.store.Schedules().ForDate(ctx, e.user, date)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}
	if len(sessions) == 0 {
		if sessions, err = e.generatePlan(ctx, e.user, date); err != nil {
			return err
		}
	}

	days, err := e.store.Progress().DailyRange(ctx, e.user, date, date)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	studied := 0
	for _, d := range days {
		studied += d.MinutesStudied
	}

	topics, err := e.store.Topics().List(ctx, e.user, store.TopicFilter{})
	if err != nil {
		return fmt.Errorf("load topics: %w", err)
	}
	key := progress.DayKey(date)
	done := make(map[string]bool)
	for _, t := range topics {
		// Stored times come back in UTC; compare in the day's own zone.
		if t.LastStudiedAt != nil && progress.DayKey(t.LastStudiedAt.In(date.Location())) == key {
			done[t.ID] = true
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.Schedule(date, sessions))
	fmt.Fprint(out, render.DayProgress(session.Summarize(sessions, studied, done)))
	return nil
}

func init() {
	todayCmd.Flags().String("date", "", "Day to show (YYYY-MM-DD, default today)")
}
