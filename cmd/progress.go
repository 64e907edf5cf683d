package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show weekly study totals",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

func init() {
	progressCmd.Flags().Int("weeks", 4, "Number of weeks to show")
}

func runProgress(cmd *cobra.Command, args []string) error {
	weeks, _ := cmd.Flags().GetInt("weeks")
	if weeks < 1 {
		return errors.New("--weeks must be at least 1")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()
	now := e.clock.Now()

	p, err := e.profile(ctx, e.user)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	from := study.StartOfDay(now).AddDate(0, 0, -7*weeks+1)
	days, err := e.store.Progress().DailyRange(ctx, e.user, from, now)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.Weekly(progress.RollupWeekly(days), p.DailyStudyMinutes))
	fmt.Fprintf(out, "Current streak: %d\n", progress.Streak(days, now))
	return nil
}
