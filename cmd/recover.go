package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/recovery"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Plan how to catch up on missed study time",
	Long: `Recover spreads missed study minutes over the days left before the exam,
adding at most max_overload_pct of the daily budget per day. Missed minutes
default to the shortfall against the daily target over the last --lookback
days, not counting today.`,
	Args: cobra.NoArgs,
	RunE: runRecover,
}

func init() {
	recoverCmd.Flags().Int("missed", -1, "Missed minutes (default: computed from logged study)")
	recoverCmd.Flags().Int("days", -1, "Days available to recover (default: days until the exam)")
	recoverCmd.Flags().Int("lookback", 7, "Days of history to check for missed study")
}

func runRecover(cmd *cobra.Command, args []string) error {
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

	missed, _ := cmd.Flags().GetInt("missed")
	if missed < 0 {
		lookback, _ := cmd.Flags().GetInt("lookback")
		if lookback < 1 {
			return errors.New("--lookback must be at least 1")
		}
		yesterday := study.StartOfDay(now).AddDate(0, 0, -1)
		from := yesterday.AddDate(0, 0, -lookback+1)
		days, err := e.store.Progress().DailyRange(ctx, e.user, from, yesterday)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		missed = progress.Missed(days, p.DailyStudyMinutes, from, yesterday)
	}

	remaining, _ := cmd.Flags().GetInt("days")
	if remaining < 0 {
		remaining = study.DaysUntilExam(p.ExamDate, now)
	}

	plan := recovery.Rebalance(missed, remaining, p.DailyStudyMinutes, e.cfg.MaxOverloadPct)
	e.log.Debug("recovery planned", "missed", missed, "remaining_days", remaining, "extra", plan.ExtraMinutesPerDay)
	fmt.Fprint(cmd.OutOrStdout(), render.Recovery(plan, missed))
	return nil
}
