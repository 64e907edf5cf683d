package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/progress"
	"github.com/riyaagrawal02/clivra/internal/readiness"
	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

// streakWindowDays bounds how far back the study streak is counted.
const streakWindowDays = 365

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Estimate how ready you are for the exam",
	Long: `Readiness combines syllabus completion, average confidence, the current
study streak and the time left before the exam into a single estimate, and
shows how it moved since the last check.`,
	Args: cobra.NoArgs,
	RunE: runReadiness,
}

func init() {
	readinessCmd.Flags().Bool("no-save", false, "Do not store this estimate")
}

func runReadiness(cmd *cobra.Command, args []string) error {
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
	topics, err := e.store.Topics().List(ctx, e.user, store.TopicFilter{})
	if err != nil {
		return fmt.Errorf("load topics: %w", err)
	}
	days, err := e.store.Progress().DailyRange(ctx, e.user, now.AddDate(0, 0, -streakWindowDays), now)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	sum := progress.Summarize(topics)
	streak := progress.Streak(days, now)
	daysUntil := study.DaysUntilExam(p.ExamDate, now)
	res := readiness.Estimate(sum.CompletionPct, sum.AvgConfidence, streak, daysUntil)

	last, err := e.store.Readiness().Latest(ctx, e.user)
	if err != nil {
		return fmt.Errorf("load last estimate: %w", err)
	}
	var previous *readiness.Result
	if last != nil {
		previous = &last.Result
	}

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		snap := &store.ReadinessSnapshot{
			UserID:        e.user,
			TakenAt:       now,
			Result:        res,
			CompletionPct: sum.CompletionPct,
			AvgConfidence: sum.AvgConfidence,
			StreakDays:    streak,
			DaysUntilExam: daysUntil,
		}
		if err := e.store.Readiness().Save(ctx, snap); err != nil {
			return fmt.Errorf("save estimate: %w", err)
		}
		if err := e.store.Readiness().Prune(ctx, e.user, e.cfg.SnapshotKeep); err != nil {
			e.log.Warn("prune readiness snapshots", "error", err)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), render.Readiness(res, sum, streak, daysUntil, previous))
	return nil
}
