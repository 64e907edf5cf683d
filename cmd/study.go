package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/priority"
	"github.com/riyaagrawal02/clivra/internal/session"
	"github.com/riyaagrawal02/clivra/internal/spacedrep"
	"github.com/riyaagrawal02/clivra/internal/study"
)

var studyCmd = &cobra.Command{
	Use:   "study TOPIC",
	Short: "Log a finished study session on a topic",
	Long: `Study records minutes spent on a topic (by ID or name), optionally updating
its confidence or marking it complete. The first study of a topic schedules
its first review.`,
	Args: cobra.ExactArgs(1),
	RunE: runStudy,
}

func init() {
	studyCmd.Flags().Int("minutes", 0, "Minutes studied")
	studyCmd.Flags().Int("confidence", 0, "New confidence from 1 to 5")
	studyCmd.Flags().Bool("done", false, "Mark the topic as completed")
	_ = studyCmd.MarkFlagRequired("minutes")
}

func runStudy(cmd *cobra.Command, args []string) error {
	minutes, _ := cmd.Flags().GetInt("minutes")
	if minutes < 0 {
		return errors.New("--minutes must not be negative")
	}
	done, _ := cmd.Flags().GetBool("done")
	completion := session.Completion{Minutes: minutes, MarkCompleted: done}
	if cmd.Flags().Changed("confidence") {
		c, _ := cmd.Flags().GetInt("confidence")
		if c < study.MinConfidence || c > study.MaxConfidence {
			return fmt.Errorf("--confidence must be between %d and %d", study.MinConfidence, study.MaxConfidence)
		}
		completion.Confidence = &c
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()

	t, err := e.findTopic(ctx, args[0])
	if err != nil {
		return err
	}
	strength, err := e.subjectStrength(ctx, t.SubjectID)
	if err != nil {
		return err
	}
	p, err := e.profile(ctx, e.user)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	now := e.clock.Now()
	t, delta := session.Complete(t, completion, now)
	t = spacedrep.Backfill([]study.Topic{t})[0]
	t = priority.Rescore(t, strength, study.DaysUntilExam(p.ExamDate, now), now)

	if err := e.store.Topics().Upsert(ctx, t); err != nil {
		return fmt.Errorf("save topic: %w", err)
	}
	if err := e.store.Progress().AddDaily(ctx, e.user, delta); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	e.log.Info("session logged", "topic", t.ID, "minutes", delta.Minutes)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged %d minutes on %q (%.1f of %.1f hours, confidence %d/5)\n",
		delta.Minutes, t.Name, t.CompletedHours, t.EstimatedHours, t.ConfidenceLevel)
	if t.IsCompleted {
		fmt.Fprintln(out, "Topic marked as completed")
	} else if t.NextRevisionAt != nil {
		fmt.Fprintf(out, "Next review: %s\n", t.NextRevisionAt.Format("Mon, 02 Jan 2006"))
	}
	return nil
}
