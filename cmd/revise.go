package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/priority"
	"github.com/riyaagrawal02/clivra/internal/spacedrep"
	"github.com/riyaagrawal02/clivra/internal/study"
)

var reviseCmd = &cobra.Command{
	Use:   "revise TOPIC",
	Short: "Record a revision of a topic and schedule the next one",
	Args:  cobra.ExactArgs(1),
	RunE:  runRevise,
}

func init() {
	reviseCmd.Flags().Int("confidence", 0, "Confidence after the revision, 1 to 5")
	reviseCmd.Flags().Bool("skipped", false, "Record the revision as skipped and retry tomorrow")
}

func runRevise(cmd *cobra.Command, args []string) error {
	skipped, _ := cmd.Flags().GetBool("skipped")
	confidence, _ := cmd.Flags().GetInt("confidence")
	if !skipped && (confidence < study.MinConfidence || confidence > study.MaxConfidence) {
		return fmt.Errorf("--confidence between %d and %d is required unless --skipped", study.MinConfidence, study.MaxConfidence)
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
	t, ev := spacedrep.RecordRevision(t, spacedrep.RevisionInput{
		UserID:          e.user,
		ConfidenceAfter: confidence,
		Skipped:         skipped,
	}, now)
	t = priority.Rescore(t, strength, study.DaysUntilExam(p.ExamDate, now), now)

	if err := e.store.Topics().Upsert(ctx, t); err != nil {
		return fmt.Errorf("save topic: %w", err)
	}
	seq, err := e.store.Revisions().Append(ctx, ev)
	if err != nil {
		return fmt.Errorf("record revision: %w", err)
	}
	e.log.Info("revision recorded", "topic", t.ID, "seq", seq, "skipped", skipped)

	out := cmd.OutOrStdout()
	if skipped {
		fmt.Fprintf(out, "Skipped revision of %q\n", t.Name)
	} else {
		fmt.Fprintf(out, "Revised %q: confidence %d -> %d (revision #%d)\n",
			t.Name, ev.ConfidenceBefore, ev.ConfidenceAfter, t.RevisionCount)
	}
	if t.NextRevisionAt != nil {
		fmt.Fprintf(out, "Next review: %s (in %d days)\n",
			t.NextRevisionAt.Format("Mon, 02 Jan 2006"), spacedrep.DaysUntilReview(t, now))
	}
	return nil
}
