package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/priority"
	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage topics",
}

var topicAddCmd = &cobra.Command{
	Use:   "add SUBJECT NAME",
	Short: "Add a topic to a subject",
	Args:  cobra.ExactArgs(2),
	RunE:  runTopicAdd,
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics with confidence, priority and next review",
	Args:  cobra.NoArgs,
	RunE:  runTopicList,
}

func init() {
	topicAddCmd.Flags().Int("confidence", study.DefaultConfidence, "Confidence from 1 (struggling) to 5 (mastered)")
	topicAddCmd.Flags().Float64("hours", study.DefaultEstimatedHours, "Estimated hours to learn the topic")

	topicListCmd.Flags().String("subject", "", "Only list topics of this subject")
	topicListCmd.Flags().Bool("pending", false, "Hide completed topics")

	topicCmd.AddCommand(topicAddCmd)
	topicCmd.AddCommand(topicListCmd)
}

func runTopicAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[1])
	if name == "" {
		return errors.New("topic name must not be empty")
	}
	confidence, _ := cmd.Flags().GetInt("confidence")
	hours, _ := cmd.Flags().GetFloat64("hours")

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()

	sub, err := e.store.Subjects().FindByName(ctx, e.user, args[0])
	if err != nil {
		return fmt.Errorf("subject %q: %w", args[0], err)
	}
	if _, err := e.store.Topics().FindByName(ctx, e.user, name); err == nil {
		return fmt.Errorf("topic %q already exists", name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up topic: %w", err)
	}

	p, err := e.profile(ctx, e.user)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	now := e.clock.Now()

	t := study.NormalizeTopic(study.RawTopic{
		ID:              uuid.NewString(),
		SubjectID:       sub.ID,
		Name:            name,
		ConfidenceLevel: &confidence,
		EstimatedHours:  &hours,
	})
	t = priority.Rescore(t, sub.Strength, study.DaysUntilExam(p.ExamDate, now), now)

	if err := e.store.Topics().Upsert(ctx, t); err != nil {
		return fmt.Errorf("save topic: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added topic %q to %s (priority %d)\n", t.Name, sub.Name, t.PriorityScore)
	return nil
}

func runTopicList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()

	var f store.TopicFilter
	if name, _ := cmd.Flags().GetString("subject"); name != "" {
		sub, err := e.store.Subjects().FindByName(ctx, e.user, name)
		if err != nil {
			return fmt.Errorf("subject %q: %w", name, err)
		}
		f.SubjectID = sub.ID
	}
	if pending, _ := cmd.Flags().GetBool("pending"); pending {
		no := false
		f.Completed = &no
	}

	topics, err := e.store.Topics().List(ctx, e.user, f)
	if err != nil {
		return fmt.Errorf("load topics: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Topics(topics, e.clock.Now()))
	return nil
}
