package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var historyCmd = &cobra.Command{
	Use:   "history TOPIC",
	Short: "Show the revision history of a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "Show only the most recent revisions (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

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
	records, err := e.store.Revisions().History(ctx, t.ID, store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	events := make([]study.RevisionEvent, len(records))
	for i, r := range records {
		events[i] = r.RevisionEvent
	}
	fmt.Fprint(cmd.OutOrStdout(), render.History(t.Name, events))
	return nil
}
