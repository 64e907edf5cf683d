package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/spacedrep"
	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List topics due for revision",
	Args:  cobra.NoArgs,
	RunE:  runDue,
}

func runDue(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	topics, err := e.store.Topics().List(cmd.Context(), e.user, store.TopicFilter{})
	if err != nil {
		return fmt.Errorf("load topics: %w", err)
	}
	now := e.clock.Now()
	due := spacedrep.DueTopics(spacedrep.Backfill(topics), now)
	fmt.Fprint(cmd.OutOrStdout(), render.Due(due, now))
	return nil
}
