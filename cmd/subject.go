package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/store"
	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Manage subjects",
}

var subjectAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a subject or update an existing one",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectAdd,
}

var subjectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects with their progress",
	Args:  cobra.NoArgs,
	RunE:  runSubjectList,
}

var subjectRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Delete a subject and all its topics",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubjectRemove,
}

func init() {
	subjectAddCmd.Flags().String("strength", string(study.StrengthAverage), "Subject strength: weak, average or strong")
	subjectAddCmd.Flags().String("color", "", "Display color as #rrggbb")

	subjectCmd.AddCommand(subjectAddCmd)
	subjectCmd.AddCommand(subjectListCmd)
	subjectCmd.AddCommand(subjectRemoveCmd)
}

func runSubjectAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("subject name must not be empty")
	}
	rawStrength, _ := cmd.Flags().GetString("strength")
	strength, err := study.ParseStrength(rawStrength)
	if err != nil {
		return err
	}
	color, _ := cmd.Flags().GetString("color")

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()

	sub, err := e.store.Subjects().FindByName(ctx, e.user, name)
	verb := "Updated"
	switch {
	case errors.Is(err, store.ErrNotFound):
		sub = study.Subject{ID: uuid.NewString(), UserID: e.user, Name: name}
		verb = "Added"
	case err != nil:
		return fmt.Errorf("look up subject: %w", err)
	}
	sub.Strength = strength
	if color != "" || sub.Color == "" {
		sub.Color = color
	}

	if err := e.store.Subjects().Upsert(ctx, sub); err != nil {
		return fmt.Errorf("save subject: %w", err)
	}
	e.log.Info("subject saved", "subject", sub.ID, "strength", sub.Strength)
	fmt.Fprintf(cmd.OutOrStdout(), "%s subject %q (%s)\n", verb, sub.Name, sub.Strength)
	return nil
}

func runSubjectList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	subjects, err := e.syllabus(cmd.Context(), e.user)
	if err != nil {
		return fmt.Errorf("load subjects: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Subjects(subjects))
	return nil
}

func runSubjectRemove(cmd *cobra.Command, args []string) error {
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
	if err := e.store.Subjects().Delete(ctx, e.user, sub.ID); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	e.log.Info("subject deleted", "subject", sub.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed subject %q and its topics\n", sub.Name)
	return nil
}
