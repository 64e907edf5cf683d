package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/importer"
	"github.com/riyaagrawal02/clivra/internal/ui/theme"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import subjects and topics from a YAML or Excel syllabus",
	Long: `Import reads a syllabus from a .yaml/.yml file or an .xlsx workbook and
creates or updates the matching subjects and topics. Existing topics keep
their study history.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	im := importer.New(e.store.Subjects(), e.store.Topics(), e.log)
	res, err := im.ImportFile(cmd.Context(), e.user, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Subjects: %d created, %d updated\n", res.SubjectsCreated, res.SubjectsUpdated)
	fmt.Fprintf(out, "Topics:   %d created, %d updated\n", res.TopicsCreated, res.TopicsUpdated)
	if len(res.Errors) > 0 {
		fmt.Fprintln(out, theme.Warn.Render(fmt.Sprintf("%d entries skipped:", len(res.Errors))))
		for _, msg := range res.Errors {
			fmt.Fprintln(out, "  "+msg)
		}
	}
	return nil
}
