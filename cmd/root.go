package cmd

import (
	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/config"
	"github.com/riyaagrawal02/clivra/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "clivra",
	Short:         "Exam study planner",
	Long:          "Clivra plans daily study sessions from your subjects, confidence and exam date, and tracks revision and readiness.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides CLIVRA_DB env var)")
	flags.String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/clivra/config.yaml)")
	flags.String("user", "", "User to act as (overrides CLIVRA_USER)")
	flags.String("now", "", "Pin the current time (RFC3339 or YYYY-MM-DD)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(subjectCmd)
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(reviseCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(readinessCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (config file or CLIVRA_DB), then the default XDG
// path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
