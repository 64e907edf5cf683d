package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riyaagrawal02/clivra/internal/study"
	"github.com/riyaagrawal02/clivra/internal/ui/render"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change study preferences",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update one or more profile fields. Fields whose flag is not given keep
their current value. Pass --exam none to clear the exam date.`,
	Args: cobra.NoArgs,
	RunE: runProfileSet,
}

func init() {
	f := profileSetCmd.Flags()
	f.Int("daily", 0, "Daily study minutes")
	f.Int("work", 0, "Pomodoro work minutes")
	f.Int("break", 0, "Pomodoro break minutes")
	f.String("slot", "", "Preferred time slot: morning, afternoon, evening or night")
	f.String("exam", "", "Exam date (YYYY-MM-DD), or none")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	p, err := e.profile(cmd.Context(), e.user)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Profile(p, e.clock.Now()))
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()

	p, err := e.profile(ctx, e.user)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("daily") {
		p.DailyStudyMinutes, _ = flags.GetInt("daily")
	}
	if flags.Changed("work") {
		p.PomodoroWorkMinutes, _ = flags.GetInt("work")
	}
	if flags.Changed("break") {
		p.PomodoroBreakMinutes, _ = flags.GetInt("break")
	}
	if flags.Changed("slot") {
		raw, _ := flags.GetString("slot")
		if p.PreferredSlot, err = study.ParseTimeSlot(raw); err != nil {
			return err
		}
	}
	if flags.Changed("exam") {
		raw, _ := flags.GetString("exam")
		if strings.EqualFold(strings.TrimSpace(raw), "none") {
			p.ExamDate = nil
		} else {
			exam, err := parseTime(raw)
			if err != nil {
				return fmt.Errorf("--exam: %w", err)
			}
			p.ExamDate = &exam
		}
	}

	if p.DailyStudyMinutes <= 0 || p.PomodoroWorkMinutes <= 0 || p.PomodoroBreakMinutes < 0 {
		return errors.New("study minutes must be positive and break minutes non-negative")
	}

	p = study.NormalizeProfile(p)
	if err := e.store.Profiles().Save(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	e.log.Info("profile saved", "daily_minutes", p.DailyStudyMinutes)
	fmt.Fprint(cmd.OutOrStdout(), render.Profile(p, e.clock.Now()))
	return nil
}
