// Package config resolves clivra's settings from defaults, an optional YAML
// file, a .env file and CLIVRA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/riyaagrawal02/clivra/internal/recovery"
	"github.com/riyaagrawal02/clivra/internal/schedule"
	"github.com/riyaagrawal02/clivra/internal/study"
)

// ProfileDefaults seed the profile of a user who has not saved one.
type ProfileDefaults struct {
	DailyStudyMinutes    int    `yaml:"daily_study_minutes"`
	PomodoroWorkMinutes  int    `yaml:"pomodoro_work_minutes"`
	PomodoroBreakMinutes int    `yaml:"pomodoro_break_minutes"`
	PreferredSlot        string `yaml:"preferred_slot"`
}

// Config holds every setting the CLI consults.
type Config struct {
	DBPath         string          `yaml:"db_path"`
	User           string          `yaml:"user"`
	LogMode        string          `yaml:"log_mode"`
	Defaults       ProfileDefaults `yaml:"defaults"`
	RevisionShare  float64         `yaml:"revision_share"`
	MaxOverloadPct int             `yaml:"max_overload_pct"`
	PlanWorkers    int             `yaml:"plan_workers"`
	SnapshotKeep   int             `yaml:"snapshot_keep"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	sched := schedule.DefaultConfig()
	return Config{
		User:    "default",
		LogMode: "cli",
		Defaults: ProfileDefaults{
			DailyStudyMinutes:    sched.AvailableMinutes,
			PomodoroWorkMinutes:  sched.PomodoroWorkMinutes,
			PomodoroBreakMinutes: sched.PomodoroBreakMinutes,
			PreferredSlot:        string(study.SlotEvening),
		},
		RevisionShare:  sched.RevisionShare,
		MaxOverloadPct: recovery.DefaultMaxOverloadPct,
		PlanWorkers:    4,
		SnapshotKeep:   30,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/clivra/config.yaml, falling back to
// ~/.config/clivra/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "clivra", "config.yaml"), nil
}

// Load layers configuration sources over the defaults. An explicit path
// must exist; when path is empty the default location is read if present.
// A .env file in the working directory is loaded without overriding
// variables already set in the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	envErr := cfg.applyEnv()
	if err := errors.Join(envErr, cfg.Validate()); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path. Keys absent from the file keep
// their current values.
func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays CLIVRA_* variables. Values that do not parse are
// reported and leave the setting unchanged.
func (c *Config) applyEnv() error {
	var env envReader
	c.DBPath = env.String("CLIVRA_DB", c.DBPath)
	c.User = env.String("CLIVRA_USER", c.User)
	c.LogMode = env.String("CLIVRA_LOG_MODE", c.LogMode)
	c.Defaults.DailyStudyMinutes = env.Int("CLIVRA_DAILY_MINUTES", c.Defaults.DailyStudyMinutes)
	c.Defaults.PomodoroWorkMinutes = env.Int("CLIVRA_POMODORO_WORK", c.Defaults.PomodoroWorkMinutes)
	c.Defaults.PomodoroBreakMinutes = env.Int("CLIVRA_POMODORO_BREAK", c.Defaults.PomodoroBreakMinutes)
	c.RevisionShare = env.Float("CLIVRA_REVISION_SHARE", c.RevisionShare)
	c.MaxOverloadPct = env.Int("CLIVRA_MAX_OVERLOAD_PCT", c.MaxOverloadPct)
	c.PlanWorkers = env.Int("CLIVRA_PLAN_WORKERS", c.PlanWorkers)
	c.SnapshotKeep = env.Int("CLIVRA_SNAPSHOT_KEEP", c.SnapshotKeep)
	return env.Err()
}

// Validate rejects settings the planner cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.User == "" {
		errs = append(errs, errors.New("user must not be empty"))
	}
	if c.RevisionShare <= 0 || c.RevisionShare > 1 {
		errs = append(errs, fmt.Errorf("revision_share %v must be within (0,1]", c.RevisionShare))
	}
	if c.MaxOverloadPct < 0 {
		errs = append(errs, fmt.Errorf("max_overload_pct %d must not be negative", c.MaxOverloadPct))
	}
	if c.PlanWorkers < 1 {
		errs = append(errs, fmt.Errorf("plan_workers %d must be at least 1", c.PlanWorkers))
	}
	if c.SnapshotKeep < 1 {
		errs = append(errs, fmt.Errorf("snapshot_keep %d must be at least 1", c.SnapshotKeep))
	}
	if c.Defaults.PreferredSlot != "" {
		if _, err := study.ParseTimeSlot(c.Defaults.PreferredSlot); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Profile returns the default profile for a user built from these settings.
// Settings out of range keep the built-in profile defaults.
func (c Config) Profile(userID string) study.Profile {
	p := study.DefaultProfile(userID)
	if c.Defaults.DailyStudyMinutes > 0 {
		p.DailyStudyMinutes = c.Defaults.DailyStudyMinutes
	}
	if c.Defaults.PomodoroWorkMinutes > 0 {
		p.PomodoroWorkMinutes = c.Defaults.PomodoroWorkMinutes
	}
	if c.Defaults.PomodoroBreakMinutes >= 0 {
		p.PomodoroBreakMinutes = c.Defaults.PomodoroBreakMinutes
	}
	if slot, err := study.ParseTimeSlot(c.Defaults.PreferredSlot); err == nil {
		p.PreferredSlot = slot
	}
	return p
}
