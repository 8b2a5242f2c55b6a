package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lapseapp/lapse/config"
)

func goalsIn(t *testing.T, configPath string) []config.GoalConfig {
	t.Helper()

	cfg, err := config.New(config.WithViperConfig(configPath))
	if err != nil {
		t.Fatal(err)
	}

	return cfg.Goals
}

func TestSetGoal(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := config.SetGoal(configPath, config.GoalConfig{
		Category: "Coding",
		Target:   2 * time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []config.GoalConfig{
		{Category: "Coding", Target: 2 * time.Hour, Direction: "min"},
	}

	if diff := cmp.Diff(want, goalsIn(t, configPath)); diff != "" {
		t.Errorf("goal not saved (-want +got):\n%s", diff)
	}

	// same category and direction replaces rather than appends
	err = config.SetGoal(configPath, config.GoalConfig{
		Category:  "coding",
		Target:    3 * time.Hour,
		Direction: "min",
	})
	if err != nil {
		t.Fatal(err)
	}

	got := goalsIn(t, configPath)
	if len(got) != 1 || got[0].Target != 3*time.Hour {
		t.Errorf("expected one goal with a 3h target, got %v", got)
	}

	// the opposite direction coexists
	err = config.SetGoal(configPath, config.GoalConfig{
		Category:  "Coding",
		Target:    6 * time.Hour,
		Direction: "max",
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := goalsIn(t, configPath); len(got) != 2 {
		t.Errorf("expected min and max goals to coexist, got %v", got)
	}
}

func TestSetGoalRejectsInvalidTarget(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := config.SetGoal(configPath, config.GoalConfig{
		Category: "Coding",
		Target:   time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = config.SetGoal(configPath, config.GoalConfig{
		Category: "Coding",
		Target:   -time.Hour,
	})
	if err == nil {
		t.Fatal("expected an invalid goal to be rejected")
	}

	if got := goalsIn(t, configPath); got[0].Target != time.Hour {
		t.Errorf("rejected goal must leave the file untouched, got %v", got)
	}
}

func TestRemoveGoal(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := config.SetGoal(configPath, config.GoalConfig{
		Category: "Coding",
		Target:   2 * time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = config.RemoveGoal(configPath, "coding", "")
	if err != nil {
		t.Fatal(err)
	}

	if got := goalsIn(t, configPath); len(got) != 0 {
		t.Errorf("expected no goals after removal, got %v", got)
	}

	if err := config.RemoveGoal(configPath, "coding", ""); err == nil {
		t.Fatal("expected an error removing a missing goal")
	}
}

func TestSetDefaultProject(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	if err := config.SetDefaultProject(configPath, "thesis"); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(config.WithViperConfig(configPath))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Tracking.DefaultProject != "thesis" {
		t.Errorf(
			"default project = %q, want %q",
			cfg.Tracking.DefaultProject, "thesis",
		)
	}
}
