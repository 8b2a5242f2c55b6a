package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var errNoSuchGoal = errors.New("no goal matches that category and direction")

// SetGoal adds or replaces the goal for (category, direction) in the
// config file. The update is validated first; an invalid goal leaves
// the file untouched.
func SetGoal(configPath string, g GoalConfig) error {
	cfg, err := New(WithViperConfig(configPath))
	if err != nil {
		return err
	}

	g.Direction = strings.ToLower(strings.TrimSpace(g.Direction))
	if g.Direction == "" {
		g.Direction = DirectionMin
	}

	goals := cfg.Goals
	replaced := false

	for i := range goals {
		if strings.EqualFold(goals[i].Category, g.Category) &&
			goals[i].Direction == g.Direction {
			goals[i] = g
			replaced = true

			break
		}
	}

	if !replaced {
		goals = append(goals, g)
	}

	cfg.Goals = goals

	if err := cfg.Validate(); err != nil {
		return err
	}

	return writeGoals(configPath, cfg.Goals)
}

// RemoveGoal drops the goal for (category, direction) from the config
// file.
func RemoveGoal(configPath, category, direction string) error {
	cfg, err := New(WithViperConfig(configPath))
	if err != nil {
		return err
	}

	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction == "" {
		direction = DirectionMin
	}

	kept := cfg.Goals[:0]

	for _, g := range cfg.Goals {
		if strings.EqualFold(g.Category, category) &&
			g.Direction == direction {
			continue
		}

		kept = append(kept, g)
	}

	if len(kept) == len(cfg.Goals) {
		return errNoSuchGoal
	}

	return writeGoals(configPath, kept)
}

// writeGoals rewrites only the goals key, preserving the rest of the
// config file.
func writeGoals(configPath string, goals []GoalConfig) error {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setViperDefaults(v)

	if err := v.ReadInConfig(); err != nil &&
		!errors.Is(err, os.ErrNotExist) {
		return err
	}

	serialized := make([]map[string]string, 0, len(goals))

	for _, g := range goals {
		serialized = append(serialized, map[string]string{
			"category":  g.Category,
			"target":    g.Target.String(),
			"direction": g.Direction,
		})
	}

	v.Set(keyGoals, serialized)

	return v.WriteConfig()
}
