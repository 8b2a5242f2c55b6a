// Package config loads, validates, and watches the lapse configuration
// file, and resolves the XDG paths for the data, status, and log files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"

	"github.com/lapseapp/lapse/category"
)

const Version = "v0.3.1"

// Goal directions.
const (
	DirectionMin = "min"
	DirectionMax = "max"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Tracking      TrackingConfig
		Goals         []GoalConfig
		Focus         FocusConfig
		Notifications NotificationConfig
		Hooks         HookConfig
		Pomodoro      PomodoroConfig

		// Warnings collects non-fatal problems found while loading,
		// such as skipped rules. They are reported once at startup.
		Warnings []error

		resolver *category.Resolver
	}

	// TrackingConfig holds sampling and categorization settings.
	TrackingConfig struct {
		SampleInterval time.Duration
		IdleThreshold  time.Duration
		BufferSize     int
		ExcludedApps   []string
		Rules          []category.Rule
		DefaultProject string
		DefaultTags    []string
	}

	// GoalConfig declares a daily time goal for one category. Min
	// goals are targets to reach; max goals are limits not to exceed.
	GoalConfig struct {
		Category  string
		Target    time.Duration
		Direction string
	}

	// FocusConfig blocks distracting apps while enabled.
	FocusConfig struct {
		Enabled bool
		Blocked []string
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled               bool
		Sound                 string
		BreakReminderInterval time.Duration
	}

	// HookConfig holds user hook commands.
	HookConfig struct {
		SessionCmd string
	}

	// PomodoroConfig holds the Pomodoro cycle settings.
	PomodoroConfig struct {
		WorkDuration      time.Duration
		ShortBreak        time.Duration
		LongBreak         time.Duration
		LongBreakInterval int
		AutoStartBreak    bool
		AutoStartWork     bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

var (
	configDir       = "lapse"
	configFileName  = "config.yml"
	dbFileName      = "lapse.db"
	statusFileName  = "status.json"
	controlFileName = "control"
	logFileName     = "lapse.log"
	dbFilePath      string
	configFilePath  string
	statusFilePath  string
	controlFilePath string
	logFilePath     string
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func ControlFilePath() string {
	return controlFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves all file paths through XDG. Setting
// LAPSE_ENV isolates the config, data, and log files, which keeps test
// runs away from real data.
func InitializePaths() {
	lapseEnv := strings.TrimSpace(os.Getenv("LAPSE_ENV"))
	if lapseEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", lapseEnv)
		dbFileName = fmt.Sprintf("lapse_%s.db", lapseEnv)
		statusFileName = fmt.Sprintf("status_%s.json", lapseEnv)
		controlFileName = fmt.Sprintf("control_%s", lapseEnv)
		logFileName = fmt.Sprintf("lapse_%s.log", lapseEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	controlFilePath = filepath.Join(dataDir, controlFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values, applies options, and
// validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return cfg, nil
}

// Resolver returns the category resolver built from the exclusions and
// custom rules during validation.
func (c *Config) Resolver() *category.Resolver {
	return c.resolver
}
