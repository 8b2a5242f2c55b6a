package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keySampleInterval = "tracking.sample_interval"
	keyIdleThreshold  = "tracking.idle_threshold"
	keyBufferSize     = "tracking.buffer_size"
	keyExcludedApps   = "tracking.excluded_apps"
	keyDefaultProject = "tracking.default_project"
	keyDefaultTags    = "tracking.default_tags"
	keyRules          = "categories.rules"
	keyGoals          = "goals"
	keyFocusEnabled   = "focus.enabled"
	keyFocusBlocked   = "focus.blocked"
	keyNotifyEnabled  = "notifications.enabled"
	keyNotifySound    = "notifications.sound"
	keyBreakReminder  = "notifications.break_reminder_interval"
	keySessionCmd     = "hooks.session_cmd"
	keyPomWork        = "pomodoro.work_duration"
	keyPomShortBreak  = "pomodoro.short_break"
	keyPomLongBreak   = "pomodoro.long_break"
	keyPomInterval    = "pomodoro.long_break_interval"
	keyPomAutoBreak   = "pomodoro.auto_start_break"
	keyPomAutoWork    = "pomodoro.auto_start_work"
)

// WithViperConfig returns an Option that loads configuration from
// Viper, writing a default config file on first run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v)
		seedViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault(keySampleInterval, "5s")
	v.SetDefault(keyIdleThreshold, "5m")
	v.SetDefault(keyBufferSize, 256)
	v.SetDefault(keyExcludedApps, []string{})
	v.SetDefault(keyDefaultProject, "")
	v.SetDefault(keyDefaultTags, []string{})
	v.SetDefault(keyRules, []map[string]string{})
	v.SetDefault(keyGoals, []map[string]string{})
	v.SetDefault(keyFocusEnabled, false)
	v.SetDefault(keyFocusBlocked, []string{})
	v.SetDefault(keyNotifyEnabled, true)
	v.SetDefault(keyNotifySound, "")
	v.SetDefault(keyBreakReminder, "0s")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyPomWork, "25m")
	v.SetDefault(keyPomShortBreak, "5m")
	v.SetDefault(keyPomLongBreak, "15m")
	v.SetDefault(keyPomInterval, 4)
	v.SetDefault(keyPomAutoBreak, true)
	v.SetDefault(keyPomAutoWork, false)
}

// seedViper carries values gathered by an earlier option, such as the
// first-run prompt, into Viper so they end up in the written config file.
func seedViper(v *viper.Viper, c *Config) {
	if c.Tracking.SampleInterval != 0 {
		v.Set(keySampleInterval, c.Tracking.SampleInterval.String())
	}

	if c.Tracking.IdleThreshold != 0 {
		v.Set(keyIdleThreshold, c.Tracking.IdleThreshold.String())
	}

	if c.Pomodoro.WorkDuration != 0 {
		v.Set(keyPomWork, c.Pomodoro.WorkDuration.String())
	}

	if c.Pomodoro.LongBreakInterval != 0 {
		v.Set(keyPomInterval, c.Pomodoro.LongBreakInterval)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	c.Tracking.SampleInterval = v.GetDuration(keySampleInterval)
	c.Tracking.IdleThreshold = v.GetDuration(keyIdleThreshold)
	c.Tracking.BufferSize = v.GetInt(keyBufferSize)
	c.Tracking.ExcludedApps = v.GetStringSlice(keyExcludedApps)
	c.Tracking.DefaultProject = v.GetString(keyDefaultProject)
	c.Tracking.DefaultTags = v.GetStringSlice(keyDefaultTags)

	if err := v.UnmarshalKey(keyRules, &c.Tracking.Rules); err != nil {
		return fmt.Errorf("loading category rules failed: %w", err)
	}

	if err := v.UnmarshalKey(keyGoals, &c.Goals); err != nil {
		return fmt.Errorf("loading goals failed: %w", err)
	}

	c.Focus.Enabled = v.GetBool(keyFocusEnabled)
	c.Focus.Blocked = v.GetStringSlice(keyFocusBlocked)

	c.Notifications.Enabled = v.GetBool(keyNotifyEnabled)
	c.Notifications.Sound = v.GetString(keyNotifySound)
	c.Notifications.BreakReminderInterval = v.GetDuration(keyBreakReminder)

	c.Hooks.SessionCmd = v.GetString(keySessionCmd)

	c.Pomodoro.WorkDuration = v.GetDuration(keyPomWork)
	c.Pomodoro.ShortBreak = v.GetDuration(keyPomShortBreak)
	c.Pomodoro.LongBreak = v.GetDuration(keyPomLongBreak)
	c.Pomodoro.LongBreakInterval = v.GetInt(keyPomInterval)
	c.Pomodoro.AutoStartBreak = v.GetBool(keyPomAutoBreak)
	c.Pomodoro.AutoStartWork = v.GetBool(keyPomAutoWork)

	return nil
}

// Watch invokes onReload with a freshly loaded config whenever the
// config file changes. An update that fails validation is reported and
// discarded so the running config stays in effect.
func Watch(configPath string, onReload func(*Config)) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := New(WithViperConfig(configPath))
		if err != nil {
			slog.Warn(
				"config change rejected, keeping the previous config",
				slog.Any("error", err),
			)

			return
		}

		for _, warning := range cfg.Warnings {
			slog.Warn("config warning", slog.Any("error", warning))
		}

		onReload(cfg)
	})

	v.WatchConfig()
}
