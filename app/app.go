// Package app defines the lapse command-line interface: the tracking
// engine itself, the commands that control a running engine, and the
// reporting commands.
package app

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lapseapp/lapse/config"
)

const (
	envNoColor      = "NO_COLOR"
	envLapseNoColor = "LAPSE_NO_COLOR"
	envLapseDebug   = "LAPSE_DEBUG"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// initLogging routes slog to a rotating file under the XDG state
// directory so the engine can run for months without growing a log.
func initLogging() {
	w := &lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    4,
		MaxBackups: 3,
		MaxAge:     28,
	}

	level := slog.LevelInfo
	if _, found := os.LookupEnv(envLapseDebug); found {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	slog.SetDefault(slog.New(handler))
}

// Get retrieves the lapse app instance.
func Get() *cli.App {
	lapseApp := &cli.App{
		Name: "lapse",
		Usage: `
		Lapse tracks how you spend time on your computer. It watches the
		foreground window, sorts activity into categories, and turns the
		result into daily totals, goal progress, streaks, and Pomodoro
		focus sessions.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show the tracking state and today's activity",
				Action: statusAction,
			},
			{
				Name:   "pause",
				Usage:  "Pause tracking in the running engine",
				Action: pauseAction,
			},
			{
				Name:   "resume",
				Usage:  "Resume tracking after a pause",
				Action: resumeAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop the running engine",
				Action: stopAction,
			},
			{
				Name:   "report",
				Usage:  "Report tracked time by category, app, and day",
				Flags:  []cli.Flag{periodFlag, startFlag, endFlag, tagFlag, categoryFlag, unknownFlag},
				Action: reportAction,
			},
			{
				Name:   "list",
				Usage:  "List recorded sessions within a time period",
				Flags:  []cli.Flag{periodFlag, startFlag, endFlag, tagFlag, categoryFlag, jsonFlag},
				Action: listAction,
			},
			{
				Name:  "add",
				Usage: "Record a session manually",
				Flags: []cli.Flag{
					categoryFlag,
					durationFlag,
					atFlag,
					appFlag,
					projectFlag,
					tagFlag,
				},
				Action: addAction,
			},
			{
				Name:  "goal",
				Usage: "Manage daily time goals",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List the configured goals",
						Action: goalListAction,
					},
					{
						Name:   "set",
						Usage:  "Add or update a goal",
						Flags:  []cli.Flag{categoryFlag, targetFlag, directionFlag},
						Action: goalSetAction,
					},
					{
						Name:   "rm",
						Usage:  "Remove a goal",
						Flags:  []cli.Flag{categoryFlag, directionFlag},
						Action: goalRemoveAction,
					},
				},
			},
			{
				Name:  "project",
				Usage: "Manage the project stamped onto new sessions",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Show the current default project",
						Action: projectShowAction,
					},
					{
						Name:      "set",
						Usage:     "Set the default project",
						ArgsUsage: "<name>",
						Action:    projectSetAction,
					},
					{
						Name:   "clear",
						Usage:  "Clear the default project",
						Action: projectClearAction,
					},
				},
			},
			{
				Name:  "pomodoro",
				Usage: "Control the Pomodoro cycle",
				Subcommands: []*cli.Command{
					{
						Name:   "start",
						Usage:  "Start a work session",
						Action: pomodoroStartAction,
					},
					{
						Name:   "stop",
						Usage:  "Abandon the current cycle",
						Action: pomodoroStopAction,
					},
					{
						Name:   "next",
						Usage:  "Begin the phase waiting to start",
						Action: pomodoroNextAction,
					},
					{
						Name:   "status",
						Usage:  "Show the cycle state and today's count",
						Action: pomodoroStatusAction,
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  []cli.Flag{noColorFlag},
		Action: engineAction,
		Before: beforeAction,
	}

	return lapseApp
}

func beforeAction(ctx *cli.Context) error {
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envLapseNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	initLogging()

	return nil
}
