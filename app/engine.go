package app

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/probe"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/pomodoro"
	"github.com/lapseapp/lapse/store"
	"github.com/lapseapp/lapse/tracker"
)

// loadConfig loads and validates the configuration, reporting any
// non-fatal warnings (such as skipped rules) once. The first run of
// the engine walks through the interactive prompt.
func loadConfig(prompt bool) (*config.Config, error) {
	path := config.ConfigFilePath()

	var opts []config.Option

	if prompt {
		opts = append(opts, config.WithPromptConfig(path))
	}

	opts = append(opts, config.WithViperConfig(path))

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	for _, warning := range cfg.Warnings {
		pterm.Warning.Println(warning)
	}

	return cfg, nil
}

// engineAction runs the tracking engine in the foreground until
// Ctrl-C, SIGTERM, or a stop command arrives through the control
// file.
func engineAction(ctx *cli.Context) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	notifier := notify.NewDesktop(
		cfg.Notifications.Enabled,
		cfg.Notifications.Sound,
	)
	hook := notify.NewHook(cfg.Hooks.SessionCmd)
	goals := goal.NewEngine(db, notifier, cfg.Goals)

	pom := pomodoro.New(db, notifier, hook, timeutil.RealClock{}, cfg.Pomodoro)

	restored, err := pom.Restore()
	if err != nil {
		slog.Warn("unable to restore pomodoro phase", slog.Any("error", err))
	}

	if restored {
		pterm.Info.Println(
			"An interrupted Pomodoro phase is waiting: run 'lapse pomodoro next' to resume it",
		)
	}

	eng := tracker.New(
		db,
		probe.New(),
		notifier,
		hook,
		goals,
		cfg,
		tracker.WithStatusPath(config.StatusFilePath()),
		tracker.WithPomodoro(pom),
	)

	runCtx, cancel := signal.NotifyContext(
		ctx.Context,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	config.Watch(config.ConfigFilePath(), eng.Reload)

	err = watchControl(runCtx, config.ControlFilePath(), func(cmd string) {
		switch cmd {
		case ctlPause:
			eng.Pause()
		case ctlResume:
			eng.Resume()
		case ctlStop:
			cancel()
		case ctlPomodoroStart:
			reportPomodoroErr(pom.Start())
		case ctlPomodoroStop:
			reportPomodoroErr(pom.Stop())
		case ctlPomodoroNext:
			reportPomodoroErr(pom.Next())
		default:
			slog.Warn("unknown control command", slog.String("command", cmd))
		}
	})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		pom.Run(runCtx)
	}()

	pterm.Info.Printfln(
		"lapse %s is tracking (sample every %s, idle pause after %s). Press Ctrl-C to stop.",
		config.Version,
		cfg.Tracking.SampleInterval,
		cfg.Tracking.IdleThreshold,
	)

	err = eng.Run(runCtx)

	wg.Wait()

	return err
}

func reportPomodoroErr(err error) {
	if err != nil {
		slog.Info("pomodoro command rejected", slog.Any("error", err))
	}
}
