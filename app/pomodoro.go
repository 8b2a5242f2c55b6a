package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/pomodoro"
	"github.com/lapseapp/lapse/store"
	"github.com/lapseapp/lapse/tracker"
)

func describePhase(p *pomodoro.Status) string {
	if p.Phase == pomodoro.Idle {
		return "idle"
	}

	remaining := timeutil.FormatSeconds(
		timeutil.Round(p.Remaining.Seconds()),
	)

	if p.Waiting {
		return fmt.Sprintf("%s waiting to start (%s)", p.Phase, remaining)
	}

	return fmt.Sprintf("%s, %s left", p.Phase, remaining)
}

// pomodoroStartAction begins a work session: through the control file
// when the engine is running, otherwise as a foreground timer.
func pomodoroStartAction(_ *cli.Context) error {
	if engineRunning() {
		if err := sendControl(ctlPomodoroStart); err != nil {
			return err
		}

		pterm.Success.Println(
			"Work session started. Watch it with 'lapse pomodoro status'",
		)

		return nil
	}

	return runForegroundPomodoro()
}

func pomodoroStopAction(_ *cli.Context) error {
	if engineRunning() {
		if err := sendControl(ctlPomodoroStop); err != nil {
			return err
		}

		pterm.Success.Println("Pomodoro cycle abandoned")

		return nil
	}

	// no engine: clear any phase saved for resumption
	db, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	if err := db.DeletePomodoroSnapshot(); err != nil {
		return err
	}

	pterm.Success.Println("Cleared the saved Pomodoro phase")

	return nil
}

func pomodoroNextAction(_ *cli.Context) error {
	if err := sendControl(ctlPomodoroNext); err != nil {
		return err
	}

	pterm.Success.Println("Next phase started")

	return nil
}

func pomodoroStatusAction(_ *cli.Context) error {
	status, err := tracker.ReadStatus(config.StatusFilePath(), statusMaxAge)
	if err == nil && status.Pomodoro != nil {
		p := status.Pomodoro

		pterm.Printfln("Pomodoro: %s", describePhase(p))
		pterm.Printfln("Completed today: %d", p.CompletedToday)

		return nil
	}

	// no engine: report from the store directly
	db, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	count, err := db.GetPomodoroCount(timeutil.DateID(time.Now()))
	if err != nil {
		return err
	}

	pterm.Printfln("Pomodoro: idle (no engine running)")
	pterm.Printfln("Completed today: %d", count)

	if snap, err := db.GetPomodoroSnapshot(); err == nil && snap != nil {
		pterm.Printfln(
			"Saved phase: %s with %s left ('lapse pomodoro start' resumes it)",
			snap.Phase,
			timeutil.FormatSeconds(timeutil.Round(snap.Remaining.Seconds())),
		)
	}

	return nil
}

// runForegroundPomodoro drives the cycle in this process with a live
// countdown. Enter begins a waiting phase; Ctrl-C saves the current
// phase for later resumption.
func runForegroundPomodoro() error {
	cfg, err := loadConfig(false)
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

	pom := pomodoro.New(db, notifier, hook, timeutil.RealClock{}, cfg.Pomodoro)

	restored, err := pom.Restore()
	if err != nil {
		return err
	}

	if restored {
		if err := pom.Next(); err != nil {
			return err
		}
	} else if err := pom.Start(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		pom.Run(ctx)
	}()

	// Enter advances a waiting phase
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			_ = pom.Next()
		}
	}()

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()

			_ = area.Stop()

			pterm.Info.Println(
				"Pomodoro suspended; 'lapse pomodoro start' resumes it",
			)

			return nil
		case <-ticker.C:
			area.Update(renderCountdown(pom.Status()))
		}
	}
}

func renderCountdown(p pomodoro.Status) string {
	if p.Phase == pomodoro.Idle {
		return "Pomodoro is idle"
	}

	line := fmt.Sprintf(
		"%s: %s remaining (%d completed today)",
		pterm.Bold.Sprint(string(p.Phase)),
		timeutil.FormatSeconds(timeutil.Round(p.Remaining.Seconds())),
		p.CompletedToday,
	)

	if p.Waiting {
		line = fmt.Sprintf(
			"%s is waiting, press ENTER to begin (%d completed today)",
			pterm.Bold.Sprint(string(p.Phase)),
			p.CompletedToday,
		)
	}

	return line
}
