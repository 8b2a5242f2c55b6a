package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/notify"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/internal/ui"
	"github.com/lapseapp/lapse/stats"
	"github.com/lapseapp/lapse/store"
	"github.com/lapseapp/lapse/tracker"
)

// firstNonEmptyString returns its first non-empty argument, or "" if
// all arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// openStore opens the data file, adding a hint when the open fails
// because the engine holds the lock.
func openStore() (*store.Client, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil && engineRunning() {
		pterm.Info.Println(
			"The tracking engine is running and holds the data file. " +
				"Stop it with 'lapse stop', or use 'lapse status' for live numbers.",
		)
	}

	return db, err
}

// statsHelper builds the stats querier from the command-line filter
// flags.
func statsHelper(ctx *cli.Context) (*stats.Stats, *store.Client, error) {
	cfg, err := loadConfig(false)
	if err != nil {
		return nil, nil, err
	}

	filter := config.Filter(ctx)

	db, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	goals := goal.NewEngine(db, notify.Nop{}, cfg.Goals)

	return stats.New(db, goals, filter), db, nil
}

// statusAction prints the live snapshot published by a running engine.
func statusAction(_ *cli.Context) error {
	status, err := tracker.ReadStatus(config.StatusFilePath(), statusMaxAge)
	if err != nil {
		return err
	}

	pterm.Printfln("Tracking: %s", ui.Highlight(string(status.State)))

	if status.App != "" {
		pterm.Printfln(
			"Current session: %s (%s) since %s",
			ui.Green(status.App),
			status.Category,
			status.SessionStart.Format("03:04 PM"),
		)
	}

	if len(status.TodaySeconds) > 0 {
		var total int
		for _, secs := range status.TodaySeconds {
			total += secs
		}

		pterm.Printfln("Tracked today: %s", timeutil.FormatSeconds(total))

		data := [][]string{{"CATEGORY", "TIME"}}

		for cat, secs := range status.TodaySeconds {
			data = append(data, []string{cat, timeutil.FormatSeconds(secs)})
		}

		ui.PrintTable(data, os.Stdout)
	}

	if status.Streak != nil && status.Streak.Current > 0 {
		pterm.Printfln(
			"Streak: %s",
			ui.Green(fmt.Sprintf("%d days", status.Streak.Current)),
		)
	}

	if p := status.Pomodoro; p != nil {
		pterm.Printfln(
			"Pomodoro: %s (%d completed today)",
			describePhase(p),
			p.CompletedToday,
		)
	}

	return nil
}

func pauseAction(_ *cli.Context) error {
	if err := sendControl(ctlPause); err != nil {
		return err
	}

	pterm.Success.Println("Tracking paused. Resume with 'lapse resume'")

	return nil
}

func resumeAction(_ *cli.Context) error {
	if err := sendControl(ctlResume); err != nil {
		return err
	}

	pterm.Success.Println("Tracking resumed")

	return nil
}

func stopAction(_ *cli.Context) error {
	if err := sendControl(ctlStop); err != nil {
		return err
	}

	pterm.Success.Println("Engine stopping")

	return nil
}

func reportAction(ctx *cli.Context) error {
	s, db, err := statsHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	if ctx.Bool("unknown") {
		return s.Unknown(os.Stdout)
	}

	return s.Show(os.Stdout)
}

func listAction(ctx *cli.Context) error {
	s, db, err := statsHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	if ctx.Bool("json") {
		return s.ListJSON(os.Stdout)
	}

	return s.List(os.Stdout)
}

// addAction records a manual session through the normal aggregation
// path.
func addAction(ctx *cli.Context) error {
	dur := ctx.Duration("duration")

	end := time.Now()

	if at := ctx.String("at"); at != "" {
		parsed, err := config.ParseDate(at)
		if err != nil {
			return err
		}

		end = parsed
	}

	var tags []string
	if ctx.String("tag") != "" {
		tags = models.NormalizeTags(strings.Split(ctx.String("tag"), ","))
	}

	sess := models.Session{
		StartTime: end.Add(-dur),
		EndTime:   end,
		App:       ctx.String("app"),
		Category:  ctx.String("category"),
		Project:   ctx.String("project"),
		Tags:      tags,
	}

	db, err := openStore()
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	if err := tracker.AddManual(db, sess); err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Recorded %s of %s ending %s",
		timeutil.FormatSeconds(timeutil.Round(dur.Seconds())),
		sess.Category,
		end.Format("Jan 02, 2006 03:04 PM"),
	)

	return nil
}

func goalListAction(_ *cli.Context) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	if len(cfg.Goals) == 0 {
		pterm.Info.Println(
			"No goals configured. Add one with 'lapse goal set'",
		)

		return nil
	}

	data := [][]string{{"CATEGORY", "DIRECTION", "TARGET"}}

	for _, g := range cfg.Goals {
		data = append(data, []string{
			g.Category,
			g.Direction,
			timeutil.FormatSeconds(int(g.Target.Seconds())),
		})
	}

	ui.PrintTable(data, os.Stdout)

	return nil
}

func goalSetAction(ctx *cli.Context) error {
	g := config.GoalConfig{
		Category:  ctx.String("category"),
		Target:    ctx.Duration("target"),
		Direction: ctx.String("direction"),
	}

	if err := config.SetGoal(config.ConfigFilePath(), g); err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Goal saved: %s %s %s per day",
		g.Category,
		map[string]string{
			config.DirectionMax: "at most",
			config.DirectionMin: "at least",
		}[g.Direction],
		timeutil.FormatSeconds(int(g.Target.Seconds())),
	)

	return nil
}

func goalRemoveAction(ctx *cli.Context) error {
	err := config.RemoveGoal(
		config.ConfigFilePath(),
		ctx.String("category"),
		ctx.String("direction"),
	)
	if err != nil {
		return err
	}

	pterm.Success.Println("Goal removed")

	return nil
}

func projectShowAction(_ *cli.Context) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	if cfg.Tracking.DefaultProject == "" {
		pterm.Info.Println(
			"No default project set. Set one with 'lapse project set <name>'",
		)

		return nil
	}

	pterm.Printfln("Default project: %s", ui.Green(cfg.Tracking.DefaultProject))

	return nil
}

// projectSetAction stamps future sessions with a project name. A
// running engine picks the change up through the config watch.
func projectSetAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errProjectNameRequired
	}

	err := config.SetDefaultProject(config.ConfigFilePath(), name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("New sessions will belong to project '%s'", name)

	return nil
}

func projectClearAction(_ *cli.Context) error {
	err := config.SetDefaultProject(config.ConfigFilePath(), "")
	if err != nil {
		return err
	}

	pterm.Success.Println("Default project cleared")

	return nil
}

// editConfigAction opens the config file in the user's editor and
// validates the result.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	if err := cmd.Run(); err != nil {
		return err
	}

	if _, err := loadConfig(false); err != nil {
		pterm.Warning.Printfln(
			"The edited config has a problem: %v", err,
		)
		pterm.Warning.Println(
			"A running engine keeps its previous config until this is fixed",
		)

		return nil
	}

	pterm.Success.Println("Configuration is valid")

	return nil
}
