package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/lapseapp/lapse/config"
	"github.com/lapseapp/lapse/goal"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/internal/ui"
)

const (
	barChar     = "▇"
	maxBarWidth = 40
	topAppCount = 10

	noActivityMsg = "No tracked activity found for the specified time range"
)

// Show renders the full report: totals per category with bars, the
// top apps, projects, a daily series, and today's goal standing.
func (s *Stats) Show(w io.Writer) error {
	rep, err := s.Compute()
	if err != nil {
		return err
	}

	if rep.Total == 0 {
		pterm.Info.Println(noActivityMsg)
		return nil
	}

	period := fmt.Sprintf(
		"%s - %s",
		rep.StartTime.Format("Jan 02, 2006"),
		rep.EndTime.Format("Jan 02, 2006"),
	)

	if rep.StartTime.IsZero() {
		period = "all time"
	}

	fmt.Fprintln(w, ui.Highlight("Activity report: ")+period)
	fmt.Fprintln(
		w,
		"Total tracked: "+ui.Green(timeutil.FormatSeconds(rep.Total)),
	)
	fmt.Fprintln(w)

	s.printCategories(w, rep)
	s.printTop(w, "Top apps", rep.Apps)

	if len(rep.Projects) > 0 {
		s.printTop(w, "Projects", rep.Projects)
	}

	if len(rep.Days) > 1 {
		s.printDays(w, rep)
	}

	return s.printGoals(w)
}

func (s *Stats) printCategories(w io.Writer, rep *Report) {
	fmt.Fprintln(w, pterm.Bold.Sprint("Categories"))

	maxSecs := rep.Categories[0].Seconds

	for _, c := range rep.Categories {
		width := c.Seconds * maxBarWidth / maxSecs
		if width == 0 {
			width = 1
		}

		fmt.Fprintf(
			w,
			"%-18s %s %s\n",
			c.Name,
			ui.Cyan(strings.Repeat(barChar, width)),
			timeutil.FormatSeconds(c.Seconds),
		)
	}

	fmt.Fprintln(w)
}

func (s *Stats) printTop(w io.Writer, title string, totals []Total) {
	data := [][]string{{"#", "NAME", "TIME"}}

	for i, t := range totals {
		if i == topAppCount {
			break
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			t.Name,
			timeutil.FormatSeconds(t.Seconds),
		})
	}

	fmt.Fprintln(w, pterm.Bold.Sprint(title))
	ui.PrintTable(data, w)
}

func (s *Stats) printDays(w io.Writer, rep *Report) {
	fmt.Fprintln(w, pterm.Bold.Sprint("Daily activity"))

	maxSecs := 0
	for _, d := range rep.Days {
		if d.Seconds > maxSecs {
			maxSecs = d.Seconds
		}
	}

	for _, d := range rep.Days {
		width := d.Seconds * maxBarWidth / maxSecs
		if width == 0 {
			width = 1
		}

		fmt.Fprintf(
			w,
			"%s %s %s\n",
			d.Date,
			ui.Magenta(strings.Repeat(barChar, width)),
			timeutil.FormatSeconds(d.Seconds),
		)
	}

	fmt.Fprintln(w)
}

// printGoals reports each goal's standing for today plus the streak.
func (s *Stats) printGoals(w io.Writer) error {
	today := timeutil.DateID(s.opts.EndTime)

	progress, err := s.Progress(today)
	if err != nil {
		return err
	}

	if len(progress) > 0 {
		fmt.Fprintln(w, pterm.Bold.Sprint("Goals today"))

		data := [][]string{{"CATEGORY", "GOAL", "TRACKED", "PROGRESS"}}

		for _, p := range progress {
			data = append(data, []string{
				p.Category,
				describeGoal(p),
				timeutil.FormatSeconds(int(p.Actual.Seconds())),
				describeProgress(p),
			})
		}

		ui.PrintTable(data, w)
	}

	streak, err := s.Streak()
	if err != nil {
		return err
	}

	if streak.Current > 0 || streak.Longest > 0 {
		fmt.Fprintf(
			w,
			"Streak: %s (longest: %d)\n",
			ui.Green(fmt.Sprintf("%d days", streak.Current)),
			streak.Longest,
		)
	}

	return nil
}

func describeGoal(p goal.Progress) string {
	target := timeutil.FormatSeconds(int(p.Target.Seconds()))

	if p.Direction == config.DirectionMax {
		return "at most " + target
	}

	return "at least " + target
}

func describeProgress(p goal.Progress) string {
	pct := fmt.Sprintf("%.0f%%", p.Ratio*100)

	if p.Direction == config.DirectionMax {
		if p.Reached() {
			return ui.Red(pct + " (over limit)")
		}

		return ui.Green(pct)
	}

	if p.Reached() {
		return ui.Green(pct + " (achieved)")
	}

	return ui.Cyan(pct)
}
