package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/internal/timeutil"
	"github.com/lapseapp/lapse/internal/ui"
)

const noSessionsMsg = "No sessions found for the specified time range"

// sessions returns the sessions within the reporting range, narrowed
// by the category filter when one is set.
func (s *Stats) sessions() ([]models.Session, error) {
	sessions, err := s.db.GetSessions(
		s.opts.StartTime,
		s.opts.EndTime,
		s.opts.Tags,
	)
	if err != nil {
		return nil, err
	}

	if s.opts.Category == "" {
		return sessions, nil
	}

	kept := sessions[:0]

	for _, sess := range sessions {
		if strings.EqualFold(sess.Category, s.opts.Category) {
			kept = append(kept, sess)
		}
	}

	return kept, nil
}

// List prints a table of the sessions recorded within the reporting
// range, oldest first.
func (s *Stats) List(w io.Writer) error {
	sessions, err := s.sessions()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	data := [][]string{
		{"#", "START", "END", "APP", "CATEGORY", "PROJECT", "TAGS", "TIME"},
	}

	for i := range sessions {
		sess := &sessions[i]

		app := sess.App
		if sess.Manual {
			app = app + " " + ui.Cyan("(manual)")
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			sess.StartTime.Format("Jan 02, 2006 03:04 PM"),
			sess.EndTime.Format("03:04 PM"),
			app,
			sess.Category,
			sess.Project,
			strings.Join(sess.Tags, " · "),
			timeutil.FormatSeconds(timeutil.Round(sess.Duration().Seconds())),
		})
	}

	ui.PrintTable(data, w)

	return nil
}

// ListJSON prints the same sessions as a JSON array for scripting.
func (s *Stats) ListJSON(w io.Writer) error {
	sessions, err := s.sessions()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(sessions)
}

// Unknown prints the apps that resolved to Uncategorized, most seen
// first, so users can write rules for them.
func (s *Stats) Unknown(w io.Writer) error {
	apps, err := s.db.GetUnknownApps()
	if err != nil {
		return err
	}

	if len(apps) == 0 {
		pterm.Info.Println("No uncategorized apps recorded")
		return nil
	}

	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		if apps[a] != apps[b] {
			return apps[b] - apps[a]
		}

		if natural.Less(a, b) {
			return -1
		}

		return 1
	})

	data := [][]string{{"APP", "TIMES SEEN"}}

	for _, name := range names {
		data = append(data, []string{name, fmt.Sprintf("%d", apps[name])})
	}

	ui.PrintTable(data, w)

	return nil
}
