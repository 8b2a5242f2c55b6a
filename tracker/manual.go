package tracker

import (
	"strings"

	"github.com/lapseapp/lapse/internal/models"
	"github.com/lapseapp/lapse/store"
)

// AddManual inserts a synthetic closed session, bypassing the sampler
// but travelling the normal aggregation path so midnight splitting and
// goal totals apply. It does not require a running engine.
func AddManual(db store.DB, sess models.Session) error {
	sess.Category = strings.TrimSpace(sess.Category)
	if sess.Category == "" {
		return errMissingCategory
	}

	if !sess.EndTime.After(sess.StartTime) {
		return errInvalidDuration
	}

	if strings.TrimSpace(sess.App) == "" {
		sess.App = "manual entry"
	}

	sess.Tags = models.NormalizeTags(sess.Tags)
	sess.Manual = true

	if err := db.AppendSessions([]models.Session{sess}); err != nil {
		return err
	}

	_, err := db.Compact()

	return err
}
