// Package notify delivers desktop notifications, alert sounds, and
// user hook commands for tracking and Pomodoro events.
package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/kballard/go-shellquote"
)

var errInvalidSoundFormat = errors.New(
	"invalid sound file format: only wav, mp3, flac, and ogg are supported",
)

// Notifier delivers a user-facing notification.
type Notifier interface {
	Notify(title, msg string)
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) Notify(_, _ string) {}

// Desktop sends notifications through the system notification daemon,
// optionally playing an alert sound.
type Desktop struct {
	mu      sync.Mutex
	sound   string
	enabled bool
}

// NewDesktop returns a desktop notifier. soundPath may be empty to
// disable alert sounds.
func NewDesktop(enabled bool, soundPath string) *Desktop {
	return &Desktop{
		enabled: enabled,
		sound:   soundPath,
	}
}

func (d *Desktop) Notify(title, msg string) {
	if !d.enabled {
		return
	}

	if err := beeep.Notify(title, msg, ""); err != nil {
		slog.Warn("unable to display notification", slog.Any("error", err))
	}

	if d.sound == "" {
		return
	}

	go func() {
		if err := d.playSound(); err != nil {
			slog.Warn("unable to play alert sound", slog.Any("error", err))
		}
	}()
}

// playSound plays the configured alert file to completion. Playback is
// serialized so overlapping notifications do not contend for the
// speaker.
func (d *Desktop) playSound() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, err := os.Open(d.sound)
	if err != nil {
		return err
	}

	defer func() {
		_ = f.Close()
	}()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch filepath.Ext(d.sound) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		return errInvalidSoundFormat
	}

	if err != nil {
		return err
	}

	defer stream.Close()

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(100*time.Millisecond),
	)
	if err != nil {
		return err
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	speaker.Clear()

	return nil
}

// Hook runs a user-configured shell command on tracking events. The
// event details are passed through LAPSE_* environment variables.
type Hook struct {
	cmd string
}

func NewHook(cmd string) *Hook {
	return &Hook{cmd: cmd}
}

// Run executes the hook with the given variables added to the
// environment. A hook that was never configured is a no-op.
func (h *Hook) Run(vars map[string]string) error {
	if h.cmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(h.cmd)
	if err != nil {
		return fmt.Errorf("unable to parse hook command: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = os.Environ()

	for k, v := range vars {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	return cmd.Run()
}
