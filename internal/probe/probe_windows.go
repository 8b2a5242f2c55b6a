//go:build windows

package probe

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procGetLastInputInfo         = user32.NewProc("GetLastInputInfo")

	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procGetTickCount = kernel32.NewProc("GetTickCount")
)

// lastInputInfo mirrors the Win32 LASTINPUTINFO struct.
type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type windowsProber struct{}

func newPlatformProber() Prober {
	return &windowsProber{}
}

func (p *windowsProber) Sample(_ context.Context) (Sample, error) {
	s := Sample{Time: time.Now()}

	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return s, fmt.Errorf("%w: no foreground window", ErrUnavailable)
	}

	var buf [512]uint16

	n, _, _ := procGetWindowTextW.Call(
		hwnd,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	s.Title = windows.UTF16ToString(buf[:n])

	var pid uint32

	_, _, _ = procGetWindowThreadProcessID.Call(
		hwnd,
		uintptr(unsafe.Pointer(&pid)),
	)

	if pid == 0 {
		return s, fmt.Errorf("%w: window has no process", ErrUnavailable)
	}

	app, err := processImageName(pid)
	if err != nil {
		return s, fmt.Errorf("%w: process name: %v", ErrUnavailable, err)
	}

	s.App = app

	idle, err := idleSeconds()
	if err != nil {
		return s, fmt.Errorf("%w: idle time: %v", ErrUnavailable, err)
	}

	s.IdleSeconds = idle
	s.URL = URLFromTitle(s.Title)

	return s, nil
}

func processImageName(pid uint32) (string, error) {
	h, err := windows.OpenProcess(
		windows.PROCESS_QUERY_LIMITED_INFORMATION,
		false,
		pid,
	)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16

	size := uint32(len(buf))

	err = windows.QueryFullProcessImageName(h, 0, &buf[0], &size)
	if err != nil {
		return "", err
	}

	exe := windows.UTF16ToString(buf[:size])

	return strings.TrimSpace(filepath.Base(exe)), nil
}

// idleSeconds derives idle time from the difference between the last
// input tick and the current tick count. Both wrap at 49.7 days; the
// unsigned subtraction stays correct across a single wrap.
func idleSeconds() (int, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	ret, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 0, err
	}

	tick, _, _ := procGetTickCount.Call()
	elapsedMs := uint32(tick) - info.dwTime

	return int(elapsedMs / 1000), nil
}
