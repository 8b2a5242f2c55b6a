//go:build !linux && !windows && !darwin

package probe

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

type stubProber struct{}

func newPlatformProber() Prober {
	return &stubProber{}
}

func (p *stubProber) Sample(_ context.Context) (Sample, error) {
	return Sample{Time: time.Now()}, fmt.Errorf(
		"%w: unsupported platform: %s",
		ErrUnavailable,
		runtime.GOOS,
	)
}
