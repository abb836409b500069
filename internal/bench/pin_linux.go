//go:build linux

package bench

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// maxCPUs bounds the scan of the current affinity mask.
const maxCPUs = 1024

// pinThread locks the calling goroutine to its OS thread and restricts that
// thread to the first CPU in its current affinity mask. The returned release
// function restores the previous mask and unlocks the thread.
func pinThread() (release func(), cpu int, err error) {
	runtime.LockOSThread()

	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		runtime.UnlockOSThread()
		return nil, -1, fmt.Errorf("sched_getaffinity: %w", err)
	}

	cpu = -1
	for c := 0; c < maxCPUs; c++ {
		if prev.IsSet(c) {
			cpu = c
			break
		}
	}
	if cpu < 0 {
		runtime.UnlockOSThread()
		return nil, -1, errors.New("empty affinity mask")
	}

	var one unix.CPUSet
	one.Set(cpu)
	if err := unix.SchedSetaffinity(0, &one); err != nil {
		runtime.UnlockOSThread()
		return nil, -1, fmt.Errorf("sched_setaffinity: %w", err)
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &prev)
		runtime.UnlockOSThread()
	}, cpu, nil
}
