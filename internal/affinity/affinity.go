// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package affinity pins the calling goroutine to one CPU core.
//
// Pin locks the goroutine to its OS thread before setting the thread's
// affinity mask, so the mask stays with the goroutine until Unpin. On
// platforms without sched_setaffinity(2) Pin only locks the thread and
// reports [ErrUnsupported].
package affinity

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupported is returned by Pin where thread affinity is unavailable.
var ErrUnsupported = errors.New("affinity: not supported on " + runtime.GOOS)

// Pin locks the calling goroutine to its OS thread and binds that thread to
// cpu. The thread stays locked even when Pin returns an error; callers pair
// every Pin with Unpin.
func Pin(cpu int) error {
	runtime.LockOSThread()
	if cpu < 0 {
		return fmt.Errorf("affinity: invalid cpu %d", cpu)
	}
	return setAffinity(cpu)
}

// Unpin releases the thread lock taken by Pin. The OS thread keeps its
// affinity mask; the runtime may hand it to other goroutines.
func Unpin() {
	runtime.UnlockOSThread()
}

// CPU maps a worker index onto the available cores round-robin.
func CPU(worker int) int {
	n := runtime.NumCPU()
	return ((worker % n) + n) % n
}
