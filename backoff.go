// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import (
	"runtime"

	"code.hybscloud.com/spin"
)

// Backoff is the wait policy a spin lock applies after a failed acquisition
// attempt.
//
// The fields configure the policy; the lock copies the value at the start of
// every Lock call, so the running counters never leak between acquisitions.
// The zero value yields the processor on every failed attempt.
//
//	var mu lfsync.TTASLock
//	mu.Backoff = lfsync.Backoff{Spins: 16}           // pause 16 rounds, then yield
//	mu.Backoff = lfsync.Backoff{NoYield: true}       // never leave the CPU
//
// Backoff never sleeps: the waiter stays runnable in both phases.
type Backoff struct {
	// Spins is the number of CPU pause rounds before the first yield.
	Spins int

	// NoYield keeps the waiter in pause rounds forever.
	// Only useful when every spinner owns a dedicated core.
	NoYield bool

	n  int
	sw spin.Wait
}

// Wait performs one backoff step.
func (b *Backoff) Wait() {
	if b.NoYield || b.n < b.Spins {
		b.n++
		b.sw.Once()
		return
	}
	runtime.Gosched()
}

// Reset restarts the pause phase.
func (b *Backoff) Reset() {
	b.n = 0
	b.sw = spin.Wait{}
}
