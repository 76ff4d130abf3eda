// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"sync"

	"github.com/rs/zerolog"
)

// Option configures a Fixed pool.
type Option func(*config)

type config struct {
	name         string
	logger       zerolog.Logger
	locker       sync.Locker
	panicHandler func(any)
}

func defaultConfig() config {
	return config{
		name:   "fixed",
		logger: zerolog.Nop(),
	}
}

// WithName sets the value of the "pool" field on every log event.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger used for worker lifecycle (debug) and job
// panics (error). The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLocker sets the lock guarding the job queue. The default is a
// [sync.Mutex].
//
// Idle workers still park on a [sync.Cond] built on this lock, so a spin
// lock only changes how submitters and waking workers contend for the queue.
//
//	p, err := pool.New(4, pool.WithLocker(new(lfsync.TTASLock)))
func WithLocker(mu sync.Locker) Option {
	return func(c *config) {
		c.locker = mu
	}
}

// WithPanicHandler sets a function called, on the worker goroutine, with
// the value recovered from a panicking job. The panic is logged either way
// and the worker keeps running.
func WithPanicHandler(fn func(any)) Option {
	return func(c *config) {
		c.panicHandler = fn
	}
}
