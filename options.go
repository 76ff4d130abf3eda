// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import "sync"

// Options configures queue creation and algorithm selection.
type Options struct {
	// Guard for the locked variant; nil selects the lock-free ring.
	locker sync.Locker

	// Capacity (must be a power of 2)
	capacity int
}

// Builder creates SPSC queues with fluent configuration.
//
// Example:
//
//	// Lock-free ring (default)
//	q := lfsync.Build[Event](lfsync.New(1024))
//
//	// Mutex baseline
//	q := lfsync.Build[Event](lfsync.New(1024).Locked(new(sync.Mutex)))
//
//	// Spin-lock guarded ring
//	q := lfsync.BuildLocked[Event](lfsync.New(1024).Locked(new(lfsync.TTASLock)))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Panics unless capacity is a positive power of 2. Capacity is not rounded:
// a queue of capacity n holds exactly n elements.
func New(capacity int) *Builder {
	mustPow2(capacity)
	return &Builder{opts: Options{capacity: capacity}}
}

// Locked selects the lock-guarded ring with mu as its guard.
// A nil mu selects a [sync.Mutex].
func (b *Builder) Locked(mu sync.Locker) *Builder {
	if mu == nil {
		mu = new(sync.Mutex)
	}
	b.opts.locker = mu
	return b
}

// Build creates a Queue[T].
//
//	Locked(mu) → SPSCLocked (lock-guarded, modulo indexing)
//	default    → SPSC (lock-free Lamport ring)
func Build[T any](b *Builder) Queue[T] {
	if b.opts.locker != nil {
		return NewSPSCLocked[T](b.opts.capacity, b.opts.locker)
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildSPSC creates a lock-free SPSC queue with compile-time type safety.
// Panics if the builder was configured with Locked.
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if b.opts.locker != nil {
		panic("lfsync: BuildSPSC requires a builder without Locked()")
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildLocked creates a lock-guarded SPSC queue with compile-time type safety.
// Panics if the builder was not configured with Locked.
func BuildLocked[T any](b *Builder) *SPSCLocked[T] {
	if b.opts.locker == nil {
		panic("lfsync: BuildLocked requires Locked()")
	}
	return NewSPSCLocked[T](b.opts.capacity, b.opts.locker)
}
