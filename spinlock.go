// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// SpinLocker is the contract shared by every spin lock in this package.
//
// Lock busy-waits until the caller holds the lock; it never parks the
// goroutine. Unlock releases it and must only be called by the holder.
// TryLock makes a single acquisition attempt.
//
// Spin locks are not reentrant and not fair: a goroutine that releases the
// lock may win it again while others are still waiting.
type SpinLocker interface {
	sync.Locker
	TryLock() bool
}

var (
	_ SpinLocker = (*FlagLock)(nil)
	_ SpinLocker = (*CASLock)(nil)
	_ SpinLocker = (*PaddedFlagLock)(nil)
	_ SpinLocker = (*PaddedCASLock)(nil)
	_ SpinLocker = (*TTASLock)(nil)
	_ SpinLocker = (*ExchangeTTASLock)(nil)
)

const (
	unlocked uint64 = 0
	locked   uint64 = 1
)

// FlagLock is a test-and-set spin lock.
//
// Every acquisition attempt is an unconditional exchange, so waiters keep
// pulling the cache line into exclusive state while the lock is held.
// The zero value is an unlocked lock.
type FlagLock struct {
	locked atomix.Bool
}

// Lock acquires the lock, spinning until it is free.
func (l *FlagLock) Lock() {
	for l.locked.SwapAcquire(true) {
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *FlagLock) TryLock() bool {
	return !l.locked.SwapAcquire(true)
}

// Unlock releases the lock.
func (l *FlagLock) Unlock() {
	l.locked.StoreRelease(false)
}

// CASLock is a compare-and-swap spin lock.
//
// Behaves like [FlagLock] but acquires with CAS(free → held) instead of an
// exchange. The zero value is an unlocked lock.
type CASLock struct {
	state atomix.Uint64
}

// Lock acquires the lock, spinning until it is free.
func (l *CASLock) Lock() {
	for !l.state.CompareAndSwapAcqRel(unlocked, locked) {
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *CASLock) TryLock() bool {
	return l.state.CompareAndSwapAcqRel(unlocked, locked)
}

// Unlock releases the lock.
func (l *CASLock) Unlock() {
	l.state.StoreRelease(unlocked)
}

// PaddedFlagLock is a [FlagLock] that owns a whole cache line.
//
// Writes to neighbouring memory cannot invalidate the line holding the lock
// state on other cores.
type PaddedFlagLock struct {
	_ pad
	FlagLock
	_ padBool
}

// PaddedCASLock is a [CASLock] that owns a whole cache line.
type PaddedCASLock struct {
	_ pad
	CASLock
	_ padShort
}

// TTASLock is a test-and-test-and-set spin lock.
//
// A waiter reads the state with a plain load and only attempts the CAS once
// the lock looks free, so a held lock is watched from a shared cache line
// instead of being bounced between cores. After every failed attempt the
// waiter applies Backoff.
//
// The zero value is an unlocked lock that yields on contention.
type TTASLock struct {
	_     pad
	state atomix.Uint64
	_     padShort

	// Backoff is the policy applied between attempts. Set it before the
	// lock is shared.
	Backoff Backoff
}

// Lock acquires the lock.
func (l *TTASLock) Lock() {
	bo := l.Backoff
	for {
		if l.state.LoadRelaxed() == unlocked && l.state.CompareAndSwapAcqRel(unlocked, locked) {
			return
		}
		bo.Wait()
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *TTASLock) TryLock() bool {
	return l.state.LoadRelaxed() == unlocked && l.state.CompareAndSwapAcqRel(unlocked, locked)
}

// Unlock releases the lock.
func (l *TTASLock) Unlock() {
	l.state.StoreRelease(unlocked)
}

// ExchangeTTASLock attempts the exchange first and, when it loses, waits on
// plain loads until the lock is released before exchanging again.
//
// The uncontended path costs one read-modify-write; the contended path is
// read-only until the holder unlocks. Backoff is applied on every read that
// still sees the lock held.
type ExchangeTTASLock struct {
	_      pad
	locked atomix.Bool
	_      padBool

	// Backoff is the policy applied while the lock is observed held.
	Backoff Backoff
}

// Lock acquires the lock.
func (l *ExchangeTTASLock) Lock() {
	bo := l.Backoff
	for l.locked.SwapAcquire(true) {
		for l.locked.LoadRelaxed() {
			bo.Wait()
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *ExchangeTTASLock) TryLock() bool {
	return !(l.locked.LoadRelaxed() || l.locked.SwapAcquire(true))
}

// Unlock releases the lock.
func (l *ExchangeTTASLock) Unlock() {
	l.locked.StoreRelease(false)
}
