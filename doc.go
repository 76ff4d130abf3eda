// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfsync provides spin locks and single-producer single-consumer
// bounded queues built for short, contended hand-offs between goroutines.
//
// The fixed worker pool lives in the companion package
// [code.hybscloud.com/lfsync/pool].
//
// # Spin Locks
//
// Six interchangeable locks implement [SpinLocker] (a [sync.Locker] with
// TryLock). Each one explores a single design trade-off:
//
//	FlagLock          exchange loop (test-and-set)
//	CASLock           compare-and-swap loop
//	PaddedFlagLock    FlagLock alone on its cache line
//	PaddedCASLock     CASLock alone on its cache line
//	TTASLock          plain load, CAS only when free, Backoff on failure
//	ExchangeTTASLock  exchange first, then plain loads with Backoff until free
//
// All zero values are unlocked and ready to use:
//
//	var mu lfsync.TTASLock
//	mu.Lock()
//	counter++
//	mu.Unlock()
//
// Spin locks keep the waiting goroutine runnable. Use them only when the
// critical section is shorter than a context switch and there are fewer
// spinning goroutines than cores: a holder that gets descheduled stalls
// every waiter. None of the locks is fair or reentrant, and none detects
// unlock by a non-holder.
//
// # Backoff
//
// TTASLock and ExchangeTTASLock apply a [Backoff] policy between attempts.
// The policy is data, so switching between pause instructions and yielding
// does not touch the acquire/release logic:
//
//	mu := &lfsync.TTASLock{Backoff: lfsync.Backoff{Spins: 32}}
//
// # SPSC Queues
//
// Two queues share the [Queue] interface:
//
//	SPSC[T]        lock-free Lamport ring with cached indices
//	SPSCLocked[T]  plain ring guarded by any sync.Locker (baseline)
//
// Both hold exactly Cap() elements and require a power-of-2 capacity;
// anything else panics at construction.
//
//	q := lfsync.NewSPSC[Event](1024)
//
//	go func() { // Producer
//	    backoff := iox.Backoff{}
//	    for ev := range input {
//	        for !q.TryPush(ev) {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // Consumer
//	    backoff := iox.Backoff{}
//	    var ev Event
//	    for {
//	        if !q.TryPop(&ev) {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        handle(ev)
//	    }
//	}()
//
// A full or empty queue is a routine outcome: TryPush/TryPop return false,
// Enqueue/Dequeue return [ErrWouldBlock].
//
// # Thread Safety
//
// Exactly one goroutine may push and exactly one may pop on a given queue.
// Two concurrent pushers (or poppers) cause undefined behavior including
// lost and duplicated elements.
//
// # Race Detection
//
// The lock-free queue and the atomix-backed locks order plain memory through
// acquire/release operations the race detector cannot observe. Tests that
// depend on that ordering are skipped when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomics with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause rounds,
// [code.hybscloud.com/iox] for the would-block signal, and
// [golang.org/x/sys/cpu] for the cache line size.
package lfsync
