// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import "sync"

// SPSCLocked is a single-producer single-consumer bounded queue whose plain
// head/tail counters are guarded by one lock.
//
// Producer and consumer are fully serialized, which makes it the baseline
// against which [SPSC] is measured. Slots are selected with a modulo.
//
// The guard is any [sync.Locker]: a [sync.Mutex] by default, or one of this
// package's spin locks when the critical section is short and cores are
// available.
type SPSCLocked[T any] struct {
	mu       sync.Locker
	head     uint64
	tail     uint64
	buffer   []T
	capacity uint64
}

// NewSPSCMutex creates a [sync.Mutex]-guarded SPSC queue.
// Panics unless capacity is a positive power of 2.
func NewSPSCMutex[T any](capacity int) *SPSCLocked[T] {
	return NewSPSCLocked[T](capacity, new(sync.Mutex))
}

// NewSPSCLocked creates an SPSC queue guarded by mu.
// Panics unless capacity is a positive power of 2, or if mu is nil.
//
// Example:
//
//	q := lfsync.NewSPSCLocked[int](64, new(lfsync.TTASLock))
func NewSPSCLocked[T any](capacity int, mu sync.Locker) *SPSCLocked[T] {
	mustPow2(capacity)
	if mu == nil {
		panic("lfsync: nil locker")
	}

	return &SPSCLocked[T]{
		mu:       mu,
		buffer:   make([]T, capacity),
		capacity: uint64(capacity),
	}
}

// TryPush adds elem at the tail (producer only).
// Returns false if the queue is full.
func (q *SPSCLocked[T]) TryPush(elem T) bool {
	return q.push(&elem)
}

// Enqueue adds *elem at the tail (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSCLocked[T]) Enqueue(elem *T) error {
	return wouldBlock(q.push(elem))
}

func (q *SPSCLocked[T]) push(elem *T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.tail-q.head == q.capacity {
		return false
	}
	q.buffer[q.tail%q.capacity] = *elem
	q.tail++
	return true
}

// TryPop removes the head element into *out (consumer only).
// Returns false if the queue is empty.
func (q *SPSCLocked[T]) TryPop(out *T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.tail == q.head {
		return false
	}
	i := q.head % q.capacity
	*out = q.buffer[i]
	var zero T
	q.buffer[i] = zero
	q.head++
	return true
}

// Dequeue removes and returns the head element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSCLocked[T]) Dequeue() (T, error) {
	var elem T
	if !q.TryPop(&elem) {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSCLocked[T]) Cap() int {
	return int(q.capacity)
}
