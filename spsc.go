// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import (
	"code.hybscloud.com/atomix"
)

// SPSC is a lock-free single-producer single-consumer bounded queue.
//
// Based on Lamport's ring buffer with cached index optimization.
// The producer caches the consumer's head index and the consumer caches the
// producer's tail index; each side reloads the real index (acquire) only
// when its cached copy says the queue is full or empty. Cross-core traffic
// is paid near the boundaries instead of on every operation.
//
// Indices grow without bound and wrap modulo 2^64; tail-head is always in
// [0, Cap()]. The slot for index i is i&(Cap()-1).
//
// The ring is allocated with one cache line's worth of guard elements on
// each side, so the first and last slots never share a line with the index
// fields or with other allocations.
//
// Exactly one goroutine may push and exactly one may pop. Violating that is
// undefined behavior, not merely slower.
type SPSC[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer advances
	_          padShort
	cachedTail uint64 // Consumer's cached view of tail
	_          padShort
	tail       atomix.Uint64 // Producer advances
	_          padShort
	cachedHead uint64 // Producer's cached view of head
	_          padShort
	slots      []T
	mask       uint64
}

// NewSPSC creates a new lock-free SPSC queue.
// Panics unless capacity is a positive power of 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	mustPow2(capacity)

	g := guardSlots[T]()
	storage := make([]T, capacity+2*g)
	return &SPSC[T]{
		slots: storage[g : g+capacity : g+capacity],
		mask:  uint64(capacity - 1),
	}
}

// TryPush adds elem at the tail (producer only).
// Returns false if the queue is full.
func (q *SPSC[T]) TryPush(elem T) bool {
	return q.push(&elem)
}

// Enqueue adds *elem at the tail (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSC[T]) Enqueue(elem *T) error {
	return wouldBlock(q.push(elem))
}

func (q *SPSC[T]) push(elem *T) bool {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return false
		}
	}

	q.slots[tail&q.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	return true
}

// TryPop removes the head element into *out (consumer only).
// Returns false if the queue is empty.
func (q *SPSC[T]) TryPop(out *T) bool {
	head := q.head.LoadRelaxed()
	if head == q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head == q.cachedTail {
			return false
		}
	}

	slot := &q.slots[head&q.mask]
	*out = *slot
	var zero T
	*slot = zero
	q.head.StoreRelease(head + 1)
	return true
}

// Dequeue removes and returns the head element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, error) {
	var elem T
	if !q.TryPop(&elem) {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

// Cap returns the queue capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
