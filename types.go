// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

// Queue is the combined producer-consumer interface for a bounded FIFO queue
// shared by exactly one producer goroutine and one consumer goroutine.
//
// Both sides come in two flavours that perform the same operation:
// TryPush/TryPop report full/empty as false, Enqueue/Dequeue report it as
// [ErrWouldBlock]. Neither flavour ever blocks.
//
// Example:
//
//	q := lfsync.NewSPSC[int](1024)
//
//	// Producer
//	if !q.TryPush(42) {
//	    // Handle full queue
//	}
//
//	// Consumer
//	var v int
//	if q.TryPop(&v) {
//	    fmt.Println(v)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for the single producer side.
//
// The queue stores a copy of the value. The slot it occupies is owned by the
// consumer from the moment the push is published until the value is popped.
type Producer[T any] interface {
	// TryPush adds elem at the tail.
	// Returns false if the queue is full.
	TryPush(elem T) bool

	// Enqueue adds *elem at the tail.
	// Returns nil on success, ErrWouldBlock if the queue is full.
	Enqueue(elem *T) error
}

// Consumer is the interface for the single consumer side.
//
// Popping moves the value out and resets the slot to the zero value, so the
// queue holds no references to popped elements.
type Consumer[T any] interface {
	// TryPop removes the head element into *out.
	// Returns false, leaving *out untouched, if the queue is empty.
	TryPop(out *T) bool

	// Dequeue removes and returns the head element.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}
