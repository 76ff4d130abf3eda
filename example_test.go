// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// Examples in this file hand values between goroutines through atomix
// ordering, which the race detector reports as false positives.

package lfsync_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfsync"
)

// ExampleNewSPSC demonstrates a pipeline stage between two goroutines.
func ExampleNewSPSC() {
	q := lfsync.NewSPSC[int](8)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { // Producer
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := 1; i <= 5; i++ {
			for !q.TryPush(i * 10) {
				backoff.Wait()
			}
			backoff.Reset()
		}
	}()

	backoff := iox.Backoff{}
	var v int
	for n := 0; n < 5; {
		if !q.TryPop(&v) {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		fmt.Println(v)
		n++
	}
	wg.Wait()

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleNewSPSCLocked guards the baseline queue with a spin lock instead of
// a sync.Mutex.
func ExampleNewSPSCLocked() {
	q := lfsync.NewSPSCLocked[string](4, &lfsync.TTASLock{Backoff: lfsync.Backoff{Spins: 16}})

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		if err := q.Enqueue(&s); lfsync.IsWouldBlock(err) {
			fmt.Println("full at", s)
		}
	}
	for {
		s, err := q.Dequeue()
		if err != nil {
			break
		}
		fmt.Println(s)
	}

	// Output:
	// full at e
	// a
	// b
	// c
	// d
}

// ExampleTTASLock protects a plain counter shared by several goroutines.
func ExampleTTASLock() {
	var mu lfsync.TTASLock
	counter := 0

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				mu.Lock()
				counter++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	fmt.Println(counter)

	// Output:
	// 4000
}

// ExampleBuild selects the queue algorithm with the builder.
func ExampleBuild() {
	fast := lfsync.Build[int](lfsync.New(16))
	base := lfsync.Build[int](lfsync.New(16).Locked(new(sync.Mutex)))

	fmt.Printf("%T %d\n", fast, fast.Cap())
	fmt.Printf("%T %d\n", base, base.Cap())

	// Output:
	// *lfsync.SPSC[int] 16
	// *lfsync.SPSCLocked[int] 16
}
