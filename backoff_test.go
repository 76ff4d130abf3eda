// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import "testing"

func TestBackoffPhases(t *testing.T) {
	tests := []struct {
		name  string
		b     Backoff
		waits int
		want  int
	}{
		{"zero value yields at once", Backoff{}, 5, 0},
		{"pauses up to Spins", Backoff{Spins: 4}, 3, 3},
		{"yields after Spins", Backoff{Spins: 4}, 10, 4},
		{"NoYield keeps pausing", Backoff{Spins: 4, NoYield: true}, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.b
			for range tt.waits {
				b.Wait()
			}
			if b.n != tt.want {
				t.Fatalf("pause rounds after %d waits: got %d, want %d", tt.waits, b.n, tt.want)
			}
		})
	}
}

func TestBackoffReset(t *testing.T) {
	b := Backoff{Spins: 4}
	for range 10 {
		b.Wait()
	}
	b.Reset()
	if b.n != 0 {
		t.Fatalf("Reset: pause rounds got %d, want 0", b.n)
	}
	b.Wait()
	if b.n != 1 {
		t.Fatalf("Wait after Reset: pause rounds got %d, want 1", b.n)
	}
	if b.Spins != 4 {
		t.Fatalf("Reset changed Spins to %d", b.Spins)
	}
}

// TestLockBackoffIsCopied checks that a Lock call never advances the
// policy stored on the lock.
func TestLockBackoffIsCopied(t *testing.T) {
	l := &TTASLock{Backoff: Backoff{Spins: 8}}
	l.Lock()
	done := make(chan struct{})
	go func() {
		l.Lock()
		l.Unlock()
		close(done)
	}()
	l.Unlock()
	<-done
	if l.Backoff.n != 0 {
		t.Fatalf("stored Backoff advanced to %d", l.Backoff.n)
	}
}
