// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import (
	"math"
	"reflect"
	"testing"
	"unsafe"
)

// checkSeparated verifies that each named field starts at least one cache
// line after the previous one, and that the first one is at least one line
// from the start of the struct.
func checkSeparated(t *testing.T, typ reflect.Type, names ...string) {
	t.Helper()
	prev := uintptr(0)
	for _, name := range names {
		field, ok := typ.FieldByName(name)
		if !ok {
			t.Fatalf("%s: missing field %q", typ, name)
		}
		if field.Offset-prev < uintptr(CacheLineSize) {
			t.Fatalf("%s.%s offset %d is within one cache line of %d", typ, name, field.Offset, prev)
		}
		prev = field.Offset
	}
}

func TestSPSCLayout(t *testing.T) {
	checkSeparated(t, reflect.TypeOf(SPSC[int]{}), "head", "cachedTail", "tail", "cachedHead", "slots")
}

func TestSpinLockLayout(t *testing.T) {
	checkSeparated(t, reflect.TypeOf(TTASLock{}), "state", "Backoff")
	checkSeparated(t, reflect.TypeOf(ExchangeTTASLock{}), "locked", "Backoff")
	checkSeparated(t, reflect.TypeOf(PaddedCASLock{}), "CASLock")
	checkSeparated(t, reflect.TypeOf(PaddedFlagLock{}), "FlagLock")
}

func TestGuardSlots(t *testing.T) {
	tests := []struct {
		name string
		got  int
		size int
	}{
		{"byte", guardSlots[byte](), 1},
		{"uint64", guardSlots[uint64](), 8},
		{"[3]byte", guardSlots[[3]byte](), 3},
		{"[200]byte", guardSlots[[200]byte](), 200},
	}
	for _, tt := range tests {
		if tt.got*tt.size < CacheLineSize {
			t.Fatalf("guardSlots[%s] = %d covers %d bytes, want >= %d", tt.name, tt.got, tt.got*tt.size, CacheLineSize)
		}
		if (tt.got-1)*tt.size >= CacheLineSize {
			t.Fatalf("guardSlots[%s] = %d is larger than needed", tt.name, tt.got)
		}
	}
	if g := guardSlots[struct{}](); g != 0 {
		t.Fatalf("guardSlots[struct{}] = %d, want 0", g)
	}
}

// TestSPSCGuardRegion checks that the logical ring sits strictly inside its
// allocation with a full cache line of guard elements on either side.
func TestSPSCGuardRegion(t *testing.T) {
	q := NewSPSC[uint32](8)
	if len(q.slots) != 8 || cap(q.slots) != 8 {
		t.Fatalf("slots: len %d cap %d, want 8/8", len(q.slots), cap(q.slots))
	}

	g := guardSlots[uint32]()
	base := unsafe.Pointer(unsafe.SliceData(q.slots))
	full := unsafe.Slice((*uint32)(unsafe.Add(base, -g*4)), 8+2*g)
	for i := range full {
		full[i] = 0
	}
	for i := range 8 {
		q.TryPush(uint32(i + 1))
	}
	for i := range g {
		if full[i] != 0 || full[len(full)-1-i] != 0 {
			t.Fatalf("guard slot %d written", i)
		}
	}
}

// TestSPSCPopClearsSlot checks that a popped slot no longer references the
// popped value.
func TestSPSCPopClearsSlot(t *testing.T) {
	q := NewSPSC[*int](2)
	v := 7
	q.TryPush(&v)

	var got *int
	if !q.TryPop(&got) || got != &v {
		t.Fatal("TryPop: wrong pointer")
	}
	for i, p := range q.slots {
		if p != nil {
			t.Fatalf("slot %d still holds %p", i, p)
		}
	}

	l := NewSPSCMutex[*int](2)
	l.TryPush(&v)
	l.TryPop(&got)
	for i, p := range l.buffer {
		if p != nil {
			t.Fatalf("locked slot %d still holds %p", i, p)
		}
	}
}

// TestSPSCIndexOverflow starts both indices just below 2^64 so pushes and
// pops cross the wrap of the unsigned counters.
func TestSPSCIndexOverflow(t *testing.T) {
	const start = math.MaxUint64 - 2

	q := NewSPSC[int](4)
	q.head.StoreRelaxed(start)
	q.tail.StoreRelaxed(start)
	q.cachedHead, q.cachedTail = start, start

	l := NewSPSCMutex[int](4)
	l.head, l.tail = start, start

	for _, qq := range []Queue[int]{q, l} {
		for round := range 3 {
			for i := range 4 {
				if !qq.TryPush(round*10 + i) {
					t.Fatalf("%T round %d: TryPush(%d) failed", qq, round, i)
				}
			}
			if qq.TryPush(-1) {
				t.Fatalf("%T round %d: TryPush on full succeeded", qq, round)
			}
			for i := range 4 {
				var got int
				if !qq.TryPop(&got) || got != round*10+i {
					t.Fatalf("%T round %d: got %d, want %d", qq, round, got, round*10+i)
				}
			}
			var got int
			if qq.TryPop(&got) {
				t.Fatalf("%T round %d: TryPop on empty succeeded", qq, round)
			}
		}
	}
}
