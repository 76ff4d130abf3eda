// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// CacheLineSize is the size in bytes of the padding unit used to keep hot
// fields on separate cache lines.
//
// The value is taken from [cpu.CacheLinePad], which is sized per
// architecture (64 on amd64, 128 on arm64 and ppc64, and so on).
const CacheLineSize = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// pad is cache line padding to prevent false sharing.
type pad = cpu.CacheLinePad

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [CacheLineSize - 8]byte

// padBool is padding to fill a cache line after an atomix.Bool.
type padBool [uintptr(CacheLineSize) - unsafe.Sizeof(atomix.Bool{})]byte

// guardSlots returns the number of T elements that cover at least one full
// cache line. Zero-sized element types need no guard.
func guardSlots[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return 0
	}
	return (CacheLineSize-1)/size + 1
}

// isPow2 reports whether n is a positive power of two.
func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// mustPow2 panics unless capacity is a positive power of two.
func mustPow2(capacity int) {
	if !isPow2(capacity) {
		panic("lfsync: capacity must be a power of 2")
	}
}
