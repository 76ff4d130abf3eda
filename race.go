// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lfsync

// RaceEnabled reports whether the binary was built with -race.
// Tests consult it to skip stress runs of the lock-free queue and the spin
// locks, which order plain memory through atomix acquire/release the
// detector cannot see.
const RaceEnabled = true
