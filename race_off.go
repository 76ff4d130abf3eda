// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

package lfsync

// RaceEnabled reports whether the binary was built with -race.
// Without it, lock and queue stress tests also cover the atomix-ordered
// variants.
const RaceEnabled = false
