// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfsync

import "code.hybscloud.com/iox"

// ErrWouldBlock is returned by Enqueue on a full queue and by Dequeue on an
// empty one.
//
// It is a routine outcome, not a failure: the single producer or consumer is
// expected to retry later or move on. TryPush and TryPop report the same
// condition as false.
//
// This is an alias for [iox.ErrWouldBlock], so iox backoff helpers and
// classifiers work on it directly:
//
//	backoff := iox.Backoff{}
//	for q.Enqueue(&item) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates a full or empty queue.
// Wrapped errors are recognised.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or a would-block signal.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// wouldBlock maps a Try* result to the error form.
func wouldBlock(ok bool) error {
	if ok {
		return nil
	}
	return ErrWouldBlock
}
