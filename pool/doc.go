// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pool provides a fixed-size worker pool with a single shared job
// queue.
//
// # Lifecycle
//
//	Running  → Stopping → Stopped
//	 (Stop)     (all workers exited)
//
// The transition out of Running happens once, on the first Stop call.
//
//	p, err := pool.New(runtime.NumCPU())
//	if err != nil {
//	    return err
//	}
//	for _, item := range items {
//	    p.Submit(func() { process(item) })
//	}
//	p.Wait()  // queue drained, nothing running
//	p.Close() // Stop + Join
//
// # Shutdown Policy
//
// Stop discards jobs that have not started and lets running jobs finish.
// Submit after Stop returns [ErrStopped]. A job is therefore always either
// executed, rejected with ErrStopped, or counted in Stats().Dropped. Callers
// that need every job executed call Wait before Stop.
//
// # Failures
//
// A panicking job is recovered on its worker, logged at error level, counted
// in Stats().Panicked and passed to the optional panic handler. The worker
// continues with the next job. A job that calls runtime.Goexit ends its
// worker goroutine; it is counted in Stats().Aborted and the pool starts a
// replacement worker.
//
// # No Cancellation
//
// Jobs are plain func() values. The pool has no per-job cancellation and no
// timeout; close over a context.Context when a job needs one.
package pool
