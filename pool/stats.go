// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

// Stats is a snapshot of pool counters.
//
// Counters are read individually, so a snapshot taken while jobs are in
// flight may be slightly inconsistent (for example Completed+Panicked can
// briefly lag a job that already returned).
type Stats struct {
	Workers   int
	Submitted int64 // Accepted by Submit
	Completed int64 // Returned normally
	Panicked  int64 // Recovered from a panic
	Aborted   int64 // Ended its worker goroutine with runtime.Goexit
	Dropped   int64 // Discarded by Stop before starting
	Pending   int   // Queued, not yet started
	Running   int   // Currently executing
}

// Stats returns a snapshot of the pool's counters.
func (p *Fixed) Stats() Stats {
	p.mu.Lock()
	pending, running := p.jobs.Length(), p.active
	p.mu.Unlock()

	return Stats{
		Workers:   p.workers,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
		Aborted:   p.aborted.Load(),
		Dropped:   p.dropped.Load(),
		Pending:   pending,
		Running:   running,
	}
}
