// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"runtime/debug"
	"sync"

	"code.hybscloud.com/atomix"
	"github.com/eapache/queue"
	"github.com/rs/zerolog"
)

// State is the lifecycle state of a Fixed pool.
type State uint32

const (
	// Running accepts and executes jobs.
	Running State = iota
	// Stopping rejects new jobs; jobs already executing finish.
	Stopping
	// Stopped means every worker has exited.
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Fixed is a fixed-size worker pool with one shared FIFO job queue.
//
// Workers are started by New. An idle worker parks on a condition variable
// until a job is submitted or the pool is stopped; it then dequeues exactly
// one job and runs it outside the lock. A worker is replaced only when a job
// ends its goroutine with runtime.Goexit.
//
// Jobs are dequeued in submission order. With more than one worker they run
// in parallel, so completion order is not defined.
type Fixed struct {
	logger       zerolog.Logger
	panicHandler func(any)
	workers      int

	mu     sync.Locker
	work   *sync.Cond // queue non-empty or stop requested
	idle   *sync.Cond // queue empty and nothing running, or stop requested
	jobs   *queue.Queue
	active int

	stop   atomix.Bool
	exited atomix.Int64
	wg     sync.WaitGroup

	submitted atomix.Int64
	completed atomix.Int64
	panicked  atomix.Int64
	aborted   atomix.Int64
	dropped   atomix.Int64
}

// New creates a pool and starts workers goroutines immediately.
// Returns an error wrapping ErrInvalidConfig if workers < 1.
//
// Example:
//
//	p, err := pool.New(4, pool.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
func New(workers int, opts ...Option) (*Fixed, error) {
	if workers < 1 {
		return nil, errInvalidConfig("workers must be >= 1, got %d", workers)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.locker == nil {
		cfg.locker = new(sync.Mutex)
	}

	p := &Fixed{
		logger:       cfg.logger.With().Str("pool", cfg.name).Logger(),
		panicHandler: cfg.panicHandler,
		workers:      workers,
		mu:           cfg.locker,
		jobs:         queue.New(),
	}
	p.work = sync.NewCond(p.mu)
	p.idle = sync.NewCond(p.mu)

	p.wg.Add(workers)
	for id := range workers {
		go p.worker(id)
	}
	return p, nil
}

// Submit appends job to the queue and wakes one idle worker.
//
// Returns ErrNilJob for a nil job and ErrStopped once Stop has been called.
func (p *Fixed) Submit(job func()) error {
	if job == nil {
		return ErrNilJob
	}

	p.mu.Lock()
	if p.stop.Load() {
		p.mu.Unlock()
		return ErrStopped
	}
	p.jobs.Add(job)
	p.submitted.Add(1)
	p.mu.Unlock()

	p.work.Signal()
	return nil
}

// Stop requests shutdown and wakes every worker. It does not wait.
//
// Jobs still queued are discarded and counted in Stats().Dropped; jobs
// already executing run to completion. Stop is idempotent.
func (p *Fixed) Stop() {
	p.mu.Lock()
	if p.stop.Load() {
		p.mu.Unlock()
		return
	}
	p.stop.StoreRelease(true)
	dropped := p.jobs.Length()
	p.jobs = queue.New()
	p.dropped.Add(int64(dropped))
	p.mu.Unlock()

	p.work.Broadcast()
	p.idle.Broadcast()
	p.logger.Debug().Int("dropped", dropped).Msg("stop requested")
}

// Wait blocks until no job is queued or running.
// It returns early once Stop has been called; use Join to wait for the
// workers themselves.
func (p *Fixed) Wait() {
	p.mu.Lock()
	for !p.stop.Load() && (p.jobs.Length() > 0 || p.active > 0) {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Join blocks until every worker has exited.
// Without a prior or concurrent Stop it blocks forever.
func (p *Fixed) Join() {
	p.wg.Wait()
}

// Close stops the pool and waits for the workers to exit.
func (p *Fixed) Close() {
	p.Stop()
	p.Join()
}

// State reports the pool's lifecycle state.
func (p *Fixed) State() State {
	switch {
	case !p.stop.LoadAcquire():
		return Running
	case p.exited.Load() < int64(p.workers):
		return Stopping
	default:
		return Stopped
	}
}

// Workers returns the number of workers.
func (p *Fixed) Workers() int {
	return p.workers
}

func (p *Fixed) worker(id int) {
	exited := false
	defer func() {
		if !exited && !p.stop.LoadAcquire() {
			// A job called runtime.Goexit on this goroutine.
			p.wg.Add(1)
			go p.worker(id)
			p.wg.Done()
			return
		}
		p.exit(id)
	}()
	p.logger.Debug().Int("worker", id).Msg("worker started")

	for {
		p.mu.Lock()
		for p.jobs.Length() == 0 && !p.stop.Load() {
			p.work.Wait()
		}
		if p.stop.Load() {
			p.mu.Unlock()
			exited = true
			return
		}
		job := p.jobs.Remove().(func())
		p.active++
		p.mu.Unlock()

		p.run(id, job)
	}
}

// run executes one job. A panic is recovered so the worker survives it; a
// runtime.Goexit cannot be stopped, but is counted and logged before the
// goroutine unwinds.
func (p *Fixed) run(id int, job func()) {
	returned := false
	defer p.done()
	defer func() {
		r := recover()
		switch {
		case returned:
			p.completed.Add(1)
		case r != nil:
			p.panicked.Add(1)
			p.logger.Error().
				Err(errPanic(id, r)).
				Int("worker", id).
				Str("stack", string(debug.Stack())).
				Msg("job panicked")
			if p.panicHandler != nil {
				p.panicHandler(r)
			}
		default:
			p.aborted.Add(1)
			p.logger.Error().
				Err(errAborted(id)).
				Int("worker", id).
				Msg("job exited its goroutine")
		}
	}()
	job()
	returned = true
}

// done marks one job as finished and wakes Wait when the pool went idle.
func (p *Fixed) done() {
	p.mu.Lock()
	p.active--
	if p.active == 0 && p.jobs.Length() == 0 {
		p.idle.Broadcast()
	}
	p.mu.Unlock()
}

func (p *Fixed) exit(id int) {
	p.logger.Debug().Int("worker", id).Msg("worker stopped")
	if p.exited.AddAcqRel(1) == int64(p.workers) {
		p.logger.Debug().Msg("pool stopped")
	}
	p.wg.Done()
}
