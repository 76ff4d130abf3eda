// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/lfsync"
	"code.hybscloud.com/lfsync/internal/affinity"
	"code.hybscloud.com/lfsync/pool"
)

type lockCase struct {
	name string
	new  func() sync.Locker
}

var lockCases = []lockCase{
	{"mutex", func() sync.Locker { return new(sync.Mutex) }},
	{"flag", func() sync.Locker { return new(lfsync.FlagLock) }},
	{"cas", func() sync.Locker { return new(lfsync.CASLock) }},
	{"padded_flag", func() sync.Locker { return new(lfsync.PaddedFlagLock) }},
	{"padded_cas", func() sync.Locker { return new(lfsync.PaddedCASLock) }},
	{"ttas", func() sync.Locker { return new(lfsync.TTASLock) }},
	{"exchange_ttas", func() sync.Locker { return new(lfsync.ExchangeTTASLock) }},
	{"ttas_spin", func() sync.Locker { return &lfsync.TTASLock{Backoff: lfsync.Backoff{Spins: 64}} }},
}

// work burns a few cycles outside and inside the critical section so the
// lock is not the only thing the goroutines do.
//
//go:noinline
func work(x uint64) uint64 {
	for range 16 {
		x = x*6364136223846793005 + 1442695040888963407
	}
	return x
}

// pin binds the calling goroutine to the core for slot when enabled.
// The returned func undoes it.
func pin(enabled bool, slot int, logger zerolog.Logger) func() {
	if !enabled {
		return func() {}
	}
	cpu := affinity.CPU(slot)
	if err := affinity.Pin(cpu); err != nil {
		logger.Warn().Err(err).Int("cpu", cpu).Msg("pin failed")
	}
	return affinity.Unpin
}

// benchLocks runs every lock variant for 1..cfg.threads goroutines, each
// doing cfg.iters lock/unlock rounds around a shared counter.
func benchLocks(ctx context.Context, cfg config, logger zerolog.Logger) ([]Result, error) {
	var results []Result
	for threads := 1; threads <= cfg.threads; threads++ {
		for _, c := range lockCases {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			mu := c.new()
			var counter int
			var sink atomix.Uint64

			start := time.Now()
			var g errgroup.Group
			for id := range threads {
				g.Go(func() error {
					defer pin(cfg.pin, id, logger)()
					x := uint64(id)
					for range cfg.iters {
						x = work(x)
						mu.Lock()
						counter++
						x = work(x)
						mu.Unlock()
						x = work(x)
					}
					sink.Add(x)
					return nil
				})
			}
			_ = g.Wait()
			elapsed := time.Since(start)

			if want := threads * cfg.iters; counter != want {
				return results, fmt.Errorf("%s: counter %d, want %d", c.name, counter, want)
			}
			r := Result{Threads: threads, TimeMS: millis(elapsed), Variant: c.name}
			logger.Debug().Int("threads", threads).Str("variant", c.name).Float64("time_ms", r.TimeMS).Msg("locks")
			results = append(results, r)
		}
	}
	return results, nil
}

type queueCase struct {
	name string
	new  func(capacity int) lfsync.Queue[uint64]
}

var queueCases = []queueCase{
	{"spsc", func(n int) lfsync.Queue[uint64] { return lfsync.NewSPSC[uint64](n) }},
	{"spsc_mutex", func(n int) lfsync.Queue[uint64] { return lfsync.NewSPSCMutex[uint64](n) }},
	{"spsc_ttas", func(n int) lfsync.Queue[uint64] {
		return lfsync.NewSPSCLocked[uint64](n, new(lfsync.TTASLock))
	}},
}

const queueCapacity = 1024

// benchSPSC moves cfg.items values through each queue variant from one
// producer to one consumer, checking order on the consumer side.
func benchSPSC(ctx context.Context, cfg config, logger zerolog.Logger) ([]Result, error) {
	var results []Result
	for _, c := range queueCases {
		q := c.new(queueCapacity)
		items := uint64(cfg.items)

		start := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer pin(cfg.pin, 0, logger)()
			backoff := iox.Backoff{}
			for i := range items {
				for !q.TryPush(i) {
					if err := gctx.Err(); err != nil {
						return err
					}
					backoff.Wait()
				}
				backoff.Reset()
			}
			return nil
		})
		g.Go(func() error {
			defer pin(cfg.pin, 1, logger)()
			backoff := iox.Backoff{}
			var v uint64
			for want := uint64(0); want < items; {
				if !q.TryPop(&v) {
					if err := gctx.Err(); err != nil {
						return err
					}
					backoff.Wait()
					continue
				}
				if v != want {
					return fmt.Errorf("%s: popped %d, want %d", c.name, v, want)
				}
				want++
				backoff.Reset()
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return results, err
		}
		r := Result{Threads: 2, TimeMS: millis(time.Since(start)), Variant: c.name}
		logger.Debug().Str("variant", c.name).Float64("time_ms", r.TimeMS).Msg("spsc")
		results = append(results, r)
	}
	return results, nil
}

// benchPool submits cfg.jobs no-op jobs to a pool of 1..cfg.threads workers
// and waits for all of them, once with the default mutex guard and once
// with a TTAS spin lock guarding the job queue.
func benchPool(ctx context.Context, cfg config, logger zerolog.Logger) ([]Result, error) {
	guards := []struct {
		name string
		new  func() sync.Locker
	}{
		{"pool_mutex", func() sync.Locker { return new(sync.Mutex) }},
		{"pool_ttas", func() sync.Locker { return new(lfsync.TTASLock) }},
	}

	var results []Result
	for workers := 1; workers <= cfg.threads; workers++ {
		for _, guard := range guards {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			p, err := pool.New(workers,
				pool.WithName(guard.name),
				pool.WithLogger(logger),
				pool.WithLocker(guard.new()),
			)
			if err != nil {
				return results, err
			}

			var done atomix.Int64
			start := time.Now()
			for range cfg.jobs {
				if err := p.Submit(func() { done.Add(1) }); err != nil {
					p.Close()
					return results, err
				}
			}
			p.Wait()
			elapsed := time.Since(start)
			p.Close()

			if n := done.Load(); n != int64(cfg.jobs) {
				return results, fmt.Errorf("%s: %d of %d jobs ran", guard.name, n, cfg.jobs)
			}
			r := Result{Threads: workers, TimeMS: millis(elapsed), Variant: guard.name}
			logger.Debug().Int("workers", workers).Str("variant", guard.name).Float64("time_ms", r.TimeMS).Msg("pool")
			results = append(results, r)
		}
	}
	return results, nil
}
