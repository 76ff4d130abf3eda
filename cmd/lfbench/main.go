// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command lfbench measures the spin locks, SPSC queues, and worker pool of
// code.hybscloud.com/lfsync.
//
// Usage:
//
//	lfbench [flags] locks|spsc|pool
//
// Results go to stdout as CSV rows "threads,time_ms,variant", or as a JSON
// array with --json. Progress is logged to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/sugawarayuuta/sonnet"
)

// config holds the parsed command line.
type config struct {
	threads int
	iters   int
	items   int
	jobs    int
	json    bool
	pin     bool
	verbose bool
}

// Result is one measurement.
type Result struct {
	Threads int     `json:"threads"`
	TimeMS  float64 `json:"time_ms"`
	Variant string  `json:"variant"`
}

var errUsage = errors.New("usage: lfbench [flags] locks|spsc|pool")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "lfbench:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cfg config
	fs := pflag.NewFlagSet("lfbench", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVarP(&cfg.threads, "threads", "t", runtime.GOMAXPROCS(0), "maximum goroutine count; runs 1..threads")
	fs.IntVarP(&cfg.iters, "iters", "n", 100000, "lock/unlock rounds per goroutine")
	fs.IntVar(&cfg.items, "items", 1000000, "values moved through each SPSC queue")
	fs.IntVar(&cfg.jobs, "jobs", 100000, "jobs submitted per pool run")
	fs.BoolVar(&cfg.json, "json", false, "write results as JSON instead of CSV")
	fs.BoolVar(&cfg.pin, "pin", false, "pin benchmark goroutines to CPU cores")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log every measurement")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	if cfg.threads < 1 || cfg.iters < 1 || cfg.items < 1 || cfg.jobs < 1 {
		return fmt.Errorf("threads, iters, items, and jobs must be positive")
	}

	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Str("suite", fs.Arg(0)).Logger()

	var (
		results []Result
		err     error
	)
	start := time.Now()
	switch fs.Arg(0) {
	case "locks":
		results, err = benchLocks(ctx, cfg, logger)
	case "spsc":
		results, err = benchSPSC(ctx, cfg, logger)
	case "pool":
		results, err = benchPool(ctx, cfg, logger)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	logger.Info().Int("results", len(results)).Dur("elapsed", time.Since(start)).Msg("done")

	return writeResults(stdout, results, cfg.json)
}

func writeResults(w io.Writer, results []Result, asJSON bool) error {
	if asJSON {
		b, err := sonnet.Marshal(results)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
	if _, err := fmt.Fprintln(w, "threads,time_ms,variant"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%d,%.3f,%s\n", r.Threads, r.TimeMS, r.Variant); err != nil {
			return err
		}
	}
	return nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
