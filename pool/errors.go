// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import "fmt"

var (
	// ErrStopped is returned by Submit once Stop has been called.
	// The rejected job is not queued and will never run.
	ErrStopped = &Error{msg: "pool is stopped"}

	// ErrNilJob is returned by Submit for a nil job.
	ErrNilJob = &Error{msg: "job is nil"}

	// ErrInvalidConfig is wrapped by the error New returns for a bad
	// worker count or option.
	ErrInvalidConfig = &Error{msg: "invalid config"}
)

// Error is an error reported by a Fixed pool.
//
// It supports errors.Is and errors.As through Unwrap.
type Error struct {
	msg string
	err error
}

// Error returns the message, including the underlying error if any.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("pool: %s: %v", e.msg, e.err)
	}
	return "pool: " + e.msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

func errInvalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// errPanic describes a recovered job panic.
// If the panic value is an error it becomes the underlying error.
func errPanic(worker int, r any) error {
	e := &Error{msg: fmt.Sprintf("worker %d: job panicked", worker)}
	if err, ok := r.(error); ok {
		e.err = err
	} else {
		e.err = fmt.Errorf("%v", r)
	}
	return e
}

func errAborted(worker int) error {
	return &Error{msg: fmt.Sprintf("worker %d: job called runtime.Goexit", worker)}
}
