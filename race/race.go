// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"fmt"
	"time"
)

// DefaultTimeout is the deadline Run applies when the caller does not
// supply a positive duration.
const DefaultTimeout = 3 * time.Second

// A TimeoutError is the failure produced when the timer wins the race. It
// is never produced by the operation itself, so callers can distinguish a
// deadline expiry from the operation's own failure kinds.
type TimeoutError struct {
	// After is the deadline that elapsed.
	After time.Duration
}

// Error returns a description of the elapsed deadline.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("apix/race: operation timed out after %s", e.After)
}

// Timeout reports true. It exists so that generic timeout detection of the
// net.Error variety, and transient.Categorize, classify the error as a
// timeout.
func (e *TimeoutError) Timeout() bool {
	return true
}

type outcome[T any] struct {
	val T
	err error
}

// Run races op against a timer of duration d and returns whichever outcome
// settles first. If d is not positive, DefaultTimeout is used.
//
// If the timer fires before op settles, Run returns a *TimeoutError. The
// losing operation is NOT cancelled: it keeps running in its own goroutine
// until it finishes, and its outcome is discarded. Callers that need the
// underlying work interrupted must arrange cancellation themselves, for
// example through a context honored by op.
//
// If op settles first, its value and error are returned verbatim; the
// abandoned timer cannot affect the settled outcome.
func Run[T any](op func() (T, error), d time.Duration) (T, error) {
	if d <= 0 {
		d = DefaultTimeout
	}

	// Buffered so the losing operation can deliver and be collected
	// rather than leak blocked on the send.
	ch := make(chan outcome[T], 1)
	go func() {
		v, err := op()
		ch <- outcome[T]{val: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case o := <-ch:
		return o.val, o.err
	case <-timer.C:
		var zero T
		return zero, &TimeoutError{After: d}
	}
}
