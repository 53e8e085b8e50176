// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"sync"

	"github.com/stanzware/apix/poll"
)

// An Operation is one invocation of the underlying call: it either
// produces a value or fails. Operations are invoked strictly sequentially
// within a session, never concurrently.
type Operation[T any] func() (T, error)

// Do runs op under the retry policy in opts and blocks until the session
// settles. It returns the value of the first successful attempt, or the
// error of the final attempt once the budget is exhausted (or a RetryIf
// veto ends the session early). Exactly one outcome is produced per
// session, no matter how many attempts occur.
//
// When opts.MaxRetries is one, Do invokes op exactly once and forwards its
// outcome unchanged; no driver and no timer are created, so the call
// behaves identically to invoking op directly.
//
// Each call to Do owns a fresh polling session. Two concurrent calls never
// share timers, attempt counters, or any other state.
//
// Do panics if opts.MaxRetries is less than one, or if opts.MaxRetries is
// greater than one and opts.Timeouts is empty.
func Do[T any](op Operation[T], opts Options) (T, error) {
	if opts.MaxRetries < 1 {
		panic("apix/retry: MaxRetries must be positive")
	}

	if opts.MaxRetries == 1 {
		v, err := op()
		if opts.Notify != nil {
			opts.Notify(0, err)
		}
		return v, err
	}

	if len(opts.Timeouts) == 0 {
		panic("apix/retry: at least one timeout is required when MaxRetries > 1")
	}

	s := newSettle[T]()
	d := poll.New(opts.MaxRetries, opts.Timeouts, opts.UseLastTimeout, func(d *poll.Driver) {
		attempt := d.Attempt()
		v, err := op()
		if opts.Notify != nil {
			opts.Notify(attempt, err)
		}
		if err == nil {
			d.Stop()
			s.resolve(v)
			return
		}
		if d.ShouldStop() || (opts.RetryIf != nil && !opts.RetryIf(err)) {
			d.Stop()
			s.reject(err)
			return
		}
		if !d.ScheduleNext() {
			// Delay sequence exhausted without UseLastTimeout: the
			// session ends with the most recent failure.
			d.Stop()
			s.reject(err)
		}
	})
	d.Start()
	return s.wait()
}

// settle enforces the one-outcome-per-session contract structurally: the
// first resolve or reject wins, every later settle attempt is a no-op.
type settle[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newSettle[T any]() *settle[T] {
	return &settle[T]{done: make(chan struct{})}
}

func (s *settle[T]) resolve(v T) {
	s.once.Do(func() {
		s.val = v
		close(s.done)
	})
}

func (s *settle[T]) reject(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

func (s *settle[T]) wait() (T, error) {
	<-s.done
	return s.val, s.err
}
