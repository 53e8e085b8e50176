// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/stanzware/apix/transient"
)

// Options configures one retry session.
//
// The zero value is not valid: MaxRetries must be at least one, and a
// session that may retry (MaxRetries > 1) needs at least one delay in
// Timeouts. Defaults typically come from an injected config.Config rather
// than from literals scattered through calling code.
type Options struct {
	// MaxRetries bounds the total number of attempts in the session.
	// One means "call once, never retry".
	MaxRetries int

	// Timeouts is the ordered sequence of delays between consecutive
	// attempts: Timeouts[n] elapses between attempt n and attempt n+1.
	// A single-element slice (see Fixed) applies the same delay before
	// every retry.
	Timeouts []time.Duration

	// UseLastTimeout controls what happens when the attempt count
	// outruns a multi-element Timeouts sequence: when true, the final
	// entry is reused for every further delay; when false, the session
	// terminates with the most recent failure once the sequence is
	// exhausted. A single-element Timeouts is a scalar delay and is
	// never exhausted, so UseLastTimeout has no effect on it.
	UseLastTimeout bool

	// RetryIf, when non-nil, is consulted after a failed attempt that
	// the budget would otherwise allow to be retried. Returning false
	// ends the session with that failure. A nil RetryIf treats every
	// failure as retryable, which is the default this module preserves.
	RetryIf func(err error) bool

	// Notify, when non-nil, is invoked after every attempt with the
	// zero-based attempt number and the attempt's error (nil on
	// success). It is an instrumentation hook; it cannot influence the
	// session.
	Notify func(attempt int, err error)
}

// Fixed returns a delay sequence that applies d before every retry. It is
// the scalar form of Options.Timeouts.
func Fixed(d time.Duration) []time.Duration {
	return []time.Duration{d}
}

// TransientOnly is a RetryIf predicate that only permits retries of
// failures transient.Categorize considers transient: timeouts, connection
// refusals, and connection resets.
//
// It is an opt-in extension point. Do's default, with a nil RetryIf,
// remains "every failure is retryable up to the budget".
func TransientOnly(err error) bool {
	return transient.Categorize(err) != transient.Not
}
