// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package retry turns a single-shot operation into a retrying one.

Do invokes an operation up to Options.MaxRetries times, waiting the
configured delay between consecutive attempts, and returns exactly one
outcome for the whole session: the first success, or the failure of the
final attempt.

	res, err := retry.Do(func() (*call.Result, error) {
		return ex.Execute(ctx, params)
	}, retry.Options{
		MaxRetries:     3,
		Timeouts:       []time.Duration{100 * time.Millisecond, 200 * time.Millisecond},
		UseLastTimeout: true,
	})

The caller observes one result regardless of how many attempts were made;
intermediate failures are only visible through the Notify hook. Every
failure is retryable by default, bounded only by the attempt budget. To
veto retries for particular failure kinds, set Options.RetryIf; see
TransientOnly for a ready-made predicate.

The delay-and-reinvoke mechanics live in package poll; Do owns the
session-level decisions (stop on success, stop on exhausted budget, stop on
a non-retryable failure) and guarantees a single settle per session.
*/
package retry
