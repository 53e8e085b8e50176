// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package race bounds a single pending operation with a deadline by racing it
against a timer.

	result, err := race.Run(func() (*call.Result, error) {
		return ex.Execute(ctx, params)
	}, 2*time.Second)

Whichever side settles first determines the outcome. If the timer wins, Run
returns a *TimeoutError, which is distinguishable from the operation's own
failures via errors.As or its Timeout method. If the operation wins, its
outcome is forwarded verbatim and the timer is discarded.

Run is orthogonal to the retry scheduler in package retry: a timeout-bounded
operation can be retried, or a retrying session can be bounded as a whole.
Both compositions are supported; neither is implied.
*/
package race
