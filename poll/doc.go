// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package poll provides the timer and state machine primitive that sequences
delayed re-invocations of a callback without blocking the caller.

A Driver owns the state of one polling session: the current attempt number,
the pending timer (if any), and the terminal flag. The callback it drives is
handed the driver itself, so the callback can stop the session, schedule the
next attempt, or ask whether the attempt budget allows another try:

	d := poll.New(3, []time.Duration{100 * time.Millisecond}, false,
		func(d *poll.Driver) {
			err := doWork(d.Attempt())
			if err == nil || d.ShouldStop() {
				d.Stop()
				return
			}
			d.ScheduleNext()
		})
	d.Start()

Attempts within one session are strictly sequential: the next attempt is only
armed by ScheduleNext, which the callback calls after the current attempt's
outcome is known, and at most one timer is pending at any time. A Driver is
never shared between sessions; create a new one for each logical call.

Package poll sequences delay-and-retry timers. It is unrelated to status
polling of a remote resource.
*/
package poll
