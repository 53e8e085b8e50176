// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package poll

import (
	"sync"
	"time"
)

// A State is the lifecycle state of a Driver.
type State int

const (
	// Idle is the state of a Driver that has not been started.
	Idle State = iota
	// Running means the callback for the current attempt is executing,
	// or is about to execute.
	Running
	// Scheduled means a timer is armed for the next attempt and no
	// callback is executing.
	Scheduled
	// Stopped is the terminal state. No callback runs, and no timer
	// fires, after a Driver is Stopped.
	Stopped
)

var stateNames = []string{
	"Idle",
	"Running",
	"Scheduled",
	"Stopped",
}

// String returns the name of the state.
func (s State) String() string {
	return stateNames[int(s)]
}

// A Callback is invoked once per attempt. The driver passes itself to the
// callback so the callback can control the session: Stop ends the session,
// ScheduleNext arms the next attempt, and ShouldStop reports whether the
// current attempt is the last one the budget allows.
//
// A callback that neither stops the driver nor schedules another attempt
// leaves the driver in the Running state; the session then makes no further
// progress. Callbacks should always do one or the other.
type Callback func(d *Driver)

// A Driver sequences repeated invocations of a callback with a delay
// between consecutive attempts. It owns all mutable state for one polling
// session and must not be shared between sessions.
//
// A Driver is safe for concurrent use by multiple goroutines, although in
// the typical arrangement only the callback and one controlling goroutine
// ever touch it.
type Driver struct {
	mu      sync.Mutex
	state   State
	attempt int
	timer   *time.Timer
	cb      Callback
	budget  int
	delays  []time.Duration
	useLast bool
}

// New constructs a Driver that allows up to budget attempts of cb, waiting
// delays[n] before attempt n+1. A single-element delays slice is a scalar
// delay: the same duration separates every pair of consecutive attempts,
// independent of useLast. For a multi-element sequence, useLast decides
// what happens when the attempt count outruns it: when true, the final
// entry is reused; when false, ScheduleNext fails once the sequence is
// exhausted and the driver stops.
//
// New panics if budget is less than one or cb is nil.
func New(budget int, delays []time.Duration, useLast bool, cb Callback) *Driver {
	if budget < 1 {
		panic("apix/poll: budget must be positive")
	}
	if cb == nil {
		panic("apix/poll: nil callback")
	}
	delays2 := make([]time.Duration, len(delays))
	copy(delays2, delays)
	return &Driver{
		cb:      cb,
		budget:  budget,
		delays:  delays2,
		useLast: useLast,
	}
}

// Start transitions the driver from Idle to Running and invokes the
// callback synchronously for attempt zero. There is no initial delay.
//
// Start panics if the driver was already started.
func (d *Driver) Start() {
	d.mu.Lock()
	if d.state != Idle {
		d.mu.Unlock()
		panic("apix/poll: driver already started")
	}
	d.state = Running
	d.mu.Unlock()
	d.cb(d)
}

// ScheduleNext arms a timer for the next attempt using the delay for the
// current attempt index, then increments the attempt counter. When the
// timer fires, the callback is invoked for the new attempt.
//
// ScheduleNext returns false, and the driver stops, if no delay can be
// selected for the current attempt (the delays sequence is exhausted and
// the driver was not built with useLast). It also returns false if the
// driver is not currently Running, which happens if the session was
// stopped from another goroutine mid-attempt.
func (d *Driver) ScheduleNext() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Running {
		return false
	}
	delay, ok := d.delayFor(d.attempt)
	if !ok {
		d.state = Stopped
		return false
	}
	d.attempt++
	d.state = Scheduled
	d.timer = time.AfterFunc(delay, d.fire)
	return true
}

// Stop ends the session. Any pending timer is cancelled, so an attempt that
// was scheduled but has not yet fired will never run. Stop is idempotent.
//
// Stop does not interrupt a callback that is already executing; it only
// prevents future attempts.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.state = Stopped
}

// ShouldStop reports whether the current attempt is the last one the
// budget allows, in other words whether scheduling another attempt would
// exceed the budget.
func (d *Driver) ShouldStop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempt >= d.budget-1
}

// Attempt returns the zero-based number of the current attempt.
func (d *Driver) Attempt() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempt
}

// RemainingAttempts returns the number of further attempts the budget
// allows after the current one.
func (d *Driver) RemainingAttempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.budget - 1 - d.attempt
	if n < 0 {
		return 0
	}
	return n
}

// State returns the current lifecycle state of the driver.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) fire() {
	d.mu.Lock()
	if d.state != Scheduled {
		// Stopped after the timer fired but before we got the lock.
		d.mu.Unlock()
		return
	}
	d.state = Running
	d.timer = nil
	d.mu.Unlock()
	d.cb(d)
}

func (d *Driver) delayFor(attempt int) (time.Duration, bool) {
	if attempt < len(d.delays) {
		return d.delays[attempt], true
	}
	// A single-element sequence is a scalar delay: it applies to every
	// attempt and is never exhausted, regardless of useLast.
	if len(d.delays) == 1 {
		return d.delays[0], true
	}
	if d.useLast && len(d.delays) > 0 {
		return d.delays[len(d.delays)-1], true
	}
	return 0, false
}
