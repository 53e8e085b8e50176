// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category describes whether, and why, a failure is considered transient
// from the perspective of completing one request attempt. Any category
// other than Not means a retry has some prospect of success.
type Category int

const (
	// Not is the category of nil errors and of errors a retry is very
	// unlikely to cure.
	Not Category = iota
	// Timeout is the category of client-side timeouts, including the
	// deadline failures produced by package race. The remote end may
	// simply be slow right now.
	Timeout
	// ConnRefused is the category of connection refusals
	// (ECONNREFUSED). The service may be mid-restart and not yet
	// listening on its port.
	ConnRefused
	// ConnReset is the category of connection resets (ECONNRESET),
	// which commonly indicate a load balancer or a prematurely
	// recycled backend, both good retry candidates.
	ConnReset
)

// Categorize returns the transience category of err, inspecting wrapped
// causes as well as err itself. An error exposing a Timeout() bool method
// that reports true is classified as Timeout before the errno checks run.
//
// Categorize deliberately ignores the Temporary() convention, whose
// semantics are too loose to base a retry decision on.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var t interface{ Timeout() bool }
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		}
	}

	return Not
}
