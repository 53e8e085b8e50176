// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/stanzware/apix/call"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer. It must follow the contract documented on the standard
	// library http.Client.
	Do(r *http.Request) (*http.Response, error)
}

// An Executor issues exactly one request attempt for the given call
// parameters and returns either a parsed result or a failure. It performs
// no retrying and no timeout enforcement of its own; those are layered on
// top by Client, or by the retry and race packages directly.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Executor interface {
	Execute(ctx context.Context, p *call.Params) (*call.Result, error)
}

// The ExecutorFunc type is an adapter to allow the use of ordinary
// functions as executors.
type ExecutorFunc func(ctx context.Context, p *call.Params) (*call.Result, error)

// Execute calls f(ctx, p).
func (f ExecutorFunc) Execute(ctx context.Context, p *call.Params) (*call.Result, error) {
	return f(ctx, p)
}

// HTTPExecutor is the reference Executor. It derives one http.Request per
// attempt from the call parameters, issues it through the HTTPDoer,
// buffers the whole response body, and negotiates the payload by content
// type.
//
// A response with a non-2XX status is a failed attempt: Execute returns a
// *call.Error retaining the status, headers, and body.
type HTTPExecutor struct {
	// Doer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If Doer is nil, http.DefaultClient from the standard net/http
	// package is used.
	Doer HTTPDoer
}

// Execute issues one request attempt. The returned error is a *call.Error
// for non-2XX responses, or the transport's own error for requests that
// never produced a response.
func (x *HTTPExecutor) Execute(ctx context.Context, p *call.Params) (*call.Result, error) {
	r, err := p.ToRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := x.doer().Do(r)
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("apix: %s: reading body: %w", callOp(r), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &call.Error{
			Op:         callOp(r),
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}
	}

	return call.Negotiate(resp, body)
}

func (x *HTTPExecutor) doer() HTTPDoer {
	if x.Doer == nil {
		return http.DefaultClient
	}
	return x.Doer
}

func readBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}

func callOp(r *http.Request) string {
	return r.Method + " " + r.URL.String()
}
