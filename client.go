// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"context"
	"net/http"
	urlpkg "net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stanzware/apix/call"
	"github.com/stanzware/apix/config"
	"github.com/stanzware/apix/race"
	"github.com/stanzware/apix/retry"
)

// A Caller executes one logical backend call, however many attempts that
// takes. Client implements Caller.
type Caller interface {
	Call(ctx context.Context, p *call.Params) (*call.Result, error)
}

// A Client is the request facade: it turns one logical backend call into a
// retrying, timeout-bounded session while the caller awaits a single
// outcome. Its zero value is a valid configuration.
//
// The zero value client issues requests through http.DefaultClient, uses
// config.Default for retry and timeout settings, and logs nothing.
//
// Each call owns its own session: attempt counters, timers, and session
// ids are never shared between calls, so a Client is safe for concurrent
// use by multiple goroutines.
//
// Within one session the per-attempt timeout and the retry policy compose
// as race-inside-retry: every attempt races the executor against the
// configured call timeout, and a timeout counts as a failed attempt like
// any other. Callers wanting a different composition (for example one
// deadline over the whole session) can use the retry and race packages
// directly.
type Client struct {
	// Executor issues individual request attempts.
	//
	// If Executor is nil, an HTTPExecutor over http.DefaultClient is
	// used.
	Executor Executor

	// Config supplies the retry policy and per-attempt timeout. It is
	// an injected object, typically built once at startup via
	// config.Load.
	//
	// If Config is nil, config.Default() is used.
	Config *config.Config

	// Logger, when non-nil, receives attempt-level and session-level
	// events. Attempt failures log at warn, successes and session
	// bookkeeping at debug.
	Logger *zerolog.Logger
}

// Call executes one logical backend call under the client's retry policy
// and per-attempt timeout, blocking until the session settles. It returns
// the parsed result of the first successful attempt, or the failure of the
// final attempt once the retry budget is exhausted.
//
// Intermediate attempt failures are invisible to the caller except through
// the Logger; only the terminal outcome is returned. An attempt that
// outlives the configured call timeout fails with a *race.TimeoutError but
// is not interrupted; the underlying request runs to completion in the
// background and its outcome is discarded.
func (c *Client) Call(ctx context.Context, p *call.Params) (*call.Result, error) {
	cfg := c.config()
	ex := c.executor()
	log := c.sessionLogger(p)

	opts := cfg.RetryOptions()
	opts.Notify = func(attempt int, err error) {
		if err != nil {
			log.Warn().Int("attempt", attempt).Err(err).Msg("attempt failed")
		} else {
			log.Debug().Int("attempt", attempt).Msg("attempt succeeded")
		}
	}

	res, err := retry.Do(func() (*call.Result, error) {
		return race.Run(func() (*call.Result, error) {
			return ex.Execute(ctx, p)
		}, cfg.Call.Timeout)
	}, opts)
	if err != nil {
		log.Warn().Err(err).Msg("call failed")
		return nil, err
	}
	log.Debug().Int("status", res.StatusCode).Msg("call settled")
	return res, nil
}

// Get issues a GET for the specified URL, following the same session
// policies as Call.
func (c *Client) Get(ctx context.Context, url string) (*call.Result, error) {
	return c.Call(ctx, &call.Params{Method: http.MethodGet, URL: url})
}

// Post issues a POST to the specified URL, following the same session
// policies as Call.
//
// The body may be any of the types accepted by call.BodyBytes. When
// contentType is empty, the Content-Type implied by the body coercion (if
// any) is used.
func (c *Client) Post(ctx context.Context, url, contentType string, body any) (*call.Result, error) {
	p := &call.Params{Method: http.MethodPost, URL: url, Body: body}
	if contentType != "" {
		p.Header = http.Header{"Content-Type": []string{contentType}}
	}
	return c.Call(ctx, p)
}

// PostForm issues a POST to the specified URL with data's keys and values
// URL-encoded as the request body, following the same session policies as
// Call. The Content-Type header is set to
// application/x-www-form-urlencoded.
func (c *Client) PostForm(ctx context.Context, url string, data urlpkg.Values) (*call.Result, error) {
	return c.Call(ctx, &call.Params{Method: http.MethodPost, URL: url, Body: data})
}

func (c *Client) executor() Executor {
	if c.Executor == nil {
		return &HTTPExecutor{}
	}
	return c.Executor
}

func (c *Client) config() *config.Config {
	if c.Config == nil {
		return config.Default()
	}
	return c.Config
}

func (c *Client) sessionLogger(p *call.Params) zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	method := p.Method
	if method == "" {
		method = http.MethodGet
	}
	return c.Logger.With().
		Str("session", uuid.NewString()).
		Str("method", method).
		Str("url", p.URL).
		Logger()
}
