// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package apix provides a small client-side facade for calling a backend API,
with retry and per-attempt timeout orchestration composed in.

Create a Client to begin making calls.

	client := &apix.Client{}
	res, err := client.Get(ctx, "https://api.example.com/things")
	...
	res, err := client.Post(ctx, "https://api.example.com/things", "",
		map[string]any{"name": "thing"})

A zero-value Client issues requests through http.DefaultClient and applies
the built-in defaults from package config: three attempts per call, half a
second between them, three seconds per attempt. Inject a loaded
configuration to change the defaults process-wide:

	cfg, err := config.Load() // APIX_* environment overrides
	...
	client := &apix.Client{Config: cfg}

For control over how individual requests are issued, supply a custom
Executor. The bundled HTTPExecutor issues one request per attempt through
any HTTPDoer (such as a tuned http.Client) and negotiates the response
payload by content type; any other single-shot issuing strategy can be
plugged in behind the same interface:

	client := &apix.Client{
		Executor: &apix.HTTPExecutor{Doer: &http.Client{...}},
	}

To observe attempt-level activity, attach a zerolog logger; every session
is tagged with a generated id:

	logger := zerolog.New(os.Stderr)
	client := &apix.Client{Logger: &logger}

The orchestration primitives are exported on their own and compose freely
with any operation, HTTP or otherwise: package retry drives the attempt
loop, package race bounds one pending operation with a deadline, and
package poll is the timer state machine underneath retry.
*/
package apix
