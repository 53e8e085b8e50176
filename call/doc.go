// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package call defines the value types crossing the executor boundary: the
parameters of one logical backend call, the parsed result of a successful
call, and the error carrying the details of a failed one.

Params describes what to send (method, URL, query, headers, body, static
credentials). Result carries what came back, with the payload negotiated by
response content type: decoded JSON for JSON responses, a string for text
responses, and the raw buffered response handle for everything else. Error
is the failure shape for non-success statuses; it retains the status,
headers, and body, and can decode structured error bodies on demand.
*/
package call
