// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// A Result is the parsed outcome of one successful call.
type Result struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the complete, buffered response body.
	Body []byte

	// Value is the payload negotiated from the response content type:
	// a decoded JSON value (the encoding/json generic forms) for
	// JSON-typed responses, a string for text-typed responses, and the
	// raw *http.Response handle otherwise. In the raw case the
	// response's Body has been replaced with a re-readable buffer over
	// Body, so consuming it twice is safe.
	Value any

	// Raw is the underlying response the result was built from. Its
	// body has already been read; Raw.Body re-reads the buffered Body.
	Raw *http.Response
}

// Decode unmarshals the buffered response body into v as JSON, regardless
// of the negotiated Value. Useful when the caller knows the payload shape.
func (r *Result) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Negotiate builds a Result from a response whose body has already been
// read into body. It selects Result.Value by media type and returns an
// error if a JSON-typed body cannot be decoded (a malformed response is a
// failed attempt, not a success with a broken payload).
func Negotiate(resp *http.Response, body []byte) (*Result, error) {
	resp.Body = io.NopCloser(bytes.NewReader(body))
	r := &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Raw:        resp,
	}

	mediaType := mediaTypeOf(resp.Header.Get("Content-Type"))
	switch {
	case isJSONType(mediaType):
		var v any
		if len(body) > 0 {
			if err := json.Unmarshal(body, &v); err != nil {
				return nil, fmt.Errorf("apix/call: malformed %s body: %w", mediaType, err)
			}
		}
		r.Value = v
	case strings.HasPrefix(mediaType, "text/"):
		r.Value = string(body)
	default:
		r.Value = resp
	}

	return r, nil
}

// An Error is the failure produced when a call reaches the backend but the
// response indicates failure (a non-2XX status). It retains everything a
// caller needs to inspect the failure, including the raw body for
// structured error payloads.
type Error struct {
	// Op describes the failed call, e.g. "POST https://api/things".
	Op string

	// StatusCode is the HTTP status of the failure response.
	StatusCode int

	// Header contains the failure response headers.
	Header http.Header

	// Body is the complete, buffered failure response body.
	Body []byte
}

// Error returns a one-line description of the failure.
func (e *Error) Error() string {
	return fmt.Sprintf("apix/call: %s: unexpected status %d", e.Op, e.StatusCode)
}

// DecodeBody unmarshals the failure response body into v as JSON. Backends
// that return structured error documents can be inspected this way without
// the caller re-reading anything.
func (e *Error) DecodeBody(v any) error {
	return json.Unmarshal(e.Body, v)
}

func mediaTypeOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mediaType
}

func isJSONType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
