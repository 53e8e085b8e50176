// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(contentType string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{StatusCode: 200, Header: h}
}

func TestNegotiate(t *testing.T) {
	t.Run("json object", func(t *testing.T) {
		body := []byte(`{"id":7,"name":"thing"}`)
		r, err := Negotiate(response("application/json"), body)
		require.NoError(t, err)
		assert.Equal(t, 200, r.StatusCode)
		assert.Equal(t, body, r.Body)
		assert.Equal(t, map[string]any{"id": float64(7), "name": "thing"}, r.Value)
	})
	t.Run("json with charset", func(t *testing.T) {
		r, err := Negotiate(response("application/json; charset=utf-8"), []byte(`[1,2]`))
		require.NoError(t, err)
		assert.Equal(t, []any{float64(1), float64(2)}, r.Value)
	})
	t.Run("json suffix type", func(t *testing.T) {
		r, err := Negotiate(response("application/problem+json"), []byte(`{"title":"nope"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "nope"}, r.Value)
	})
	t.Run("empty json body", func(t *testing.T) {
		r, err := Negotiate(response("application/json"), nil)
		require.NoError(t, err)
		assert.Nil(t, r.Value)
	})
	t.Run("malformed json body", func(t *testing.T) {
		_, err := Negotiate(response("application/json"), []byte(`{"id":`))
		assert.Error(t, err, "a malformed payload is a failed attempt")
	})
	t.Run("text", func(t *testing.T) {
		r, err := Negotiate(response("text/plain; charset=utf-8"), []byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, "hello", r.Value)
	})
	t.Run("raw handle", func(t *testing.T) {
		resp := response("application/octet-stream")
		body := []byte{0xDE, 0xAD}
		r, err := Negotiate(resp, body)
		require.NoError(t, err)
		require.Same(t, resp, r.Value)

		// The raw handle's body is a re-readable buffer.
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, body, b)
	})
	t.Run("missing content type", func(t *testing.T) {
		resp := response("")
		r, err := Negotiate(resp, []byte("???"))
		require.NoError(t, err)
		assert.Same(t, resp, r.Value, "unknown types fall back to the raw handle")
	})
}

func TestResultDecode(t *testing.T) {
	r, err := Negotiate(response("application/json"), []byte(`{"id":7}`))
	require.NoError(t, err)
	var v struct {
		ID int `json:"id"`
	}
	require.NoError(t, r.Decode(&v))
	assert.Equal(t, 7, v.ID)
}

func TestError(t *testing.T) {
	e := &Error{
		Op:         "POST https://api.test/things",
		StatusCode: 503,
		Header:     http.Header{"Retry-After": {"1"}},
		Body:       []byte(`{"message":"overloaded"}`),
	}
	assert.EqualError(t, e, "apix/call: POST https://api.test/things: unexpected status 503")

	var v struct {
		Message string `json:"message"`
	}
	require.NoError(t, e.DecodeBody(&v))
	assert.Equal(t, "overloaded", v.Message)

	assert.Error(t, (&Error{Body: []byte("not json")}).DecodeBody(&v))
}
