// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyBytes(t *testing.T) {
	testCases := []struct {
		name        string
		body        any
		expected    []byte
		contentType string
	}{
		{name: "nil", body: nil, expected: nil, contentType: ""},
		{name: "string", body: "foo", expected: []byte("foo"), contentType: ""},
		{name: "bytes", body: []byte{1, 2, 3}, expected: []byte{1, 2, 3}, contentType: ""},
		{name: "reader", body: strings.NewReader("bar"), expected: []byte("bar"), contentType: ""},
		{name: "read closer", body: io.NopCloser(strings.NewReader("baz")), expected: []byte("baz"), contentType: ""},
		{
			name:        "form values",
			body:        url.Values{"ham": {"eggs", "spam"}},
			expected:    []byte("ham=eggs&ham=spam"),
			contentType: "application/x-www-form-urlencoded",
		},
		{
			name:        "json value",
			body:        map[string]any{"name": "thing"},
			expected:    []byte(`{"name":"thing"}`),
			contentType: "application/json",
		},
		{
			name:        "json struct",
			body:        struct{ N int }{N: 7},
			expected:    []byte(`{"N":7}`),
			contentType: "application/json",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b, ct, err := BodyBytes(testCase.body)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, b)
			assert.Equal(t, testCase.contentType, ct)
		})
	}

	t.Run("unmarshalable value", func(t *testing.T) {
		_, _, err := BodyBytes(func() {})
		assert.Error(t, err)
	})
}

func TestParamsToRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := &Params{URL: "https://api.test/things"}
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "https://api.test/things", r.URL.String())
		assert.Nil(t, r.Body)
	})
	t.Run("nil context", func(t *testing.T) {
		p := &Params{URL: "https://api.test"}
		var nilCtx context.Context
		_, err := p.ToRequest(nilCtx)
		assert.Error(t, err)
	})
	t.Run("invalid url", func(t *testing.T) {
		p := &Params{URL: "://nope"}
		_, err := p.ToRequest(context.Background())
		assert.Error(t, err)
	})
	t.Run("query merged with url", func(t *testing.T) {
		p := &Params{
			URL:   "https://api.test/things?page=2",
			Query: url.Values{"limit": {"10"}, "sort": {"name"}},
		}
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "name", q.Get("sort"))
	})
	t.Run("headers copied", func(t *testing.T) {
		p := &Params{
			URL:    "https://api.test",
			Header: http.Header{"X-Custom": {"a", "b"}},
		}
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, r.Header.Values("X-Custom"))
	})
	t.Run("implied content type", func(t *testing.T) {
		p := &Params{
			Method: http.MethodPost,
			URL:    "https://api.test",
			Body:   map[string]int{"n": 1},
		}
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, int64(len(`{"n":1}`)), r.ContentLength)
	})
	t.Run("explicit content type wins", func(t *testing.T) {
		p := &Params{
			Method: http.MethodPost,
			URL:    "https://api.test",
			Header: http.Header{"Content-Type": {"application/vnd.test+json"}},
			Body:   map[string]int{"n": 1},
		}
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "application/vnd.test+json", r.Header.Get("Content-Type"))
	})
	t.Run("basic auth", func(t *testing.T) {
		p := &Params{
			URL:  "https://api.test",
			Auth: &BasicAuth{Username: "user", Password: "pass"},
		}
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "user", user)
		assert.Equal(t, "pass", pass)
	})
	t.Run("body is replayable", func(t *testing.T) {
		p := &Params{
			Method: http.MethodPost,
			URL:    "https://api.test",
			Body:   "payload",
		}
		r, err := p.ToRequest(context.Background())
		require.NoError(t, err)

		first, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(first))

		require.NotNil(t, r.GetBody)
		body2, err := r.GetBody()
		require.NoError(t, err)
		second, err := io.ReadAll(body2)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(second))
	})
	t.Run("same params back multiple attempts", func(t *testing.T) {
		p := &Params{
			Method: http.MethodPost,
			URL:    "https://api.test",
			Body:   []byte("again"),
		}
		for i := 0; i < 3; i++ {
			r, err := p.ToRequest(context.Background())
			require.NoError(t, err)
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Equal(t, "again", string(b), "attempt %d", i)
		}
	})
}
