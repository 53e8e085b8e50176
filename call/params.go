// Copyright 2026 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
)

const badBodyTypeMsg = "apix/call: invalid body (use nil, string, []byte, " +
	"io.Reader, url.Values, or a JSON-marshalable value)"

// BasicAuth holds static credentials attached to every attempt of a call.
type BasicAuth struct {
	Username string
	Password string
}

// Params describes one logical backend call. A Params value is inert data:
// it can safely back any number of request attempts, because each attempt
// derives a fresh http.Request from it via ToRequest.
type Params struct {
	// Method is the HTTP method. An empty string means GET.
	Method string

	// URL is the absolute request URL. Query parameters already present
	// in the URL are kept and merged with Query.
	URL string

	// Query contains query-string parameters to merge into the URL.
	Query urlpkg.Values

	// Header contains request header fields. ToRequest copies them into
	// each derived request, so mutating a shared Params mid-session is
	// visible to later attempts; don't.
	Header http.Header

	// Body is the request body. See BodyBytes for the accepted types.
	Body any

	// Auth, when non-nil, attaches HTTP Basic credentials to every
	// derived request.
	Auth *BasicAuth
}

// BodyBytes coerces a generic body value into the bytes to send, along
// with the content type implied by the coercion (empty when none is
// implied):
//
// • nil produces no body;
//
// • string and []byte are passed through with no implied content type;
//
// • io.Reader and io.ReadCloser are read to the end (and closed when
// closable), with no implied content type;
//
// • url.Values is form-encoded, implying
// application/x-www-form-urlencoded;
//
// • anything else is JSON-marshaled, implying application/json.
func BodyBytes(body any) ([]byte, string, error) {
	switch x := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return []byte(x), "", nil
	case []byte:
		return x, "", nil
	case urlpkg.Values:
		return []byte(x.Encode()), "application/x-www-form-urlencoded", nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, "", err
		}
		if err = x.Close(); err != nil {
			return nil, "", err
		}
		return b, "", nil
	case io.Reader:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, "", err
		}
		return b, "", nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, "", errors.Join(errors.New(badBodyTypeMsg), err)
		}
		return b, "application/json", nil
	}
}

// ToRequest derives a fresh http.Request from the call parameters, bound
// to ctx. The request body, when present, is fully buffered and
// replayable, so the same Params can be converted again for a retry.
func (p *Params) ToRequest(ctx context.Context) (*http.Request, error) {
	if ctx == nil {
		return nil, errors.New("apix/call: nil context")
	}

	method := p.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := urlpkg.Parse(p.URL)
	if err != nil {
		return nil, fmt.Errorf("apix/call: invalid url: %w", err)
	}
	if len(p.Query) > 0 {
		q := u.Query()
		for key, vals := range p.Query {
			for _, v := range vals {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	body, impliedType, err := BodyBytes(p.Body)
	if err != nil {
		return nil, err
	}

	r, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
	}

	for key, vals := range p.Header {
		for _, v := range vals {
			r.Header.Add(key, v)
		}
	}
	if impliedType != "" && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", impliedType)
	}
	if p.Auth != nil {
		r.SetBasicAuth(p.Auth.Username, p.Auth.Password)
	}

	return r, nil
}
