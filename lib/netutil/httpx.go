// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O helpers shared by the HipChat client
// and the CLI.
//
// Response bodies from the REST API are small JSON documents. ReadResponse
// bounds every read at MaxResponseSize so that a misbehaving server or a
// proxy returning an endless error page cannot exhaust memory. Streaming
// downloads are not served by these helpers.
package netutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

// MaxResponseSize bounds JSON API response body reads: 32 MB. A full
// users/list for a large group is a few megabytes at most.
const MaxResponseSize int64 = 32 << 20

// ErrResponseTooLarge is returned by ReadResponse when the body exceeds
// MaxResponseSize.
var ErrResponseTooLarge = errors.New("netutil: response body exceeds size limit")

// ReadResponse reads a JSON API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies. A body
// larger than the limit is an error rather than a silent truncation,
// since a truncated JSON document would surface later as a confusing
// parse failure.
func ReadResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, MaxResponseSize)
	}
	return data, nil
}

// Snippet returns at most limit bytes of body as a string, with "..."
// appended when truncated. Used to quote unexpected response bodies in
// error messages without dumping megabytes of HTML.
func Snippet(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}

// IsTimeout reports whether err is a deadline expiry: a context deadline,
// or a net.Error that reports Timeout (http.Client.Timeout produces one).
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
