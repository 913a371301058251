// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/hipchat/lib/netutil"
)

// ErrRoomDeleted is returned by operations on a Room that this process
// has already deleted. No request is issued.
var ErrRoomDeleted = errors.New("hipchat: room has been deleted")

// ErrNotFound is returned by the Find* lookups when no cached entity
// matches.
var ErrNotFound = errors.New("hipchat: not found")

// TransportError reports a request that failed before a complete
// response was read: connection refused, DNS failure, TLS failure,
// timeout, or cancellation. Err is the underlying cause with the request
// URL stripped (the URL carries the auth token).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hipchat: %s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline expiry.
func (e *TransportError) Timeout() bool { return netutil.IsTimeout(e.Err) }

// ProtocolError reports a response that could not be interpreted: a
// body that is not JSON, a JSON document missing the expected envelope
// or a required field, or an error status without an error envelope.
type ProtocolError struct {
	Path string
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Body is a truncated copy of the response body, for diagnostics.
	Body string
	Err  error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hipchat: unexpected response from %s (%d): %v", e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("hipchat: unexpected %d response from %s: %s", e.StatusCode, e.Path, e.Body)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// APIError is the error envelope the API returns with 4xx and 5xx
// responses:
//
//	{"error": {"code": 401, "type": "Unauthorized", "message": "Auth token not found"}}
//
// Callers can use errors.As to extract it:
//
//	var apiErr *hipchat.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound { ... }
type APIError struct {
	// Code is the error code from the envelope, which mirrors the HTTP
	// status.
	Code int `json:"code"`
	// Type is the short error name (e.g. "Unauthorized", "Bad Request").
	Type string `json:"type"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hipchat: %s (%d): %s", e.Type, e.StatusCode, e.Message)
}

// IsAPIError reports whether err is an *APIError with the given code.
func IsAPIError(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
