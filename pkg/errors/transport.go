// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Transport represents a request that never produced a response
// (network failure, timeout, cancelled context).
type Transport struct {
	base
}

// Error returns the error message for Transport.
func (t Transport) Error() string {
	return t.error()
}

// NewTransport creates a new Transport error with the provided message.
func NewTransport(message string, err ...error) Transport {
	return Transport{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Response represents a non-success status or a payload that could not be
// read as the expected record shape.
type Response struct {
	base
	// StatusCode is the HTTP status returned, zero when the status was fine
	// but the body was malformed
	StatusCode int
}

// Error returns the status line followed by the normalized message.
func (r Response) Error() string {
	if r.StatusCode == 0 {
		return r.error()
	}
	return fmt.Sprintf("%d - %s %s", r.StatusCode, http.StatusText(r.StatusCode), r.error())
}

// NewResponse creates a new Response error for the given status.
func NewResponse(statusCode int, message string, err ...error) Response {
	return Response{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
		StatusCode: statusCode,
	}
}
