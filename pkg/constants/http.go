// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

type requestIDHeaderType string

// RequestIDHeader is the header name for the request ID
const RequestIDHeader requestIDHeaderType = "X-REQUEST-ID"

const (
	// UserIDAttribute is the log attribute carrying the resolved session user
	UserIDAttribute = "user_id"
)
