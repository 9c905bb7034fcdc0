// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/log"

	"github.com/google/uuid"
)

// WithRequestID returns a context carrying a new request ID, also appended
// to the log attributes so every log line of the operation includes it
func WithRequestID(ctx context.Context) context.Context {
	requestID := generateRequestID()

	ctx = context.WithValue(ctx, constants.RequestIDHeader, requestID)
	return log.AppendCtx(ctx, slog.String(string(constants.RequestIDHeader), requestID))
}

// RequestIDFromContext returns the request ID set by WithRequestID, if any
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(constants.RequestIDHeader).(string); ok {
		return requestID
	}
	return ""
}

type requestIDTransport struct {
	next http.RoundTripper
}

// RoundTrip sets the request ID header on outbound requests that lack one
func (t requestIDTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(string(constants.RequestIDHeader)) != "" {
		return t.next.RoundTrip(r)
	}

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = generateRequestID()
	}

	// RoundTrippers must not modify the caller's request
	r = r.Clone(r.Context())
	r.Header.Set(string(constants.RequestIDHeader), requestID)

	return t.next.RoundTrip(r)
}

// RequestIDTransport wraps next so every outbound request carries a request ID
func RequestIDTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return requestIDTransport{next: next}
}

// generateRequestID generates a new unique request ID
func generateRequestID() string {
	return uuid.New().String()
}
