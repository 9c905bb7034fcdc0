// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "fmt"

// base is a struct that holds the common fields for error types
type base struct {
	message string
	err     error
}

// error returns the message followed by the joined cause, if any.
// Every error type embedding base formats through here.
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// Message returns the human-readable message without the cause
func (b base) Message() string {
	return b.message
}

// Unwrap exposes the cause so errors.Is and errors.As can walk through it
func (b base) Unwrap() error {
	return b.err
}
