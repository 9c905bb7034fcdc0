// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

// Exit codes of the commands
const (
	ExitInternal    = 1
	ExitBadRequest  = 2
	ExitNotFound    = 3
	ExitUnavailable = 4
	ExitRejected    = 5
)

// CommandError is the error a command reports to the user
type CommandError struct {
	Code    int
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

func wrapError(ctx context.Context, err error) error {

	f := func(err error) error {
		if err == nil {
			return &CommandError{
				Code:    ExitInternal,
				Message: "unknown error",
			}
		}

		switch e := err.(type) {
		case errors.Validation:
			return &CommandError{
				Code:    ExitBadRequest,
				Message: e.Error(),
			}
		case errors.NotFound:
			return &CommandError{
				Code:    ExitNotFound,
				Message: e.Error(),
			}
		case errors.ServiceUnavailable, errors.Transport:
			return &CommandError{
				Code:    ExitUnavailable,
				Message: e.Error(),
			}
		case errors.Response:
			return &CommandError{
				Code:    ExitRejected,
				Message: e.Error(),
			}
		}

		if stderrors.Is(err, context.DeadlineExceeded) {
			return &CommandError{
				Code:    ExitUnavailable,
				Message: "timed out: " + err.Error(),
			}
		}
		return &CommandError{
			Code:    ExitInternal,
			Message: err.Error(),
		}
	}

	slog.ErrorContext(ctx, "command failed",
		"error", err,
	)
	return f(err)
}
