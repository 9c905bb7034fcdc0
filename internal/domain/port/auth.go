// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	// ParsePrincipal parses and validates a JWT token, returning the user it identifies
	ParsePrincipal(ctx context.Context, token string) (string, error)
}
