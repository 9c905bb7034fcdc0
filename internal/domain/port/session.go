// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
)

// SessionProvider exposes the ambient user session
type SessionProvider interface {
	// Subscribe returns a stream of the current user. The channel is closed
	// once ctx is done or the provider is closed.
	Subscribe(ctx context.Context) (<-chan model.User, error)

	// LoadCached publishes the cached user, if any, to every subscriber
	LoadCached(ctx context.Context) error

	// Close releases the provider resources
	Close() error
}
