// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

// WaitForUser returns the first resolved user received on users
func WaitForUser(ctx context.Context, users <-chan model.User) (model.User, error) {
	for {
		select {
		case <-ctx.Done():
			return model.User{}, ctx.Err()
		case u, ok := <-users:
			if !ok {
				return model.User{}, errors.NewServiceUnavailable("session stream closed before a user was resolved")
			}
			if u.Resolved() {
				return u, nil
			}
		}
	}
}

// ResolveUser loads the cached session and waits for its user
func ResolveUser(ctx context.Context, sessions port.SessionProvider) (model.User, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	users, err := sessions.Subscribe(ctx)
	if err != nil {
		return model.User{}, err
	}
	if err := sessions.LoadCached(ctx); err != nil {
		return model.User{}, err
	}
	return WaitForUser(ctx, users)
}
