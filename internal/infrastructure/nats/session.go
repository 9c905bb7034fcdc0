// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/session"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

// NATSSessionProvider implements the SessionProvider interface for NATS
type NATSSessionProvider struct {
	client      NATSClientInterface
	config      Config
	unsubscribe func() error
	hub         session.Hub
}

// Subscribe registers a stream of the session user, closed once ctx is done
func (n *NATSSessionProvider) Subscribe(ctx context.Context) (<-chan model.User, error) {
	return n.hub.Subscribe(ctx)
}

// LoadCached asks for the current session and publishes it to every subscriber
func (n *NATSSessionProvider) LoadCached(ctx context.Context) error {
	reply, err := n.client.Request(ctx, &SessionNATSRequest{
		Subject: constants.SessionCurrentSubject,
		Message: []byte("{}"),
		Timeout: n.config.Timeout,
	})
	if err != nil {
		slog.ErrorContext(ctx, "NATS current session request failed", "error", err)
		return errors.NewServiceUnavailable("unable to load the current session", err)
	}

	if len(bytes.TrimSpace(reply)) == 0 {
		slog.DebugContext(ctx, "no cached session")
		return nil
	}

	user, err := decodeSession(reply)
	if err != nil {
		slog.ErrorContext(ctx, "invalid current session reply", "error", err)
		return err
	}
	if user.Resolved() {
		n.hub.Publish(ctx, user)
	}
	return nil
}

func (n *NATSSessionProvider) onUpdate(ctx context.Context) func(data []byte) {
	return func(data []byte) {
		user, err := decodeSession(data)
		if err != nil {
			slog.WarnContext(ctx, "dropping invalid session update", "error", err)
			return
		}
		n.hub.Publish(ctx, user)
	}
}

// Close gracefully closes the subscribers and the NATS connection
func (n *NATSSessionProvider) Close() error {
	n.hub.Close()

	if n.unsubscribe != nil {
		if err := n.unsubscribe(); err != nil {
			slog.Warn("NATS unsubscribe failed", "error", err)
		}
	}
	return n.client.Close()
}

func decodeSession(data []byte) (model.User, error) {
	var message sessionMessage
	if err := json.Unmarshal(data, &message); err != nil {
		return model.User{}, errors.NewResponse(0, "malformed session message", err)
	}
	return message.user(), nil
}

func newSessionProvider(ctx context.Context, client NATSClientInterface, config Config) (*NATSSessionProvider, error) {
	provider := &NATSSessionProvider{
		client: client,
		config: config,
	}

	unsubscribe, err := client.Subscribe(ctx, constants.SessionUpdatedSubject, provider.onUpdate(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to session updates: %w", err)
	}
	provider.unsubscribe = unsubscribe

	return provider, nil
}

// NewSessionProvider creates a new NATS session provider
func NewSessionProvider(ctx context.Context, config Config) (*NATSSessionProvider, error) {
	slog.InfoContext(ctx, "creating NATS session provider",
		"url", config.URL,
	)

	client, err := NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS client: %w", err)
	}

	provider, err := newSessionProvider(ctx, client, config)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return provider, nil
}
