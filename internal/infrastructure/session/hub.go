// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

const subscriberBuffer = 4

// Hub fans session users out to subscribers. Slow subscribers miss updates
// instead of blocking the publisher.
type Hub struct {
	mu          sync.Mutex
	subscribers []chan model.User
	closed      bool
	done        chan struct{}
	watchers    sync.WaitGroup
}

// doneChan returns the channel closed by Close, h.mu must be held
func (h *Hub) doneChan() chan struct{} {
	if h.done == nil {
		h.done = make(chan struct{})
	}
	return h.done
}

// Subscribe registers a stream of users, closed once ctx is done or the hub is closed
func (h *Hub) Subscribe(ctx context.Context) (<-chan model.User, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, errors.NewServiceUnavailable("session provider is closed")
	}

	ch := make(chan model.User, subscriberBuffer)
	h.subscribers = append(h.subscribers, ch)

	done := h.doneChan()
	h.watchers.Add(1)
	go func() {
		defer h.watchers.Done()
		select {
		case <-ctx.Done():
			h.remove(ch)
		case <-done:
		}
	}()

	return ch, nil
}

// Publish sends user to every subscriber
func (h *Hub) Publish(ctx context.Context, user model.User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- user:
		default:
			slog.WarnContext(ctx, "session subscriber is full, dropping update",
				constants.UserIDAttribute, user.ID,
			)
		}
	}
}

// Subscribers returns the number of open subscriptions
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) remove(ch chan model.User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, sub := range h.subscribers {
		if sub == ch {
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close closes every subscription, later Subscribe calls fail
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
	h.closed = true
	close(h.doneChan())
}
