// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/session"
)

// MockSessionProvider is an in-memory session stream
type MockSessionProvider struct {
	hub session.Hub

	mu        sync.Mutex
	cached    model.User
	loadCalls int
}

// NewMockSessionProvider creates a provider whose LoadCached publishes cached
func NewMockSessionProvider(cached model.User) *MockSessionProvider {
	return &MockSessionProvider{cached: cached}
}

func (m *MockSessionProvider) Subscribe(ctx context.Context) (<-chan model.User, error) {
	return m.hub.Subscribe(ctx)
}

// LoadCached publishes the cached user when one is set
func (m *MockSessionProvider) LoadCached(ctx context.Context) error {
	m.mu.Lock()
	m.loadCalls++
	cached := m.cached
	m.mu.Unlock()

	if cached.Resolved() {
		m.hub.Publish(ctx, cached)
	}
	return nil
}

// Publish sends user to every subscriber
func (m *MockSessionProvider) Publish(user model.User) {
	m.hub.Publish(context.Background(), user)
}

// LoadCalls returns how many times LoadCached was called
func (m *MockSessionProvider) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

func (m *MockSessionProvider) Close() error {
	m.hub.Close()
	return nil
}
