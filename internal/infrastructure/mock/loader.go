// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import "sync"

// MockLoader records loading indicator transitions
type MockLoader struct {
	mu      sync.Mutex
	visible bool
	shows   int
	hides   int
}

func (m *MockLoader) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = true
	m.shows++
}

func (m *MockLoader) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
	m.hides++
}

// Visible reports whether the indicator is currently shown
func (m *MockLoader) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Counts returns how many times Show and Hide were called
func (m *MockLoader) Counts() (shows, hides int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows, m.hides
}
