// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package console

import (
	"fmt"
	"io"
	"sync"
)

// Loader is a loading indicator drawn as a single status line. Show and
// Hide only write on transitions.
type Loader struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	visible bool
}

func (l *Loader) Show() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.visible {
		return
	}
	l.visible = true
	fmt.Fprintf(l.w, "\r%s", l.message)
}

func (l *Loader) Hide() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.visible {
		return
	}
	l.visible = false
	// blank the status line
	fmt.Fprintf(l.w, "\r%*s\r", len(l.message), "")
}

// NewLoader creates a loader writing message to w, typically os.Stderr
func NewLoader(w io.Writer, message string) *Loader {
	if message == "" {
		message = "loading..."
	}
	return &Loader{w: w, message: message}
}

// Discard is a loader that draws nothing
type Discard struct{}

func (Discard) Show() {}
func (Discard) Hide() {}
