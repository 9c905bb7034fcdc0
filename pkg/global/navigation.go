// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package global

import (
	"sync"
)

// View identifies a top-level view of the marketplace
type View int

const (
	// ViewNone is the state before any view was activated
	ViewNone View = iota
	ViewHome
	ViewProducts
	ViewProfile
	ViewCreateProduct
)

var viewNames = map[View]string{
	ViewNone:          "none",
	ViewHome:          "home",
	ViewProducts:      "products",
	ViewProfile:       "profile",
	ViewCreateProduct: "create-product",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

// Views lists every activatable view
func Views() []View {
	return []View{ViewHome, ViewProducts, ViewProfile, ViewCreateProduct}
}

// Navigation holds the single active view. SetActive is the only writer.
type Navigation struct {
	mu     sync.RWMutex
	active View
}

// SetActive makes v the active view, deactivating the previous one
func (n *Navigation) SetActive(v View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = v
}

// Active returns the active view
func (n *Navigation) Active() View {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.active
}

// Flags returns one flag per view, true only for the active one
func (n *Navigation) Flags() map[View]bool {
	active := n.Active()
	flags := make(map[View]bool, len(viewNames))
	for _, v := range Views() {
		flags[v] = v == active
	}
	return flags
}

// NewNavigation creates an independent holder, mostly useful in tests
func NewNavigation() *Navigation {
	return &Navigation{}
}

var (
	navigation       *Navigation
	doOnceNavigation sync.Once
)

// ActiveNavigation returns the process-wide navigation holder
func ActiveNavigation() *Navigation {
	doOnceNavigation.Do(func() {
		navigation = NewNavigation()
	})
	return navigation
}
