// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package global

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countActive(flags map[View]bool) int {
	active := 0
	for _, on := range flags {
		if on {
			active++
		}
	}
	return active
}

func TestNavigationSingleActiveView(t *testing.T) {
	assertion := assert.New(t)

	nav := NewNavigation()
	assertion.Equal(ViewNone, nav.Active())
	assertion.Equal(0, countActive(nav.Flags()))

	for _, v := range []View{ViewProducts, ViewProfile, ViewHome, ViewProducts} {
		nav.SetActive(v)
		assertion.Equal(v, nav.Active())
		assertion.Equal(1, countActive(nav.Flags()))
		assertion.True(nav.Flags()[v])
	}
}

func TestNavigationConcurrentActivation(t *testing.T) {
	nav := NewNavigation()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v View) {
			defer wg.Done()
			nav.SetActive(v)
		}(Views()[i%len(Views())])
	}
	wg.Wait()

	assert.Equal(t, 1, countActive(nav.Flags()))
}

func TestActiveNavigationIsShared(t *testing.T) {
	assert.Same(t, ActiveNavigation(), ActiveNavigation())
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "products", ViewProducts.String())
	assert.Equal(t, "unknown", View(42).String())
}
