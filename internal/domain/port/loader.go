// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

// LoadingIndicator is the advisory loading flag shown while a request is in flight
type LoadingIndicator interface {
	Show()
	Hide()
}
