// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// SessionUpdatedSubject is the NATS subject user session changes are published on
	SessionUpdatedSubject = "marketplace.session.updated"
	// SessionCurrentSubject is the NATS request subject answering with the cached user
	SessionCurrentSubject = "marketplace.session.current"
)
