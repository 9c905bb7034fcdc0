// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// User is the identity carried by the session stream
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Resolved reports whether the session produced a usable identity
func (u User) Resolved() bool {
	return u.ID != ""
}
