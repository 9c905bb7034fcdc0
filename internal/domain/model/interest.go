// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Interest is a top-level taxonomy tag, possibly holding child genres
type Interest struct {
	ID     int64   `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Genres []Genre `json:"genres,omitempty" yaml:"genres,omitempty"`
}

// Genre is a taxonomy tag nested under an interest
type Genre struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
