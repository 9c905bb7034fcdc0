// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoaderTransitions(t *testing.T) {
	var buf bytes.Buffer
	loader := NewLoader(&buf, "wait")

	loader.Hide()
	assert.Empty(t, buf.String())

	loader.Show()
	loader.Show()
	assert.Equal(t, "\rwait", buf.String())

	loader.Hide()
	loader.Hide()
	assert.Equal(t, "\rwait\r    \r", buf.String())
}

func TestLoaderDefaultMessage(t *testing.T) {
	var buf bytes.Buffer
	NewLoader(&buf, "").Show()
	assert.Equal(t, "\rloading...", buf.String())
}
