// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-product-listing/cmd/service"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
)

func sampleListing() *service.ListingResult {
	return &service.ListingResult{
		Page:  model.PageState{Page: 1, PageSize: 2, Total: 3},
		Pages: []int{1, 2},
		Products: []model.ProductSummary{
			{ID: 100, Name: "Dune", Author: "Frank Herbert", Available: true, OwnerID: "u-1"},
			{ID: 101, Name: "Foundation", Author: "Isaac Asimov", Available: true, OwnerID: "u-2"},
		},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "table", sampleListing())
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Frank Herbert")
	assert.Contains(t, out, "page 1 of 2 (3 products)")
}

func TestRenderTableNotFound(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "table", &service.ListingResult{NotFound: true})
	assert.NoError(t, err)
	assert.Equal(t, "No products found\n", buf.String())
}

func TestRenderTableProfile(t *testing.T) {
	result := &service.ProfileResult{
		UserID:    "u-1",
		Own:       false,
		Available: []model.ProductSummary{{ID: 100, Name: "Dune"}},
	}

	var buf bytes.Buffer
	assert.NoError(t, render(&buf, "table", result))
	assert.Contains(t, buf.String(), "Available products of u-1")
	assert.NotContains(t, buf.String(), "Withdrawn")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, render(&buf, "JSON", sampleListing()))

	var decoded service.ListingResult
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleListing().Products, decoded.Products)
	assert.True(t, strings.Contains(buf.String(), `"owner_id": "u-1"`))
}

func TestRenderYAML(t *testing.T) {
	interests := []model.Interest{{ID: 1, Name: "Books", Genres: []model.Genre{{ID: 11, Name: "Poetry"}}}}

	var buf bytes.Buffer
	assert.NoError(t, render(&buf, "yaml", interests))

	var decoded []model.Interest
	assert.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, interests, decoded)
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "xml", sampleListing())

	var cmdErr *service.CommandError
	assert.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, service.ExitBadRequest, cmdErr.Code)
	assert.Empty(t, buf.String())
}
