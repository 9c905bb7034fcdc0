// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"strconv"
	"strings"

	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
)

// GenreSelection is the checkbox state of one genre
type GenreSelection struct {
	GenreID  int64
	Selected bool
}

// InterestSelection is the checkbox state of one interest and its genres
type InterestSelection struct {
	InterestID int64
	Selected   bool
	Genres     []GenreSelection
}

// FilterCriteria holds what the user asked the listing to be filtered by
type FilterCriteria struct {
	// SearchText is free text matched against the name and/or author
	SearchText string
	// MatchName matches SearchText against product names
	MatchName bool
	// MatchAuthor matches SearchText against product authors
	MatchAuthor bool
	// Selection mirrors the interest taxonomy
	Selection []InterestSelection
}

// NewSelection builds an all-unselected tree for the given taxonomy
func NewSelection(interests []Interest) []InterestSelection {
	selection := make([]InterestSelection, len(interests))
	for i, interest := range interests {
		selection[i] = InterestSelection{
			InterestID: interest.ID,
			Genres:     make([]GenreSelection, len(interest.Genres)),
		}
		for j, genre := range interest.Genres {
			selection[i].Genres[j] = GenreSelection{GenreID: genre.ID}
		}
	}
	return selection
}

// IsEmpty reports whether there is nothing to filter by: no search text, no
// selected interest and no selected genre
func (c FilterCriteria) IsEmpty() bool {
	if strings.TrimSpace(c.SearchText) != "" {
		return false
	}
	for _, interest := range c.Selection {
		if interest.Selected {
			return false
		}
		for _, genre := range interest.Genres {
			if genre.Selected {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy so callers never share the selection tree
func (c FilterCriteria) Clone() FilterCriteria {
	clone := c
	clone.Selection = make([]InterestSelection, len(c.Selection))
	for i, interest := range c.Selection {
		clone.Selection[i] = interest
		clone.Selection[i].Genres = append([]GenreSelection(nil), interest.Genres...)
	}
	return clone
}

// FilterQuery is the outbound form of a filtered listing request.
// Empty fields are omitted from the request.
type FilterQuery struct {
	UserID    string
	Terms     []string
	Interests []int64
	Genres    []int64
	Columns   []string
	Page      int
	PageSize  int
}

// SearchParam joins the search terms with the filter separator
func (q FilterQuery) SearchParam() string {
	return strings.Join(q.Terms, constants.FilterSeparator)
}

// InterestParam joins the interest ids with the filter separator
func (q FilterQuery) InterestParam() string {
	return joinIDs(q.Interests)
}

// GenreParam joins the genre ids with the filter separator
func (q FilterQuery) GenreParam() string {
	return joinIDs(q.Genres)
}

// ColumnsParam joins the matched column names
func (q FilterQuery) ColumnsParam() string {
	return strings.Join(q.Columns, constants.ColumnSeparator)
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, constants.FilterSeparator)
}
