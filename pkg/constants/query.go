// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// DefaultPageSize is the default number of products per listing page
	DefaultPageSize = 10

	// UninitializedPage marks a listing that has not loaded any page yet
	UninitializedPage = -1

	// FilterSeparator joins ids and search terms in filtered queries
	FilterSeparator = "+"

	// ColumnSeparator joins the names in the columns descriptor
	ColumnSeparator = ","
)

// Query parameter names accepted by the marketplace products endpoint.
const (
	ParamSearch    = "search"
	ParamInterest  = "interest"
	ParamGenre     = "genre"
	ParamColumns   = "columns"
	ParamPage      = "page"
	ParamPerPage   = "per_page"
	ParamUserID    = "user_id"
	ParamAvailable = "available"
)

// Column names a filtered query can match against.
const (
	ColumnInterest = "interest"
	ColumnGenre    = "genre"
	ColumnName     = "name"
	ColumnAuthor   = "author"
)
