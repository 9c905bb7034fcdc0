// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "github.com/linuxfoundation/lfx-v2-product-listing/pkg/paging"

// PageState is the pagination state of a listing
type PageState struct {
	// Page is the current page, or constants.UninitializedPage before the first load
	Page int `json:"page" yaml:"page"`
	// PageSize is the number of products per page
	PageSize int `json:"page_size" yaml:"page_size"`
	// Total is the number of products across all pages
	Total int `json:"total" yaml:"total"`
}

// PageCount returns ceil(Total / PageSize)
func (p PageState) PageCount() int {
	return paging.PageCount(p.Total, p.PageSize)
}

// Pages returns the page numbers 1..PageCount
func (p PageState) Pages() []int {
	return paging.Pages(p.Total, p.PageSize)
}
