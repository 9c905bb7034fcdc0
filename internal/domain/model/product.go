// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// ProductSummary is an immutable snapshot of a marketplace listing
type ProductSummary struct {
	// Product ID
	ID int64 `json:"id" yaml:"id"`
	// Product name
	Name string `json:"name" yaml:"name"`
	// Author of the listed work
	Author string `json:"author" yaml:"author"`
	// Available is false once the owner withdrew the listing
	Available bool `json:"available" yaml:"available"`
	// OwnerID references the user offering the product
	OwnerID string `json:"owner_id" yaml:"owner_id"`
}

// ProductPage is one page of a product listing
type ProductPage struct {
	// Count is the total number of products matching, across all pages
	Count int `json:"count" yaml:"count"`
	// Items on the requested page
	Items []ProductSummary `json:"items" yaml:"items"`
}
