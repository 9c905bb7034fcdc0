// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
)

// ProductQuerier defines the behavior for paginated listing queries
// This abstraction allows different backends (marketplace HTTP API, OpenSearch, etc.)
// without the listing knowing about specific implementations
type ProductQuerier interface {
	// FetchAvailable returns one page of the products available to the user
	FetchAvailable(ctx context.Context, userID string, page, pageSize int) (*model.ProductPage, error)

	// FetchFiltered returns one page of the products matching the query
	FetchFiltered(ctx context.Context, query model.FilterQuery) (*model.ProductPage, error)

	// IsReady checks if the backend is ready
	IsReady(ctx context.Context) error
}

// ProductReader defines single-product and per-owner lookups
type ProductReader interface {
	// Get returns one product by id
	Get(ctx context.Context, id int64) (*model.ProductSummary, error)

	// FetchByUser returns the products owned by the user, scoped by availability
	FetchByUser(ctx context.Context, userID string, available bool) ([]model.ProductSummary, error)
}

// TaxonomyReader defines access to the interest taxonomy
type TaxonomyReader interface {
	// Interests returns every interest with its genres
	Interests(ctx context.Context) ([]model.Interest, error)
}
