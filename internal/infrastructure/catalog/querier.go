// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/paging"
)

// ProductQuerier implements the port.ProductQuerier, port.ProductReader and
// port.TaxonomyReader interfaces using the marketplace HTTP API
type ProductQuerier struct {
	client *Client
}

// FetchAvailable returns one page of the products available to the user
func (q *ProductQuerier) FetchAvailable(ctx context.Context, userID string, page, pageSize int) (*model.ProductPage, error) {
	if err := paging.Validate(page, pageSize); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "fetching available products",
		"page", page,
		"per_page", pageSize,
	)

	envelope, err := q.client.ListProducts(ctx, []queryParam{
		single(constants.ParamPage, strconv.Itoa(page)),
		single(constants.ParamPerPage, strconv.Itoa(pageSize)),
		single(constants.ParamUserID, userID),
	})
	if err != nil {
		return nil, err
	}

	return q.convertPage(ctx, envelope)
}

// FetchFiltered returns one page of the products matching the query.
// Criteria without a value are not sent.
func (q *ProductQuerier) FetchFiltered(ctx context.Context, query model.FilterQuery) (*model.ProductPage, error) {
	if err := paging.Validate(query.Page, query.PageSize); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "fetching filtered products",
		"search", query.SearchParam(),
		"interest", query.InterestParam(),
		"genre", query.GenreParam(),
		"columns", query.ColumnsParam(),
		"page", query.Page,
	)

	envelope, err := q.client.ListProducts(ctx, filterParams(query))
	if err != nil {
		return nil, err
	}

	return q.convertPage(ctx, envelope)
}

// Get returns one product by id
func (q *ProductQuerier) Get(ctx context.Context, id int64) (*model.ProductSummary, error) {
	record, err := q.client.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product, err := convertProduct(*record)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchByUser returns the user's products scoped by availability
func (q *ProductQuerier) FetchByUser(ctx context.Context, userID string, available bool) ([]model.ProductSummary, error) {
	if userID == "" {
		return nil, errors.NewValidation("user id is required")
	}

	records, err := q.client.ListUserProducts(ctx, userID, available)
	if err != nil {
		return nil, err
	}
	return convertProducts(records)
}

// Interests returns the interest taxonomy
func (q *ProductQuerier) Interests(ctx context.Context) ([]model.Interest, error) {
	records, err := q.client.ListInterests(ctx)
	if err != nil {
		return nil, err
	}

	interests := make([]model.Interest, 0, len(records))
	for _, record := range records {
		if record.ID == nil {
			return nil, errors.NewResponse(0, "malformed interest taxonomy", fmt.Errorf("interest %q without id", record.Name))
		}
		interest := model.Interest{ID: *record.ID, Name: record.Name}
		for _, genre := range record.Genres {
			if genre.ID == nil {
				return nil, errors.NewResponse(0, "malformed interest taxonomy", fmt.Errorf("genre %q without id", genre.Name))
			}
			interest.Genres = append(interest.Genres, model.Genre{ID: *genre.ID, Name: genre.Name})
		}
		interests = append(interests, interest)
	}
	return interests, nil
}

// IsReady checks if the marketplace API is ready to serve requests
func (q *ProductQuerier) IsReady(ctx context.Context) error {
	return q.client.IsReady(ctx)
}

func filterParams(query model.FilterQuery) []queryParam {
	return []queryParam{
		{key: constants.ParamSearch, parts: query.Terms, sep: constants.FilterSeparator},
		{key: constants.ParamInterest, parts: formatIDs(query.Interests), sep: constants.FilterSeparator},
		{key: constants.ParamGenre, parts: formatIDs(query.Genres), sep: constants.FilterSeparator},
		{key: constants.ParamColumns, parts: query.Columns, sep: constants.ColumnSeparator},
		single(constants.ParamPage, strconv.Itoa(query.Page)),
		single(constants.ParamPerPage, strconv.Itoa(query.PageSize)),
		single(constants.ParamUserID, query.UserID),
	}
}

func formatIDs(ids []int64) []string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return parts
}

// convertPage converts the listing envelope to the domain model. A listing
// without count (unfiltered queries) counts the items it carries.
func (q *ProductQuerier) convertPage(ctx context.Context, envelope *listEnvelope) (*model.ProductPage, error) {
	items, err := convertProducts(*envelope.Data)
	if err != nil {
		slog.ErrorContext(ctx, "marketplace returned malformed products", "error", err)
		return nil, err
	}

	count := len(items)
	if envelope.Count != nil {
		if *envelope.Count < 0 {
			return nil, errors.NewResponse(0, "malformed product listing", fmt.Errorf("negative count %d", *envelope.Count))
		}
		count = *envelope.Count
	}

	slog.DebugContext(ctx, "products fetched",
		"count", count,
		"items", len(items),
	)

	return &model.ProductPage{Count: count, Items: items}, nil
}

func convertProducts(records []productRecord) ([]model.ProductSummary, error) {
	products := make([]model.ProductSummary, 0, len(records))
	for _, record := range records {
		product, err := convertProduct(record)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func convertProduct(record productRecord) (model.ProductSummary, error) {
	if record.ID == nil {
		return model.ProductSummary{}, errors.NewResponse(0, "malformed product", fmt.Errorf("product %q without id", record.Name))
	}
	return model.ProductSummary{
		ID:        *record.ID,
		Name:      record.Name,
		Author:    record.Author,
		Available: record.Available,
		OwnerID:   string(record.OwnerID),
	}, nil
}

// NewProductQuerier creates a new marketplace-backed product querier
func NewProductQuerier(ctx context.Context, config Config) (*ProductQuerier, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("marketplace base URL is required")
	}

	slog.InfoContext(ctx, "marketplace product querier initialized",
		"base_url", config.BaseURL,
		"timeout", config.Timeout,
		"max_retries", config.MaxRetries,
	)

	return &ProductQuerier{
		client: NewClient(config),
	}, nil
}
