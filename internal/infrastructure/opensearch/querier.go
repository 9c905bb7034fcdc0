// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/paging"
)

// maxUnpaged bounds the queries that are not paginated
const maxUnpaged = 1000

var templateFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

var (
	queryProductsTemplate  = template.Must(template.New("queryProducts").Funcs(templateFuncs).Parse(queryProductsSource))
	queryInterestsTemplate = template.Must(template.New("queryInterests").Funcs(templateFuncs).Parse(queryInterestsSource))
)

// searchColumns maps filter columns to indexed text fields
var searchColumns = map[string]string{
	constants.ColumnName:   "name",
	constants.ColumnAuthor: "author",
}

// OpenSearchQuerier implements ProductQuerier, ProductReader and TaxonomyReader on OpenSearch
type OpenSearchQuerier struct {
	client        OpenSearchClientRetriever
	index         string
	interestIndex string
}

// OpenSearchClientRetriever defines the interface for OpenSearch operations
// This allows for easy mocking and testing
type OpenSearchClientRetriever interface {
	Search(ctx context.Context, index string, query []byte) (*SearchResponse, error)
	IsReady(ctx context.Context) error
}

func (os *OpenSearchQuerier) FetchAvailable(ctx context.Context, userID string, page, pageSize int) (*model.ProductPage, error) {
	if err := paging.Validate(page, pageSize); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "querying available products",
		constants.UserIDAttribute, userID,
		"page", page,
	)

	available := true
	return os.queryPage(ctx, productQuery{
		From:      paging.Offset(page, pageSize),
		Size:      pageSize,
		Available: &available,
	})
}

func (os *OpenSearchQuerier) FetchFiltered(ctx context.Context, query model.FilterQuery) (*model.ProductPage, error) {
	if err := paging.Validate(query.Page, query.PageSize); err != nil {
		return nil, err
	}

	available := true
	data := productQuery{
		From:      paging.Offset(query.Page, query.PageSize),
		Size:      query.PageSize,
		Available: &available,
		Interests: query.Interests,
		Genres:    query.Genres,
	}
	if len(query.Terms) > 0 {
		// multi_match tokenizes the query itself
		data.Terms = strings.Join(query.Terms, " ")
		for _, column := range query.Columns {
			if field, ok := searchColumns[column]; ok {
				data.Fields = append(data.Fields, field)
			}
		}
	}

	slog.DebugContext(ctx, "querying filtered products",
		constants.UserIDAttribute, query.UserID,
		"terms", data.Terms,
		"fields", data.Fields,
	)

	return os.queryPage(ctx, data)
}

// Get returns one product by id
func (os *OpenSearchQuerier) Get(ctx context.Context, id int64) (*model.ProductSummary, error) {
	response, err := os.search(ctx, os.index, queryProductsTemplate, productQuery{Size: 1, ID: id})
	if err != nil {
		return nil, err
	}
	if len(response.Hits.Hits) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("product %d not found", id))
	}

	product, err := convertProduct(response.Hits.Hits[0])
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchByUser returns every product of the user with the given availability
func (os *OpenSearchQuerier) FetchByUser(ctx context.Context, userID string, available bool) ([]model.ProductSummary, error) {
	if userID == "" {
		return nil, errors.NewValidation("user id is required")
	}

	page, err := os.queryPage(ctx, productQuery{
		Size:      maxUnpaged,
		OwnerID:   userID,
		Available: &available,
	})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Interests returns the interest taxonomy
func (os *OpenSearchQuerier) Interests(ctx context.Context) ([]model.Interest, error) {
	response, err := os.search(ctx, os.interestIndex, queryInterestsTemplate, struct{ Size int }{Size: maxUnpaged})
	if err != nil {
		return nil, err
	}

	interests := make([]model.Interest, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		var doc interestDocument
		if errUnmarshal := json.Unmarshal(hit.Source, &doc); errUnmarshal != nil || doc.ID == nil {
			slog.ErrorContext(ctx, "invalid interest document", "hit_id", hit.ID, "error", errUnmarshal)
			return nil, errors.NewResponse(0, "malformed interest document", errUnmarshal)
		}
		interest := model.Interest{ID: *doc.ID, Name: doc.Name}
		for _, genre := range doc.Genres {
			interest.Genres = append(interest.Genres, model.Genre{ID: genre.ID, Name: genre.Name})
		}
		interests = append(interests, interest)
	}
	return interests, nil
}

func (os *OpenSearchQuerier) IsReady(ctx context.Context) error {
	if err := os.client.IsReady(ctx); err != nil {
		return errors.NewServiceUnavailable("opensearch is not ready", err)
	}
	return nil
}

func (os *OpenSearchQuerier) queryPage(ctx context.Context, data productQuery) (*model.ProductPage, error) {
	response, err := os.search(ctx, os.index, queryProductsTemplate, data)
	if err != nil {
		return nil, err
	}

	page := &model.ProductPage{
		Count: response.Hits.Total.Value,
		Items: make([]model.ProductSummary, 0, len(response.Hits.Hits)),
	}
	for _, hit := range response.Hits.Hits {
		product, errConvert := convertProduct(hit)
		if errConvert != nil {
			slog.ErrorContext(ctx, "failed to convert hit", "hit_id", hit.ID, "error", errConvert)
			return nil, errConvert
		}
		page.Items = append(page.Items, product)
	}

	slog.DebugContext(ctx, "opensearch search completed",
		"results_count", len(page.Items),
		"total", page.Count,
	)
	return page, nil
}

func (os *OpenSearchQuerier) search(ctx context.Context, index string, tmpl *template.Template, data any) (*SearchResponse, error) {
	query, err := Render(ctx, tmpl, data)
	if err != nil {
		return nil, errors.NewUnexpected("failed to render query", err)
	}

	response, err := os.client.Search(ctx, index, query)
	if err != nil {
		slog.ErrorContext(ctx, "opensearch search failed", "error", err)
		return nil, errors.NewTransport("opensearch search failed", err)
	}
	if response == nil {
		return nil, errors.NewResponse(0, "empty opensearch response")
	}
	return response, nil
}

// Render generates the OpenSearch query for data, compacted and checked to be valid JSON
func Render(ctx context.Context, tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.ErrorContext(ctx, "failed to render query template", "error", err)
		return nil, err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, buf.Bytes()); err != nil {
		slog.ErrorContext(ctx, "rendered query is not valid JSON", "error", err)
		return nil, err
	}
	return compact.Bytes(), nil
}

func convertProduct(hit Hit) (model.ProductSummary, error) {
	var doc productDocument
	if err := json.Unmarshal(hit.Source, &doc); err != nil {
		return model.ProductSummary{}, errors.NewResponse(0, "malformed product document", err)
	}
	if doc.ID == nil {
		return model.ProductSummary{}, errors.NewResponse(0, fmt.Sprintf("product document %s has no id", hit.ID))
	}
	return model.ProductSummary{
		ID:        *doc.ID,
		Name:      doc.Name,
		Author:    doc.Author,
		Available: doc.Available,
		OwnerID:   doc.OwnerID,
	}, nil
}

// NewQuerier returns a new OpenSearchQuerier implementation
func NewQuerier(ctx context.Context, config Config) (*OpenSearchQuerier, error) {

	if config.URL == "" {
		slog.ErrorContext(ctx, "opensearch URL is required")
		return nil, fmt.Errorf("opensearch URL is required")
	}
	if config.Index == "" {
		slog.ErrorContext(ctx, "opensearch index is required")
		return nil, fmt.Errorf("opensearch index is required")
	}
	if config.InterestIndex == "" {
		config.InterestIndex = "interests"
	}

	opensearchClient, errOpensearchClient := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: []string{config.URL},
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: time.Second,
				DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
			},
		},
	})
	if errOpensearchClient != nil {
		slog.ErrorContext(ctx, "failed to create OpenSearch client", "error", errOpensearchClient)
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", errOpensearchClient)
	}

	return newQuerier(&httpClient{client: opensearchClient}, config), nil
}

func newQuerier(client OpenSearchClientRetriever, config Config) *OpenSearchQuerier {
	return &OpenSearchQuerier{
		client:        client,
		index:         config.Index,
		interestIndex: config.InterestIndex,
	}
}
