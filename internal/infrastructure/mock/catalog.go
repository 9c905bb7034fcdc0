// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/paging"
)

// MockProduct is a catalog entry with the taxonomy it is tagged with
type MockProduct struct {
	model.ProductSummary
	InterestIDs []int64
	GenreIDs    []int64
}

// MockCatalog is an in-memory implementation of ProductQuerier, ProductReader and TaxonomyReader
type MockCatalog struct {
	mu        sync.Mutex
	products  []MockProduct
	interests []model.Interest

	fetchErr     error
	taxonomyErr  error
	isReadyError error

	// BeforeFetch, when set, runs before every page request with its 1-based call number
	BeforeFetch func(ctx context.Context, call int)

	availableCalls int
	filteredCalls  int
	taxonomyCalls  int
	queries        []model.FilterQuery
}

// NewMockCatalog creates a new mock catalog with some sample data
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		interests: []model.Interest{
			{ID: 1, Name: "Books", Genres: []model.Genre{{ID: 11, Name: "Science Fiction"}, {ID: 12, Name: "Poetry"}}},
			{ID: 2, Name: "Music", Genres: []model.Genre{{ID: 21, Name: "Jazz"}, {ID: 22, Name: "Rock"}}},
		},
		products: []MockProduct{
			{ProductSummary: model.ProductSummary{ID: 100, Name: "Dune", Author: "Frank Herbert", Available: true, OwnerID: "u-1"}, InterestIDs: []int64{1}, GenreIDs: []int64{11}},
			{ProductSummary: model.ProductSummary{ID: 101, Name: "Foundation", Author: "Isaac Asimov", Available: true, OwnerID: "u-2"}, InterestIDs: []int64{1}, GenreIDs: []int64{11}},
			{ProductSummary: model.ProductSummary{ID: 102, Name: "Leaves of Grass", Author: "Walt Whitman", Available: true, OwnerID: "u-1"}, InterestIDs: []int64{1}, GenreIDs: []int64{12}},
			{ProductSummary: model.ProductSummary{ID: 103, Name: "Kind of Blue", Author: "Miles Davis", Available: true, OwnerID: "u-3"}, InterestIDs: []int64{2}, GenreIDs: []int64{21}},
			{ProductSummary: model.ProductSummary{ID: 104, Name: "A Love Supreme", Author: "John Coltrane", Available: false, OwnerID: "u-1"}, InterestIDs: []int64{2}, GenreIDs: []int64{21}},
			{ProductSummary: model.ProductSummary{ID: 105, Name: "Led Zeppelin IV", Author: "Led Zeppelin", Available: true, OwnerID: "u-2"}, InterestIDs: []int64{2}, GenreIDs: []int64{22}},
		},
	}
}

// NewMockCatalogWith creates a mock catalog over the given data
func NewMockCatalogWith(products []MockProduct, interests []model.Interest) *MockCatalog {
	return &MockCatalog{products: products, interests: interests}
}

// FetchAvailable returns one page of the available products
func (m *MockCatalog) FetchAvailable(ctx context.Context, userID string, page, pageSize int) (*model.ProductPage, error) {
	slog.DebugContext(ctx, "mock fetch available", "user_id", userID, "page", page, "page_size", pageSize)

	if err := paging.Validate(page, pageSize); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.availableCalls++
	call := m.availableCalls + m.filteredCalls
	m.mu.Unlock()

	return m.fetch(ctx, call, page, pageSize, func(p MockProduct) bool { return true })
}

// FetchFiltered returns one page of the available products matching the query
func (m *MockCatalog) FetchFiltered(ctx context.Context, query model.FilterQuery) (*model.ProductPage, error) {
	slog.DebugContext(ctx, "mock fetch filtered",
		"search", query.SearchParam(),
		"interest", query.InterestParam(),
		"genre", query.GenreParam(),
		"columns", query.ColumnsParam(),
	)

	if err := paging.Validate(query.Page, query.PageSize); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.filteredCalls++
	m.queries = append(m.queries, query)
	call := m.availableCalls + m.filteredCalls
	m.mu.Unlock()

	return m.fetch(ctx, call, query.Page, query.PageSize, func(p MockProduct) bool {
		return matches(p, query)
	})
}

func (m *MockCatalog) fetch(ctx context.Context, call, page, pageSize int, keep func(MockProduct) bool) (*model.ProductPage, error) {
	if m.BeforeFetch != nil {
		m.BeforeFetch(ctx, call)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	var matched []model.ProductSummary
	for _, p := range m.products {
		if p.Available && keep(p) {
			matched = append(matched, p.ProductSummary)
		}
	}

	start := paging.Offset(page, pageSize)
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+pageSize, len(matched))

	return &model.ProductPage{
		Count: len(matched),
		Items: slices.Clone(matched[start:end]),
	}, nil
}

func matches(p MockProduct, query model.FilterQuery) bool {
	if len(query.Interests) > 0 || len(query.Genres) > 0 {
		tagged := false
		for _, id := range query.Interests {
			tagged = tagged || slices.Contains(p.InterestIDs, id)
		}
		for _, id := range query.Genres {
			tagged = tagged || slices.Contains(p.GenreIDs, id)
		}
		if !tagged {
			return false
		}
	}

	if len(query.Terms) == 0 {
		return true
	}

	var fields []string
	if slices.Contains(query.Columns, constants.ColumnName) {
		fields = append(fields, strings.ToLower(p.Name))
	}
	if slices.Contains(query.Columns, constants.ColumnAuthor) {
		fields = append(fields, strings.ToLower(p.Author))
	}
	for _, term := range query.Terms {
		for _, field := range fields {
			if strings.Contains(field, strings.ToLower(term)) {
				return true
			}
		}
	}
	return false
}

// Get returns one product by id
func (m *MockCatalog) Get(ctx context.Context, id int64) (*model.ProductSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == id {
			product := p.ProductSummary
			return &product, nil
		}
	}
	return nil, errors.NewNotFound(fmt.Sprintf("product %d not found", id))
}

// FetchByUser returns the products owned by the user scoped by availability
func (m *MockCatalog) FetchByUser(ctx context.Context, userID string, available bool) ([]model.ProductSummary, error) {
	if userID == "" {
		return nil, errors.NewValidation("user id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	products := []model.ProductSummary{}
	for _, p := range m.products {
		if p.OwnerID == userID && p.Available == available {
			products = append(products, p.ProductSummary)
		}
	}
	return products, nil
}

// Interests returns the interest taxonomy
func (m *MockCatalog) Interests(ctx context.Context) ([]model.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.taxonomyCalls++
	if m.taxonomyErr != nil {
		return nil, m.taxonomyErr
	}
	return slices.Clone(m.interests), nil
}

// IsReady returns the configured readiness error
func (m *MockCatalog) IsReady(ctx context.Context) error {
	return m.isReadyError
}

// SetFetchError makes every product request fail with err, nil restores success
func (m *MockCatalog) SetFetchError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

// SetTaxonomyError makes Interests fail with err
func (m *MockCatalog) SetTaxonomyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taxonomyErr = err
}

// SetIsReadyError sets the error returned by IsReady
func (m *MockCatalog) SetIsReadyError(err error) {
	m.isReadyError = err
}

// AvailableCalls returns how many FetchAvailable requests reached the catalog
func (m *MockCatalog) AvailableCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.availableCalls
}

// FilteredCalls returns how many FetchFiltered requests reached the catalog
func (m *MockCatalog) FilteredCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filteredCalls
}

// TaxonomyCalls returns how many Interests requests reached the catalog
func (m *MockCatalog) TaxonomyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taxonomyCalls
}

// Queries returns the filter queries received so far
func (m *MockCatalog) Queries() []model.FilterQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.queries)
}
