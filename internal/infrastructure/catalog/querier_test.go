// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestQuerier(t *testing.T, handler http.HandlerFunc) (*ProductQuerier, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	querier, err := NewProductQuerier(context.Background(), Config{
		BaseURL:    ts.URL + "/api/v1",
		Token:      "secret",
		Timeout:    5 * time.Second,
		MaxRetries: 0,
	})
	if err != nil {
		t.Fatalf("Expected no error creating querier, got %v", err)
	}
	return querier, ts
}

func TestFetchAvailable(t *testing.T) {
	assertion := assert.New(t)

	querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
		assertion.Equal("/api/v1/products", r.URL.Path)
		assertion.Equal("page=2&per_page=10&user_id=7", r.URL.RawQuery)
		assertion.Equal("Bearer secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": [
			{"id": 1, "name": "Dune", "author": "Herbert", "available": true, "owner_id": 3},
			{"id": 2, "name": "Emma", "author": "Austen", "available": true, "owner_id": "u-4"}
		], "count": 12}`))
	})

	page, err := querier.FetchAvailable(context.Background(), "7", 2, 10)
	assertion.NoError(err)
	assertion.Equal(12, page.Count)
	assertion.Equal([]model.ProductSummary{
		{ID: 1, Name: "Dune", Author: "Herbert", Available: true, OwnerID: "3"},
		{ID: 2, Name: "Emma", Author: "Austen", Available: true, OwnerID: "u-4"},
	}, page.Items)
}

func TestFetchAvailableWithoutCountCountsItems(t *testing.T) {
	querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"id": 1}, {"id": 2}, {"id": 3}]}`))
	})

	page, err := querier.FetchAvailable(context.Background(), "7", 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 3, page.Count)
}

func TestFetchAvailableRejectsInvalidPaging(t *testing.T) {
	var calls int32
	querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := querier.FetchAvailable(context.Background(), "7", 0, 10)
	assert.IsType(t, errors.Validation{}, err)
	_, err = querier.FetchAvailable(context.Background(), "7", 1, 0)
	assert.IsType(t, errors.Validation{}, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetchFilteredQueryString(t *testing.T) {
	tests := []struct {
		name          string
		query         model.FilterQuery
		expectedQuery string
	}{
		{
			name: "every criterion",
			query: model.FilterQuery{
				UserID:    "7",
				Terms:     []string{"foo", "bar"},
				Interests: []int64{1, 2},
				Genres:    []int64{30},
				Columns:   []string{"interest", "genre", "name"},
				Page:      1,
				PageSize:  10,
			},
			expectedQuery: "search=foo+bar&interest=1+2&genre=30&columns=interest,genre,name&page=1&per_page=10&user_id=7",
		},
		{
			name: "empty criteria are omitted",
			query: model.FilterQuery{
				UserID:    "7",
				Interests: []int64{1},
				Columns:   []string{"interest"},
				Page:      1,
				PageSize:  10,
			},
			expectedQuery: "interest=1&columns=interest&page=1&per_page=10&user_id=7",
		},
		{
			name: "terms are escaped individually",
			query: model.FilterQuery{
				UserID:   "7",
				Terms:    []string{"c++", "&co"},
				Columns:  []string{"name"},
				Page:     1,
				PageSize: 5,
			},
			expectedQuery: "search=c%2B%2B+%26co&columns=name&page=1&per_page=5&user_id=7",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var rawQuery string
			querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
				rawQuery = r.URL.RawQuery
				_, _ = w.Write([]byte(`{"data": [], "count": 0}`))
			})

			page, err := querier.FetchFiltered(context.Background(), tc.query)
			assert.NoError(t, err)
			assert.Equal(t, 0, page.Count)
			assert.Empty(t, page.Items)
			assert.Equal(t, tc.expectedQuery, rawQuery)
		})
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "structured error field",
			status:          http.StatusBadRequest,
			body:            `{"error": "per_page too large"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "per_page too large",
		},
		{
			name:            "structured error object",
			status:          http.StatusConflict,
			body:            `{"error": {"code": 7}}`,
			expectedStatus:  http.StatusConflict,
			expectedMessage: `{"code": 7}`,
		},
		{
			name:            "body without error field",
			status:          http.StatusInternalServerError,
			body:            `{"detail": "boom"}`,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: `{"detail": "boom"}`,
		},
		{
			name:            "plain text body",
			status:          http.StatusBadGateway,
			body:            "upstream down",
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "upstream down",
		},
		{
			name:            "empty body",
			status:          http.StatusForbidden,
			body:            "",
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Forbidden",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := querier.FetchAvailable(context.Background(), "7", 1, 10)

			var responseErr errors.Response
			if !assert.True(t, stderrors.As(err, &responseErr), "expected Response error, got %T", err) {
				return
			}
			assert.Equal(t, tc.expectedStatus, responseErr.StatusCode)
			assert.Equal(t, tc.expectedMessage, responseErr.Message())
		})
	}
}

func TestTransportErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := ts.URL
	ts.Close()

	querier, err := NewProductQuerier(context.Background(), Config{BaseURL: baseURL, Timeout: time.Second})
	assert.NoError(t, err)

	_, err = querier.FetchAvailable(context.Background(), "7", 1, 10)

	var transportErr errors.Transport
	assert.True(t, stderrors.As(err, &transportErr), "expected Transport error, got %T", err)
	assert.NotEmpty(t, transportErr.Message())
}

func TestMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"data": [`},
		{name: "missing data", body: `{"count": 3}`},
		{name: "data is not a list", body: `{"data": {"id": 1}}`},
		{name: "product without id", body: `{"data": [{"name": "Dune"}], "count": 1}`},
		{name: "negative count", body: `{"data": [], "count": -1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := querier.FetchAvailable(context.Background(), "7", 1, 10)
			assert.IsType(t, errors.Response{}, err)
		})
	}
}

func TestGet(t *testing.T) {
	assertion := assert.New(t)

	querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/products/5":
			_, _ = w.Write([]byte(`{"data": {"id": 5, "name": "Ulysses", "author": "Joyce", "available": false, "owner_id": 9}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "product not found"}`))
		}
	})

	product, err := querier.Get(context.Background(), 5)
	assertion.NoError(err)
	assertion.Equal(&model.ProductSummary{ID: 5, Name: "Ulysses", Author: "Joyce", OwnerID: "9"}, product)

	_, err = querier.Get(context.Background(), 6)
	assertion.IsType(errors.NotFound{}, err)

	var responseErr errors.Response
	assertion.True(stderrors.As(err, &responseErr))
	assertion.Equal("product not found", responseErr.Message())
}

func TestFetchByUser(t *testing.T) {
	assertion := assert.New(t)

	querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
		assertion.Equal("/api/v1/users/7/products", r.URL.Path)
		if r.URL.Query().Get("available") == "true" {
			_, _ = w.Write([]byte(`{"data": [{"id": 1, "available": true}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"id": 2}, {"id": 3}]}`))
	})

	available, err := querier.FetchByUser(context.Background(), "7", true)
	assertion.NoError(err)
	assertion.Len(available, 1)

	withdrawn, err := querier.FetchByUser(context.Background(), "7", false)
	assertion.NoError(err)
	assertion.Len(withdrawn, 2)

	_, err = querier.FetchByUser(context.Background(), "", false)
	assertion.IsType(errors.Validation{}, err)
}

func TestInterests(t *testing.T) {
	assertion := assert.New(t)

	querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
		assertion.Equal("/api/v1/interests", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": [
			{"id": 1, "name": "Books", "genres": [{"id": 10, "name": "Fantasy"}, {"id": 11, "name": "Poetry"}]},
			{"id": 2, "name": "Music"}
		]}`))
	})

	interests, err := querier.Interests(context.Background())
	assertion.NoError(err)
	assertion.Equal([]model.Interest{
		{ID: 1, Name: "Books", Genres: []model.Genre{{ID: 10, Name: "Fantasy"}, {ID: 11, Name: "Poetry"}}},
		{ID: 2, Name: "Music"},
	}, interests)
}

func TestIsReady(t *testing.T) {
	querier, _ := newTestQuerier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := querier.IsReady(context.Background())
	assert.IsType(t, errors.ServiceUnavailable{}, err)
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		timeout     string
		retryDelay  string
		expectError bool
	}{
		{name: "defaults", baseURL: "", timeout: "", retryDelay: ""},
		{name: "custom values", baseURL: "https://market.example.com/api/v1/", timeout: "5s", retryDelay: "100ms"},
		{name: "relative base URL", baseURL: "/api/v1", expectError: true},
		{name: "invalid timeout", baseURL: "http://localhost", timeout: "soon", expectError: true},
		{name: "invalid retry delay", baseURL: "http://localhost", retryDelay: "later", expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config, err := NewConfig(tc.baseURL, "", tc.timeout, 1, tc.retryDelay)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, config.BaseURL)
			assert.NotEqual(t, byte('/'), config.BaseURL[len(config.BaseURL)-1])
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "http://localhost:3000/api/v1", config.BaseURL)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, "http://localhost:3000/api/v1/products", config.productsURL())
}
