// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/httpclient"
)

// Client represents a marketplace API client
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// queryParam is one query parameter whose parts are escaped individually
// and joined by a literal separator, so "+" and "," reach the server unescaped
type queryParam struct {
	key   string
	parts []string
	sep   string
}

func single(key, value string) queryParam {
	if value == "" {
		return queryParam{key: key}
	}
	return queryParam{key: key, parts: []string{value}}
}

// encodeQuery renders params in order and skips every param without parts
func encodeQuery(params []queryParam) string {
	var b strings.Builder
	for _, p := range params {
		if len(p.parts) == 0 {
			continue
		}
		escaped := make([]string, len(p.parts))
		for i, part := range p.parts {
			escaped[i] = url.QueryEscape(part)
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(strings.Join(escaped, p.sep))
	}
	return b.String()
}

// ListProducts queries the products collection with the given params
func (c *Client) ListProducts(ctx context.Context, params []queryParam) (*listEnvelope, error) {
	u := c.config.productsURL()
	if raw := encodeQuery(params); raw != "" {
		u += "?" + raw
	}

	var envelope listEnvelope
	if err := c.makeRequest(ctx, u, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, errors.NewResponse(0, "malformed product listing", fmt.Errorf("missing data field"))
	}
	return &envelope, nil
}

// GetProduct fetches one product by id
func (c *Client) GetProduct(ctx context.Context, id int64) (*productRecord, error) {
	u := c.config.productsURL() + "/" + strconv.FormatInt(id, 10)

	var envelope productEnvelope
	if err := c.makeRequest(ctx, u, &envelope); err != nil {
		var responseErr errors.Response
		if stderrors.As(err, &responseErr) && responseErr.StatusCode == http.StatusNotFound {
			return nil, errors.NewNotFound(fmt.Sprintf("product %d not found", id), err)
		}
		return nil, err
	}
	if envelope.Data == nil {
		return nil, errors.NewResponse(0, "malformed product", fmt.Errorf("missing data field"))
	}
	return envelope.Data, nil
}

// ListUserProducts fetches the products owned by a user
func (c *Client) ListUserProducts(ctx context.Context, userID string, available bool) ([]productRecord, error) {
	u := c.config.userProductsURL(userID) + "?" + encodeQuery([]queryParam{
		single(constants.ParamAvailable, strconv.FormatBool(available)),
	})

	var envelope listEnvelope
	if err := c.makeRequest(ctx, u, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, errors.NewResponse(0, "malformed user product listing", fmt.Errorf("missing data field"))
	}
	return *envelope.Data, nil
}

// ListInterests fetches the interest taxonomy
func (c *Client) ListInterests(ctx context.Context) ([]interestRecord, error) {
	var envelope interestsEnvelope
	if err := c.makeRequest(ctx, c.config.interestsURL(), &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, errors.NewResponse(0, "malformed interest taxonomy", fmt.Errorf("missing data field"))
	}
	return *envelope.Data, nil
}

// makeRequest performs the GET request using the generic HTTP client and
// normalizes every failure into a Transport or Response error
func (c *Client) makeRequest(ctx context.Context, url string, model any) error {
	var headers map[string]string
	if c.config.Token != "" {
		headers = map[string]string{
			"Authorization": fmt.Sprintf("Bearer %s", c.config.Token),
		}
	}

	resp, err := c.httpClient.Get(ctx, url, headers)
	if err != nil {
		var statusErr *httpclient.StatusError
		if stderrors.As(err, &statusErr) {
			message := responseMessage(statusErr.Body)
			if message == "" {
				message = http.StatusText(statusErr.StatusCode)
			}
			slog.ErrorContext(ctx, "marketplace request rejected",
				"url", url,
				"status", statusErr.StatusCode,
				"message", message,
			)
			return errors.NewResponse(statusErr.StatusCode, message)
		}

		var transportErr *httpclient.TransportError
		if stderrors.As(err, &transportErr) {
			slog.ErrorContext(ctx, "marketplace unreachable", "url", url, "error", transportErr.Err)
			return errors.NewTransport(transportErr.Err.Error())
		}

		return errors.NewUnexpected("request failed", err)
	}

	if err := json.Unmarshal(resp.Body, model); err != nil {
		slog.ErrorContext(ctx, "failed to decode marketplace response", "url", url, "error", err)
		return errors.NewResponse(0, "malformed response", err)
	}

	return nil
}

// IsReady checks if the marketplace API is reachable
func (c *Client) IsReady(ctx context.Context) error {
	u := c.config.productsURL() + "?" + encodeQuery([]queryParam{
		single(constants.ParamPage, "1"),
		single(constants.ParamPerPage, "1"),
	})

	resp, err := c.httpClient.Get(ctx, u, nil)
	if err != nil {
		return errors.NewServiceUnavailable("marketplace API is not reachable", err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewServiceUnavailable("marketplace API is not reachable", fmt.Errorf("status code: %d", resp.StatusCode))
	}

	return nil
}

// NewClient creates a new marketplace API client
func NewClient(config Config) *Client {
	httpConfig := httpclient.Config{
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryDelay:   config.RetryDelay,
		RetryBackoff: true,
		Transport:    config.Transport,
	}

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}
}
