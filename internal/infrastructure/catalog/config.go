// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	defaultBaseURL = "http://localhost:3000/api/v1"
)

// Config holds the configuration for the marketplace API client
type Config struct {
	// BaseURL is the marketplace API root, e.g. http://localhost:3000/api/v1
	BaseURL string

	// Token is sent as a bearer token when set
	Token string

	// Timeout is the HTTP client timeout for API requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// Transport is the round tripper used for every request, nil for the default
	Transport http.RoundTripper
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:    defaultBaseURL,
		Timeout:    30 * time.Second,
		MaxRetries: 1,
		RetryDelay: 500 * time.Millisecond,
	}
}

// NewConfig creates a new marketplace configuration with the provided parameters
func NewConfig(baseURL, token, timeout string, maxRetries int, retryDelay string) (Config, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid marketplace base URL %q", baseURL)
	}

	if timeout == "" {
		timeout = "30s"
	}
	timeoutDuration, err := time.ParseDuration(timeout)
	if err != nil {
		return Config{}, fmt.Errorf("invalid timeout duration: %w", err)
	}

	if maxRetries < 0 {
		maxRetries = 0
	}

	if retryDelay == "" {
		retryDelay = "500ms"
	}
	retryDelayDuration, err := time.ParseDuration(retryDelay)
	if err != nil {
		return Config{}, fmt.Errorf("invalid retry delay duration: %w", err)
	}

	return Config{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		Timeout:    timeoutDuration,
		MaxRetries: maxRetries,
		RetryDelay: retryDelayDuration,
	}, nil
}

func (c Config) productsURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/products"
}

func (c Config) interestsURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/interests"
}

func (c Config) userProductsURL(userID string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/users/" + url.PathEscape(userID) + "/products"
}
