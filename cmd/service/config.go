// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys. Every key can be overridden from the environment by
// upper-casing it and replacing dots with underscores, e.g. CATALOG_BASE_URL.
const (
	KeyProductSource = "product.source"
	KeySessionSource = "session.source"

	KeyCatalogBaseURL    = "catalog.base_url"
	KeyCatalogToken      = "catalog.token"
	KeyCatalogTimeout    = "catalog.timeout"
	KeyCatalogMaxRetries = "catalog.max_retries"
	KeyCatalogRetryDelay = "catalog.retry_delay"

	KeySessionToken     = "session.token"
	KeySessionTokenFile = "session.token_file"

	KeyJWKSURL     = "jwt.jwks_url"
	KeyJWTIssuer   = "jwt.issuer"
	KeyJWTAudience = "jwt.audience"

	KeyNATSURL           = "nats.url"
	KeyNATSTimeout       = "nats.timeout"
	KeyNATSMaxReconnect  = "nats.max_reconnect"
	KeyNATSReconnectWait = "nats.reconnect_wait"

	KeyOpenSearchURL           = "opensearch.url"
	KeyOpenSearchIndex         = "opensearch.index"
	KeyOpenSearchInterestIndex = "opensearch.interest_index"

	KeyLogLevel     = "log.level"
	KeyLogAddSource = "log.add_source"
	KeyLogFormat    = "log.format"

	KeyPageSize = "listing.page_size"
)

var defaults = map[string]any{
	KeyProductSource: "http",
	KeySessionSource: "jwt",

	KeyCatalogBaseURL:    "http://localhost:3000/api/v1",
	KeyCatalogTimeout:    "30s",
	KeyCatalogMaxRetries: 1,
	KeyCatalogRetryDelay: "500ms",

	KeySessionTokenFile: "",

	KeyNATSURL:           "nats://localhost:4222",
	KeyNATSTimeout:       "10s",
	KeyNATSMaxReconnect:  3,
	KeyNATSReconnectWait: "2s",

	KeyOpenSearchURL:           "http://localhost:9200",
	KeyOpenSearchIndex:         "products",
	KeyOpenSearchInterestIndex: "interests",

	KeyLogLevel:     "info",
	KeyLogAddSource: false,
	KeyLogFormat:    "json",

	KeyPageSize: 10,
}

// LoadConfig reads the optional YAML file at path and layers the
// environment on top of it
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return v, nil
}
