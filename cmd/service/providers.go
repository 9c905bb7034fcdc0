// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/catalog"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/opensearch"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/middleware"
)

// ProductBackend serves every product read the commands need
type ProductBackend interface {
	port.ProductQuerier
	port.ProductReader
	port.TaxonomyReader
}

// ProductBackendImpl injects the product backend implementation
func ProductBackendImpl(ctx context.Context, v *viper.Viper) ProductBackend {

	var (
		backend ProductBackend
		err     error
	)

	productSource := v.GetString(KeyProductSource)

	switch productSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock product backend")
		backend = mock.NewMockCatalog()

	case "http":
		catalogConfig, errConfig := catalog.NewConfig(
			v.GetString(KeyCatalogBaseURL),
			v.GetString(KeyCatalogToken),
			v.GetString(KeyCatalogTimeout),
			v.GetInt(KeyCatalogMaxRetries),
			v.GetString(KeyCatalogRetryDelay),
		)
		if errConfig != nil {
			log.Fatalf("failed to create catalog configuration: %v", errConfig)
		}
		catalogConfig.Transport = middleware.RequestIDTransport(nil)

		slog.InfoContext(ctx, "initializing marketplace catalog backend",
			"base_url", catalogConfig.BaseURL,
			"timeout", catalogConfig.Timeout,
			"max_retries", catalogConfig.MaxRetries,
		)

		backend, err = catalog.NewProductQuerier(ctx, catalogConfig)
		if err != nil {
			log.Fatalf("failed to initialize catalog backend: %v", err)
		}

	case "opensearch":
		opensearchConfig := opensearch.Config{
			URL:           v.GetString(KeyOpenSearchURL),
			Index:         v.GetString(KeyOpenSearchIndex),
			InterestIndex: v.GetString(KeyOpenSearchInterestIndex),
		}
		slog.InfoContext(ctx, "initializing opensearch product backend",
			"url", opensearchConfig.URL,
			"index", opensearchConfig.Index,
		)

		backend, err = opensearch.NewQuerier(ctx, opensearchConfig)
		if err != nil {
			log.Fatalf("failed to initialize OpenSearch backend: %v", err)
		}

	default:
		log.Fatalf("unsupported product backend implementation: %s", productSource)
	}

	return backend
}

// SessionProviderImpl injects the session provider implementation
func SessionProviderImpl(ctx context.Context, v *viper.Viper) port.SessionProvider {

	var (
		sessions port.SessionProvider
		err      error
	)

	sessionSource := v.GetString(KeySessionSource)

	switch sessionSource {
	case "mock":
		// the mock authenticator takes its principal from SESSION_MOCK_LOCAL_PRINCIPAL
		slog.InfoContext(ctx, "initializing mock session provider")
		sessions = auth.NewTokenSession(auth.StaticToken("mock"), mock.NewMockAuthService())

	case "jwt":
		jwtAuth, errAuth := auth.NewJWTAuth(auth.JWTAuthConfig{
			JWKSURL:  v.GetString(KeyJWKSURL),
			Issuer:   v.GetString(KeyJWTIssuer),
			Audience: v.GetString(KeyJWTAudience),
		})
		if errAuth != nil {
			log.Fatalf("failed to initialize JWT authentication: %v", errAuth)
		}

		source := auth.StaticToken(v.GetString(KeySessionToken))
		if tokenFile := v.GetString(KeySessionTokenFile); tokenFile != "" {
			source = auth.FileToken(tokenFile)
		}

		slog.InfoContext(ctx, "initializing cached token session provider")
		sessions = auth.NewTokenSession(source, jwtAuth)

	case "nats":
		natsConfig := nats.Config{
			URL:           v.GetString(KeyNATSURL),
			Timeout:       v.GetDuration(KeyNATSTimeout),
			MaxReconnect:  v.GetInt(KeyNATSMaxReconnect),
			ReconnectWait: v.GetDuration(KeyNATSReconnectWait),
		}
		slog.InfoContext(ctx, "initializing NATS session provider", "url", natsConfig.URL)

		sessions, err = nats.NewSessionProvider(ctx, natsConfig)
		if err != nil {
			log.Fatalf("failed to initialize NATS session provider: %v", err)
		}

	default:
		log.Fatalf("unsupported session implementation: %s", sessionSource)
	}

	return sessions
}
