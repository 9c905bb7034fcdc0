// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"os"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

// MockAuthService provides a mock implementation of the authentication service
type MockAuthService struct{}

// ParsePrincipal returns a mock principal from environment variable (ignores token parameter)
func (m *MockAuthService) ParsePrincipal(ctx context.Context, token string) (string, error) {

	principal := os.Getenv("SESSION_MOCK_LOCAL_PRINCIPAL")

	if principal == "" {
		return "", errors.NewValidation("mock principal not configured in SESSION_MOCK_LOCAL_PRINCIPAL")
	}

	slog.DebugContext(ctx, "parsed principal",
		"user_id", principal,
	)

	return principal, nil
}

// NewMockAuthService creates a new mock authentication service
func NewMockAuthService() port.Authenticator {
	return &MockAuthService{}
}
