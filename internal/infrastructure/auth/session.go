// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/session"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

// TokenSource returns the cached session token, empty when nobody is signed in
type TokenSource func(ctx context.Context) (string, error)

// StaticToken serves a fixed token
func StaticToken(token string) TokenSource {
	return func(ctx context.Context) (string, error) {
		return token, nil
	}
}

// FileToken reads the token cached in path. A missing file means no session.
func FileToken(path string) TokenSource {
	return func(ctx context.Context) (string, error) {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return "", nil
		}
		if err != nil {
			return "", errs.NewUnexpected("unable to read the cached session token", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

type userParser interface {
	ParseUser(ctx context.Context, token string) (model.User, error)
}

// TokenSession resolves the session user from a cached token
type TokenSession struct {
	source TokenSource
	auth   port.Authenticator
	hub    session.Hub
}

func (s *TokenSession) Subscribe(ctx context.Context) (<-chan model.User, error) {
	return s.hub.Subscribe(ctx)
}

// LoadCached validates the cached token and publishes its user. Without a
// cached token nobody is signed in and nothing is published.
func (s *TokenSession) LoadCached(ctx context.Context) error {
	token, err := s.source(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "unable to load the cached token", "error", err)
		return err
	}
	if token == "" {
		slog.DebugContext(ctx, "no cached session token")
		return errs.NewValidation("no signed in user")
	}

	user, err := s.resolve(ctx, token)
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "resolved cached session", constants.UserIDAttribute, user.ID)
	s.hub.Publish(ctx, user)
	return nil
}

func (s *TokenSession) resolve(ctx context.Context, token string) (model.User, error) {
	if parser, ok := s.auth.(userParser); ok {
		return parser.ParseUser(ctx, token)
	}
	principal, err := s.auth.ParsePrincipal(ctx, token)
	if err != nil {
		return model.User{}, err
	}
	return model.User{ID: principal}, nil
}

func (s *TokenSession) Close() error {
	s.hub.Close()
	return nil
}

// NewTokenSession creates a session provider on top of a cached token
func NewTokenSession(source TokenSource, auth port.Authenticator) *TokenSession {
	return &TokenSession{
		source: source,
		auth:   auth,
	}
}
