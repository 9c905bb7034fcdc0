// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	errs "github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

const (
	signatureAlgorithm = validator.PS256
	defaultIssuer      = "marketplace"
	defaultAudience    = "marketplace-api"
	defaultJWKSURL     = "http://localhost:3000/.well-known/jwks"
)

// JWTAuthConfig holds the configuration parameters for JWT authentication.
type JWTAuthConfig struct {
	// JWKSURL is the URL to the JSON Web Key Set endpoint
	JWKSURL string
	// Issuer is the expected token issuer
	Issuer string
	// Audience is the intended audience for the JWT token
	Audience string
}

var (
	// Factory for custom JWT claims target.
	customClaims = func() validator.CustomClaims {
		return &MarketplaceClaims{}
	}
)

// MarketplaceClaims contains extra custom claims we want to parse from the
// session token.
type MarketplaceClaims struct {
	Principal string `json:"principal"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Validate provides additional middleware validation of any claims defined in
// MarketplaceClaims.
func (c *MarketplaceClaims) Validate(ctx context.Context) error {
	if c.Principal == "" {
		return errors.New("principal must be provided")
	}
	return nil
}

type JWTAuth struct {
	validator *validator.Validator
	config    JWTAuthConfig
}

// ParsePrincipal extracts the principal from the JWT claims.
func (j *JWTAuth) ParsePrincipal(ctx context.Context, token string) (string, error) {
	claims, err := j.parse(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.Principal, nil
}

// ParseUser returns the session user the token was issued to.
func (j *JWTAuth) ParseUser(ctx context.Context, token string) (model.User, error) {
	claims, err := j.parse(ctx, token)
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		ID:    claims.Principal,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}

func (j *JWTAuth) parse(ctx context.Context, token string) (*MarketplaceClaims, error) {

	if j.validator == nil {
		return nil, errors.New("JWT validator is not set up")
	}

	parsedJWT, err := j.validator.ValidateToken(ctx, token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to validate JWT token",
			"error", err,
		)
		return nil, errs.NewValidation(trimNested(err.Error()))
	}

	claims, ok := parsedJWT.(*validator.ValidatedClaims)
	if !ok {
		// This should never happen.
		return nil, errs.NewValidation("failed to get validated authorization claims")
	}

	customClaims, ok := claims.CustomClaims.(*MarketplaceClaims)
	if !ok {
		// This should never happen.
		return nil, errs.NewValidation("failed to get custom authorization claims")
	}

	return customClaims, nil
}

// trimNested drops tertiary (and deeper) nested errors, using colons as an
// approximation for error nesting.
func trimNested(errString string) string {
	firstColon := strings.Index(errString, ":")
	if firstColon != -1 && firstColon+1 < len(errString) {
		errString = strings.Replace(errString, ": go-jose/go-jose/jwt", "", 1)
		secondColon := strings.Index(errString[firstColon+1:], ":")
		if secondColon != -1 {
			errString = errString[:firstColon+secondColon+1]
		}
	}
	return errString
}

// NewJWTAuth creates a new JWT authentication service
func NewJWTAuth(config JWTAuthConfig) (*JWTAuth, error) {
	// Set up defaults if not provided
	jwksURLStr := config.JWKSURL
	if jwksURLStr == "" {
		jwksURLStr = defaultJWKSURL
	}
	audience := config.Audience
	if audience == "" {
		audience = defaultAudience
	}
	issuerStr := config.Issuer
	if issuerStr == "" {
		issuerStr = defaultIssuer
	}

	jwksURL, err := url.Parse(jwksURLStr)
	if err != nil {
		slog.With("error", err).Error("invalid JWKS_URL")
		return nil, err
	}
	var issuer *url.URL
	issuer, err = url.Parse(issuerStr)
	if err != nil {
		slog.With("error", err).Error("invalid JWT issuer")
		return nil, err
	}
	provider := jwks.NewCachingProvider(issuer, 5*time.Minute, jwks.WithCustomJWKSURI(jwksURL))

	return newJWTAuth(provider.KeyFunc, signatureAlgorithm, issuer.String(), audience, config)
}

func newJWTAuth(
	keyFunc func(context.Context) (interface{}, error),
	algorithm validator.SignatureAlgorithm,
	issuer, audience string,
	config JWTAuthConfig,
) (*JWTAuth, error) {
	jwtValidator, err := validator.New(
		keyFunc,
		algorithm,
		issuer,
		[]string{audience},
		validator.WithCustomClaims(customClaims),
		validator.WithAllowedClockSkew(5*time.Second),
	)
	if err != nil {
		slog.With("error", err).Error("failed to set up the JWT validator")
		return nil, err
	}

	return &JWTAuth{
		validator: jwtValidator,
		config:    config,
	}, nil
}
