// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/service"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/global"
)

// ListingResult is one rendered page of the products view
type ListingResult struct {
	Page     model.PageState        `json:"page" yaml:"page"`
	Pages    []int                  `json:"pages" yaml:"pages"`
	Products []model.ProductSummary `json:"products" yaml:"products"`
	NotFound bool                   `json:"not_found" yaml:"not_found"`
}

// ProfileResult is the products section of a profile
type ProfileResult struct {
	UserID    string                 `json:"user_id" yaml:"user_id"`
	Own       bool                   `json:"own" yaml:"own"`
	Available []model.ProductSummary `json:"available" yaml:"available"`
	Withdrawn []model.ProductSummary `json:"withdrawn,omitempty" yaml:"withdrawn,omitempty"`
}

// FilterOptions are the filter criteria given on the command line
type FilterOptions struct {
	Search      string
	MatchName   bool
	MatchAuthor bool
	Interests   []int64
	Genres      []int64
}

// Marketplace runs the commands against the configured backends
type Marketplace struct {
	backend  ProductBackend
	sessions port.SessionProvider
	loader   port.LoadingIndicator
	pageSize int
}

func (m *Marketplace) activeListing(ctx context.Context) (*service.Listing, error) {
	listing := service.NewListing(m.backend, m.backend, m.sessions, m.loader, global.ActiveNavigation(), m.pageSize)
	if err := listing.Activate(ctx); err != nil {
		listing.Close()
		return nil, err
	}
	return listing, nil
}

func snapshot(listing *service.Listing) *ListingResult {
	return &ListingResult{
		Page:     listing.PageState(),
		Pages:    listing.Pages(),
		Products: listing.Products(),
		NotFound: listing.ProductsNotFound(),
	}
}

// ListProducts shows one page of the products available to the session user
func (m *Marketplace) ListProducts(ctx context.Context, page int) (*ListingResult, error) {
	listing, err := m.activeListing(ctx)
	if err != nil {
		return nil, wrapError(ctx, err)
	}
	defer listing.Close()

	if err := listing.ChangePage(ctx, page); err != nil {
		return nil, wrapError(ctx, err)
	}
	return snapshot(listing), nil
}

// FilterProducts shows the first page of the products matching options
func (m *Marketplace) FilterProducts(ctx context.Context, options FilterOptions) (*ListingResult, error) {
	listing, err := m.activeListing(ctx)
	if err != nil {
		return nil, wrapError(ctx, err)
	}
	defer listing.Close()

	listing.SetSearch(options.Search, options.MatchName, options.MatchAuthor)
	for _, id := range options.Interests {
		if err := listing.ToggleInterest(id); err != nil {
			return nil, wrapError(ctx, err)
		}
	}
	for _, id := range options.Genres {
		parents := genreParents(listing.Interests(), id)
		if len(parents) == 0 {
			return nil, wrapError(ctx, errors.NewNotFound(fmt.Sprintf("genre %d not found", id)))
		}
		for _, interestID := range parents {
			if err := listing.ToggleGenre(interestID, id); err != nil {
				return nil, wrapError(ctx, err)
			}
		}
	}

	if listing.Criteria().IsEmpty() {
		slog.InfoContext(ctx, "no filter given, listing the first page")
	}
	if err := listing.ApplyFilter(ctx); err != nil {
		return nil, wrapError(ctx, err)
	}
	return snapshot(listing), nil
}

// genreParents returns every interest listing genreID
func genreParents(interests []model.Interest, genreID int64) []int64 {
	var parents []int64
	for _, interest := range interests {
		for _, genre := range interest.Genres {
			if genre.ID == genreID {
				parents = append(parents, interest.ID)
				break
			}
		}
	}
	return parents
}

// GetProduct shows one product
func (m *Marketplace) GetProduct(ctx context.Context, id int64) (*model.ProductSummary, error) {
	product, err := m.backend.Get(ctx, id)
	if err != nil {
		return nil, wrapError(ctx, err)
	}
	return product, nil
}

// Interests lists the interest taxonomy
func (m *Marketplace) Interests(ctx context.Context) ([]model.Interest, error) {
	interests, err := m.backend.Interests(ctx)
	if err != nil {
		return nil, wrapError(ctx, err)
	}
	return interests, nil
}

// UserProducts shows the products of ownerID, the session user when empty
func (m *Marketplace) UserProducts(ctx context.Context, ownerID string) (*ProfileResult, error) {
	viewer, err := service.ResolveUser(ctx, m.sessions)
	if err != nil {
		return nil, wrapError(ctx, err)
	}
	if ownerID == "" {
		ownerID = viewer.ID
	}

	profile := service.NewProfile(m.backend, m.loader, global.ActiveNavigation())
	if err := profile.LoadFor(ctx, viewer.ID, ownerID); err != nil {
		return nil, wrapError(ctx, err)
	}

	return &ProfileResult{
		UserID:    profile.UserID(),
		Own:       profile.Own(),
		Available: profile.Available(),
		Withdrawn: profile.Withdrawn(),
	}, nil
}

// IsReady checks the product backend
func (m *Marketplace) IsReady(ctx context.Context) error {
	if err := m.backend.IsReady(ctx); err != nil {
		return wrapError(ctx, err)
	}
	return nil
}

// Close releases the session provider
func (m *Marketplace) Close() error {
	return m.sessions.Close()
}

// NewMarketplace creates the command runner
func NewMarketplace(backend ProductBackend, sessions port.SessionProvider, loader port.LoadingIndicator, pageSize int) *Marketplace {
	return &Marketplace{
		backend:  backend,
		sessions: sessions,
		loader:   loader,
		pageSize: pageSize,
	}
}
