// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/global"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/log"
)

// Profile holds the products a user offers, split by availability
type Profile struct {
	reader     port.ProductReader
	loader     port.LoadingIndicator
	navigation *global.Navigation

	mu        sync.Mutex
	userID    string
	own       bool
	available []model.ProductSummary
	withdrawn []model.ProductSummary
}

// Load fetches both sub-lists of the user's own profile. On failure the
// previous lists are kept.
func (p *Profile) Load(ctx context.Context, userID string) error {
	return p.LoadFor(ctx, userID, userID)
}

// LoadFor fetches the profile of ownerID as seen by viewerID. Withdrawn
// products are only listed on the viewer's own profile.
func (p *Profile) LoadFor(ctx context.Context, viewerID, ownerID string) error {
	p.navigation.SetActive(global.ViewProfile)

	if ownerID == "" {
		return errors.NewValidation("user id is required")
	}
	own := viewerID == ownerID

	ctx = log.AppendCtx(ctx, slog.String(constants.UserIDAttribute, ownerID))
	slog.DebugContext(ctx, "loading profile products", "own", own)

	p.loader.Show()
	defer p.loader.Hide()

	var available, withdrawn []model.ProductSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		available, err = p.reader.FetchByUser(gctx, ownerID, true)
		return err
	})
	if own {
		g.Go(func() error {
			var err error
			withdrawn, err = p.reader.FetchByUser(gctx, ownerID, false)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "unable to load profile products", "error", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.userID = ownerID
	p.own = own
	p.available = available
	p.withdrawn = withdrawn
	return nil
}

// Own reports whether the loaded profile belongs to the viewer
func (p *Profile) Own() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.own
}

// Available returns the products the user currently offers
func (p *Profile) Available() []model.ProductSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.available)
}

// Withdrawn returns the products the user withdrew
func (p *Profile) Withdrawn() []model.ProductSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.withdrawn)
}

func (p *Profile) UserID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userID
}

// NewProfile creates a profile listing, a nil navigation selects the process-wide holder
func NewProfile(reader port.ProductReader, loader port.LoadingIndicator, navigation *global.Navigation) *Profile {
	if navigation == nil {
		navigation = global.ActiveNavigation()
	}
	return &Profile{
		reader:     reader,
		loader:     loader,
		navigation: navigation,
	}
}
