// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
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
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/paging"
)

// Mode is the user-visible state of the listing
type Mode int

const (
	ModeIdle Mode = iota
	ModeLoading
	ModeLoaded
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeLoading:
		return "loading"
	case ModeLoaded:
		return "loaded"
	}
	return "unknown"
}

// Listing holds the state of the products view: pagination, the current
// result set and the filter criteria. Every request takes a generation
// token, a completion carrying an older token than the latest is dropped.
type Listing struct {
	querier    port.ProductQuerier
	taxonomy   port.TaxonomyReader
	sessions   port.SessionProvider
	loader     port.LoadingIndicator
	navigation *global.Navigation

	mu         sync.Mutex
	pageSize   int
	page       int
	total      int
	totalKnown bool
	products   []model.ProductSummary
	interests  []model.Interest
	criteria   model.FilterCriteria
	user       model.User
	notFound   bool
	mode       Mode
	generation uint64
	lastErr    error

	stop     context.CancelFunc
	watchers sync.WaitGroup
}

// ChangePage loads the given page of the products available to the user.
// Asking for the page already shown is a no-op.
func (l *Listing) ChangePage(ctx context.Context, page int) error {
	l.mu.Lock()
	if page == l.page {
		l.mu.Unlock()
		return nil
	}
	if !l.user.Resolved() {
		l.mu.Unlock()
		return errors.NewValidation("cannot load products before the user is resolved")
	}

	validate := paging.Validate(page, l.pageSize)
	if l.totalKnown {
		validate = paging.ValidateWithin(page, l.pageSize, l.total)
	}
	if validate != nil {
		l.mu.Unlock()
		return validate
	}

	previous := l.page
	l.page = page
	gen := l.begin()
	userID, pageSize := l.user.ID, l.pageSize
	l.mu.Unlock()

	ctx = log.AppendCtx(ctx, slog.Int("page", page))
	ctx = log.AppendCtx(ctx, slog.Uint64("generation", gen))

	slog.DebugContext(ctx, "changing page")

	result, err := l.querier.FetchAvailable(ctx, userID, page, pageSize)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		slog.DebugContext(ctx, "discarding stale page result", "latest", l.generation)
		return err
	}
	if err != nil {
		l.fail(ctx, previous, err)
		return err
	}

	l.settle(result)
	l.notFound = false
	return nil
}

// Reset reloads the first page even when it is already shown
func (l *Listing) Reset(ctx context.Context) error {
	l.mu.Lock()
	l.page = constants.UninitializedPage
	l.mu.Unlock()

	return l.ChangePage(ctx, 1)
}

// ApplyFilter loads the first page of the products matching the current
// criteria. Empty criteria issue no request.
func (l *Listing) ApplyFilter(ctx context.Context) error {
	l.mu.Lock()
	if l.criteria.IsEmpty() {
		l.mu.Unlock()
		slog.DebugContext(ctx, "empty filter, nothing to apply")
		return nil
	}
	if !l.user.Resolved() {
		l.mu.Unlock()
		return errors.NewValidation("cannot filter products before the user is resolved")
	}

	previous := l.page
	l.page = 1
	l.notFound = false
	gen := l.begin()
	query := BuildFilterQuery(l.user.ID, l.criteria, l.page, l.pageSize)
	l.mu.Unlock()

	ctx = log.AppendCtx(ctx, slog.Uint64("generation", gen))

	slog.DebugContext(ctx, "applying filter",
		"search", query.SearchParam(),
		"interest", query.InterestParam(),
		"genre", query.GenreParam(),
		"columns", query.ColumnsParam(),
	)

	result, err := l.querier.FetchFiltered(ctx, query)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		slog.DebugContext(ctx, "discarding stale filter result", "latest", l.generation)
		return err
	}
	if err != nil {
		l.fail(ctx, previous, err)
		return err
	}

	l.settle(result)
	l.notFound = len(result.Items) == 0
	return nil
}

// ClearFilter drops every criterion and reloads the first page
func (l *Listing) ClearFilter(ctx context.Context) error {
	l.mu.Lock()
	l.criteria = model.FilterCriteria{Selection: model.NewSelection(l.interests)}
	l.notFound = false
	l.mu.Unlock()

	return l.Reset(ctx)
}

// SetSearch sets the free text and the columns it is matched against
func (l *Listing) SetSearch(text string, matchName, matchAuthor bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.criteria.SearchText = text
	l.criteria.MatchName = matchName
	l.criteria.MatchAuthor = matchAuthor
}

// ToggleInterest flips the selection of an interest
func (l *Listing) ToggleInterest(interestID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.criteria.Selection {
		if l.criteria.Selection[i].InterestID == interestID {
			l.criteria.Selection[i].Selected = !l.criteria.Selection[i].Selected
			return nil
		}
	}
	return errors.NewNotFound(fmt.Sprintf("interest %d not found", interestID))
}

// ToggleGenre flips the selection of a genre of the given interest
func (l *Listing) ToggleGenre(interestID, genreID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.criteria.Selection {
		interest := &l.criteria.Selection[i]
		if interest.InterestID != interestID {
			continue
		}
		for j := range interest.Genres {
			if interest.Genres[j].GenreID == genreID {
				interest.Genres[j].Selected = !interest.Genres[j].Selected
				return nil
			}
		}
	}
	return errors.NewNotFound(fmt.Sprintf("genre %d of interest %d not found", genreID, interestID))
}

// Activate makes the products view the active one, loads the interest
// taxonomy and waits for the session to resolve a user before loading the
// first page. Later session changes reset the listing until Close is called.
func (l *Listing) Activate(ctx context.Context) error {
	l.navigation.SetActive(global.ViewProducts)

	l.mu.Lock()
	if l.stop != nil {
		l.mu.Unlock()
		slog.DebugContext(ctx, "listing already active")
		return nil
	}
	watchCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	l.stop = stop
	l.mu.Unlock()

	l.loader.Show()

	users, err := l.sessions.Subscribe(watchCtx)
	if err != nil {
		l.abort()
		return err
	}

	var user model.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		interests, errInterests := l.taxonomy.Interests(gctx)
		if errInterests != nil {
			// the listing works without a taxonomy, only filtering by it is lost
			slog.WarnContext(gctx, "unable to load interests", "error", errInterests)
			return nil
		}
		l.mu.Lock()
		l.interests = interests
		l.criteria.Selection = model.NewSelection(interests)
		l.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		if errLoad := l.sessions.LoadCached(gctx); errLoad != nil {
			return errLoad
		}
		var errWait error
		user, errWait = WaitForUser(gctx, users)
		return errWait
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "unable to activate listing", "error", err)
		l.abort()
		return err
	}

	l.mu.Lock()
	l.user = user
	l.mu.Unlock()

	l.watchers.Add(1)
	go l.watch(watchCtx, users)

	ctx = log.AppendCtx(ctx, slog.String(constants.UserIDAttribute, user.ID))
	if err := l.ChangePage(ctx, 1); err != nil {
		l.loader.Hide()
		return err
	}
	return nil
}

// Close stops following the session stream
func (l *Listing) Close() {
	l.mu.Lock()
	stop := l.stop
	l.stop = nil
	l.mu.Unlock()

	if stop != nil {
		stop()
	}
	l.watchers.Wait()
}

func (l *Listing) abort() {
	l.loader.Hide()
	l.Close()
}

func (l *Listing) watch(ctx context.Context, users <-chan model.User) {
	defer l.watchers.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-users:
			if !ok {
				return
			}
			l.onSession(ctx, u)
		}
	}
}

func (l *Listing) onSession(ctx context.Context, u model.User) {
	l.mu.Lock()
	if u.ID == l.user.ID {
		l.user = u
		l.mu.Unlock()
		return
	}

	l.user = u
	if !u.Resolved() {
		// signed out: drop the listing and anything still in flight
		slog.DebugContext(ctx, "session cleared, dropping listing")
		l.generation++
		l.page = constants.UninitializedPage
		l.total = 0
		l.totalKnown = false
		l.products = nil
		l.notFound = false
		l.mode = ModeIdle
		l.mu.Unlock()
		l.loader.Hide()
		return
	}
	l.mu.Unlock()

	ctx = log.AppendCtx(ctx, slog.String(constants.UserIDAttribute, u.ID))
	slog.DebugContext(ctx, "session user changed, resetting listing")
	if err := l.Reset(ctx); err != nil {
		slog.ErrorContext(ctx, "unable to reset listing", "error", err)
	}
}

// begin starts a request and returns its generation, l.mu must be held
func (l *Listing) begin() uint64 {
	l.generation++
	l.mode = ModeLoading
	l.loader.Show()
	return l.generation
}

// settle applies a successful result, l.mu must be held
func (l *Listing) settle(result *model.ProductPage) {
	l.total = result.Count
	l.totalKnown = true
	l.products = result.Items
	l.lastErr = nil
	l.mode = ModeLoaded
	l.loader.Hide()
}

// fail keeps the current result set, l.mu must be held
func (l *Listing) fail(ctx context.Context, previous int, err error) {
	slog.ErrorContext(ctx, "unable to load products", "error", err)
	l.page = previous
	l.lastErr = err
	l.mode = ModeLoaded
	l.loader.Hide()
}

// Products returns the current result set
func (l *Listing) Products() []model.ProductSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.products)
}

// Pages returns the sequential page numbers for the current total
func (l *Listing) Pages() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return paging.Pages(l.total, l.pageSize)
}

func (l *Listing) PageState() model.PageState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return model.PageState{Page: l.page, PageSize: l.pageSize, Total: l.total}
}

func (l *Listing) Mode() Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// ProductsNotFound reports whether the last filter matched nothing
func (l *Listing) ProductsNotFound() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.notFound
}

func (l *Listing) Interests() []model.Interest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.interests)
}

// Criteria returns a copy of the filter criteria being edited
func (l *Listing) Criteria() model.FilterCriteria {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.criteria.Clone()
}

// User returns the resolved session user, if any
func (l *Listing) User() model.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.user
}

// LastError returns the error of the last settled request, nil on success
func (l *Listing) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// NewListing creates a products listing. A pageSize <= 0 selects
// constants.DefaultPageSize and a nil navigation the process-wide holder.
func NewListing(
	querier port.ProductQuerier,
	taxonomy port.TaxonomyReader,
	sessions port.SessionProvider,
	loader port.LoadingIndicator,
	navigation *global.Navigation,
	pageSize int,
) *Listing {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if navigation == nil {
		navigation = global.ActiveNavigation()
	}
	return &Listing{
		querier:    querier,
		taxonomy:   taxonomy,
		sessions:   sessions,
		loader:     loader,
		navigation: navigation,
		pageSize:   pageSize,
		page:       constants.UninitializedPage,
		mode:       ModeIdle,
	}
}
