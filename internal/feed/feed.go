// package feed implements the paginated result controller behind the
// infinite-scroll movie listing.
//
// The Controller grows a deduplicated list of movies page by page from a
// [catalog.Catalog]. Loads are guarded so duplicate scroll triggers are
// no-ops, responses that arrive after a Reset are discarded, and a failed
// fetch disables further automatic loading until the next Reset.
package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cineflixx/cfx/internal/catalog"
	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
)

// Controller maintains the merged, deduplicated result list for one query.
type Controller struct {
	mu     sync.Mutex
	source catalog.Catalog
	logger *log.Logger

	items      []models.Movie
	seen       map[int]struct{}
	page       int
	totalPages int
	query      string
	loading    bool
	stalled    bool

	// generation tags in-flight requests with the state they were issued
	// for; a Reset bumps it so late responses are dropped instead of being
	// merged into the new query's list.
	generation uint64
}

// NewController creates a Controller over the given source with empty state.
func NewController(source catalog.Catalog, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Controller{
		source:     source,
		logger:     logger,
		seen:       make(map[int]struct{}),
		page:       1,
		totalPages: 1,
	}
}

// Reset replaces all state wholesale. Called when the query changes or on
// first load. Clears the fail-closed latch and invalidates any in-flight
// fetch.
func (c *Controller) Reset(items []models.Movie, page, totalPages int, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked(items, page, totalPages, query)
}

// resetLocked is Reset's body for callers already holding c.mu.
func (c *Controller) resetLocked(items []models.Movie, page, totalPages int, query string) {
	c.generation++
	c.seen = make(map[int]struct{}, len(items))
	c.items = c.items[:0]
	for _, m := range items {
		if _, dup := c.seen[m.ID]; dup {
			continue
		}
		c.seen[m.ID] = struct{}{}
		c.items = append(c.items, m)
	}

	c.page = page
	c.totalPages = catalog.ClampTotalPages(totalPages)
	c.query = query
	c.loading = false
	c.stalled = false
}

// LoadInitial fetches page 1 for query and resets the controller with the
// result. A fetch failure leaves the controller on an empty first page.
//
// The request is generation-tagged like [Controller.LoadNextPage], and it
// claims a fresh generation up front so any older in-flight fetch is
// invalidated at issue time. A response arriving after a Reset or a newer
// LoadInitial is discarded, so a slow first page cannot overwrite state
// installed for a newer query.
func (c *Controller) LoadInitial(ctx context.Context, query string) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	page, err := c.source.FetchByQuery(ctx, query, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		c.logger.Debug("discarding stale first-page response", "query", query)
		return nil
	}

	if err != nil {
		c.resetLocked(nil, 1, 1, query)
		return fmt.Errorf("failed to load first page: %w", err)
	}

	c.resetLocked(page.Results, page.Page, page.TotalPages, query)
	return nil
}

// LoadNextPage fetches the page after the current one and merges it in.
//
// A no-op (false, nil) while a load is outstanding, when no more pages
// remain, or after a previous failure latched the controller. Returns true
// when new state was applied.
func (c *Controller) LoadNextPage(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.loading || c.stalled || c.page >= c.totalPages {
		c.mu.Unlock()
		return false, nil
	}

	c.loading = true
	gen := c.generation
	query := c.query
	next := catalog.ClampPage(c.page + 1)
	c.mu.Unlock()

	result, err := c.source.FetchByQuery(ctx, query, next)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen {
		// Reset happened while the request was in flight; the response
		// belongs to dead state.
		c.logger.Debug("discarding stale page response", "page", next, "query", query)
		return false, nil
	}

	c.loading = false

	if err != nil {
		c.stalled = true
		return false, fmt.Errorf("failed to load page %d: %w", next, err)
	}

	for _, m := range result.Results {
		if _, dup := c.seen[m.ID]; dup {
			continue
		}
		c.seen[m.ID] = struct{}{}
		c.items = append(c.items, m)
	}

	// Trust the source's reported page number rather than assuming next.
	if result.Page > 0 {
		c.page = result.Page
	} else {
		c.page = next
	}
	c.totalPages = catalog.ClampTotalPages(result.TotalPages)

	return true, nil
}

// HasMore reports whether a further page can be loaded. False once the last
// page is reached or after a fetch failure (until the next Reset).
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return !c.stalled && c.page < c.totalPages
}

// Loading reports whether a page fetch is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loading
}

// Items returns a copy of the merged result list in first-seen order.
func (c *Controller) Items() []models.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Movie, len(c.items))
	copy(out, c.items)
	return out
}

// Page returns the last applied page number.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.page
}

// TotalPages returns the source-reported page total, capped at the catalog
// ceiling.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.totalPages
}

// Query returns the query the controller is currently tracking.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.query
}
