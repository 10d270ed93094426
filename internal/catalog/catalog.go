// package catalog defines interface Catalog for the external movie metadata API
//
// TMDB directly, or via the local fail-soft proxy
package catalog

import (
	"context"

	"github.com/cineflixx/cfx/internal/models"
)

// MaxPages is the hard page ceiling the catalog enforces on listing
// endpoints. Callers must never request beyond it, and reported totals are
// clamped to it.
const MaxPages = 500

// Catalog defines the interface for paginated movie metadata sources.
type Catalog interface {
	// FetchPopular retrieves one page of the default (popular) listing.
	// Page numbers are 1-based and clamped to [1, MaxPages].
	FetchPopular(ctx context.Context, page int) (*models.Page, error)

	// FetchByQuery retrieves one page of search results for the given text.
	// An empty query falls back to the popular listing.
	FetchByQuery(ctx context.Context, query string, page int) (*models.Page, error)

	// FetchDetail retrieves the full record for a single movie by id,
	// including genres and runtime.
	FetchDetail(ctx context.Context, id int) (*models.Movie, error)

	// Name returns the name of the source (e.g., "TMDB")
	Name() string
}

// ClampPage bounds a requested page number to what the catalog will serve.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPages {
		return MaxPages
	}
	return page
}

// ClampTotalPages bounds a source-reported page total to the catalog ceiling.
func ClampTotalPages(total int) int {
	if total > MaxPages {
		return MaxPages
	}
	return total
}
