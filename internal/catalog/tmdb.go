// TMDB implementation of [Catalog]
//
// Response types based on https://developer.themoviedb.org/reference
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
	"golang.org/x/time/rate"
)

const defaultTMDBBaseURL = "https://api.themoviedb.org/3"

// statusError carries the HTTP status of a failed source request so callers
// can react to specific codes. Unwraps to [shared.ErrSourceFetch].
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("%v: status %d: %s", shared.ErrSourceFetch, e.code, e.message)
	}
	return fmt.Sprintf("%v: status %d", shared.ErrSourceFetch, e.code)
}

func (e *statusError) Unwrap() error { return shared.ErrSourceFetch }

// TMDBService implements the [Catalog] interface against the TMDB v3 API.
//
// Every request carries the api_key and language query parameters and passes
// through a token-bucket rate limiter before hitting the network.
type TMDBService struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Catalog = (*TMDBService)(nil)

// TMDBOpts contains configuration options for creating a TMDBService.
type TMDBOpts struct {
	BaseURL    string
	APIKey     string
	Language   string
	HTTPClient *http.Client
	RateRPS    float64
}

// NewTMDBService creates a new TMDB catalog client.
//
// The API key is required; everything else has a usable default.
func NewTMDBService(opts TMDBOpts) (*TMDBService, error) {
	if opts.APIKey == "" {
		return nil, shared.ErrMissingAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultTMDBBaseURL
	}
	if opts.Language == "" {
		opts.Language = "en-US"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.RateRPS <= 0 {
		opts.RateRPS = 4
	}

	return &TMDBService{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		language:   opts.Language,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateRPS), 1),
	}, nil
}

// Name returns the source name.
func (t *TMDBService) Name() string {
	return "TMDB"
}

func (t *TMDBService) doRequest(ctx context.Context, path string, params url.Values, result any) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)
	params.Set("language", t.language)

	apiURL := t.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			StatusMessage string `json:"status_message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &statusError{code: resp.StatusCode, message: errResp.StatusMessage}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (t *TMDBService) fetchPage(ctx context.Context, path string, params url.Values) (*models.Page, error) {
	var page models.Page
	if err := t.doRequest(ctx, path, params, &page); err != nil {
		return nil, err
	}

	page.TotalPages = ClampTotalPages(page.TotalPages)
	return &page, nil
}

// FetchPopular retrieves one page of the popular listing.
//
// Calls GET /movie/popular.
func (t *TMDBService) FetchPopular(ctx context.Context, page int) (*models.Page, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(ClampPage(page)))

	return t.fetchPage(ctx, "/movie/popular", params)
}

// FetchByQuery retrieves one page of search results for query.
//
// Calls GET /search/movie; an empty query falls back to [TMDBService.FetchPopular].
func (t *TMDBService) FetchByQuery(ctx context.Context, query string, page int) (*models.Page, error) {
	if query == "" {
		return t.FetchPopular(ctx, page)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(ClampPage(page)))

	return t.fetchPage(ctx, "/search/movie", params)
}

// FetchDetail retrieves the full record for a single movie.
//
// Calls GET /movie/{id}.
func (t *TMDBService) FetchDetail(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	if err := t.doRequest(ctx, fmt.Sprintf("/movie/%d", id), nil, &movie); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: id %d", shared.ErrMovieNotFound, id)
		}
		return nil, err
	}

	return &movie, nil
}
