package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
)

const defaultProxyBaseURL = "http://localhost:3000"

// ProxyCatalog implements the listing half of [Catalog] against the local
// fail-soft proxy (see internal/server).
//
// The proxy substitutes an empty page for any source-side failure, so listing
// calls here only error on transport or decode problems. The proxy exposes no
// detail route; FetchDetail always fails.
type ProxyCatalog struct {
	baseURL    string
	httpClient *http.Client
}

var _ Catalog = (*ProxyCatalog)(nil)

// NewProxyCatalog creates a catalog client for the local proxy endpoint.
func NewProxyCatalog(baseURL string, client *http.Client) *ProxyCatalog {
	if baseURL == "" {
		baseURL = defaultProxyBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ProxyCatalog{baseURL: baseURL, httpClient: client}
}

// Name returns the source name.
func (p *ProxyCatalog) Name() string {
	return "proxy"
}

func (p *ProxyCatalog) fetch(ctx context.Context, query string, page int) (*models.Page, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	params.Set("page", strconv.Itoa(ClampPage(page)))

	apiURL := p.baseURL + "/api/movies?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceFetch, err)
	}
	defer resp.Body.Close()

	var result models.Page
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result.TotalPages = ClampTotalPages(result.TotalPages)
	return &result, nil
}

// FetchPopular retrieves one page of the popular listing via the proxy.
func (p *ProxyCatalog) FetchPopular(ctx context.Context, page int) (*models.Page, error) {
	return p.fetch(ctx, "", page)
}

// FetchByQuery retrieves one page of search results via the proxy.
func (p *ProxyCatalog) FetchByQuery(ctx context.Context, query string, page int) (*models.Page, error) {
	return p.fetch(ctx, query, page)
}

// FetchDetail is not served by the proxy.
func (p *ProxyCatalog) FetchDetail(ctx context.Context, id int) (*models.Movie, error) {
	return nil, fmt.Errorf("%w: proxy exposes no detail route", shared.ErrNotImplemented)
}
