// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/cineflixx/cfx/internal/models"
)

// MockCatalog is a scripted test double for [catalog.Catalog].
//
// Pages are keyed by query and page number. An optional Gate channel blocks
// every fetch until a value is received, letting tests hold a request in
// flight. Calls counts every listing fetch.
type MockCatalog struct {
	mu      sync.Mutex
	pages   map[string]models.Page
	details map[int]models.Movie
	Err     error
	Gate    chan struct{}
	Calls   int
}

// NewMockCatalog creates an empty MockCatalog.
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		pages:   make(map[string]models.Page),
		details: make(map[int]models.Movie),
	}
}

func pageKey(query string, page int) string {
	return fmt.Sprintf("%s|%d", query, page)
}

// AddPage scripts the response for a query/page pair.
func (m *MockCatalog) AddPage(query string, page models.Page) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages[pageKey(query, page.Page)] = page
}

// AddDetail scripts the response for a detail fetch.
func (m *MockCatalog) AddDetail(movie models.Movie) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.details[movie.ID] = movie
}

// SetErr makes every subsequent fetch fail with err.
func (m *MockCatalog) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Err = err
}

// CallCount returns the number of listing fetches made so far.
func (m *MockCatalog) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Calls
}

func (m *MockCatalog) fetch(ctx context.Context, query string, page int) (*models.Page, error) {
	m.mu.Lock()
	m.Calls++
	err := m.Err
	result, ok := m.pages[pageKey(query, page)]
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no scripted page for query %q page %d", query, page)
	}

	return &result, nil
}

func (m *MockCatalog) FetchPopular(ctx context.Context, page int) (*models.Page, error) {
	return m.fetch(ctx, "", page)
}

func (m *MockCatalog) FetchByQuery(ctx context.Context, query string, page int) (*models.Page, error) {
	return m.fetch(ctx, query, page)
}

func (m *MockCatalog) FetchDetail(ctx context.Context, id int) (*models.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	movie, ok := m.details[id]
	if !ok {
		return nil, fmt.Errorf("no scripted detail for id %d", id)
	}

	return &movie, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FailingKV is a [storage.KV] double whose operations all fail.
type FailingKV struct{}

func (FailingKV) Get(key string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (FailingKV) Set(key, value string) error {
	return errors.New("storage unavailable")
}

func (FailingKV) Delete(key string) error {
	return errors.New("storage unavailable")
}
