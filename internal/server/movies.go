package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/cineflixx/cfx/internal/catalog"
	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
)

// MoviesHandler serves the fail-soft /api/movies proxy endpoint.
//
// Forwards {query, page} to the catalog and echoes its page shape verbatim.
// Any catalog failure is absorbed: the caller receives a 200 with an
// empty-results page, never an error status.
type MoviesHandler struct {
	source catalog.Catalog
	logger *log.Logger
}

var _ Handler = (*MoviesHandler)(nil)

// NewMoviesHandler creates a new [MoviesHandler] over the given catalog.
func NewMoviesHandler(source catalog.Catalog, logger *log.Logger) *MoviesHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &MoviesHandler{source: source, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *MoviesHandler) Routes() []string {
	return []string{"/api/movies"}
}

// ServeHTTP handles the proxy request.
func (h *MoviesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("query")

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			page = parsed
		}
	}
	page = catalog.ClampPage(page)

	result, err := h.source.FetchByQuery(r.Context(), query, page)
	if err != nil {
		// Fail soft: degrade to an empty page instead of surfacing the
		// upstream failure.
		h.logger.Error("catalog fetch failed, serving empty page", "query", query, "page", page, "err", err)
		empty := models.EmptyPage()
		result = &empty
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode proxy response", "err", err)
	}
}
