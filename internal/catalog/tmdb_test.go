package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
)

func TestClamping(t *testing.T) {
	t.Run("ClampPage", func(t *testing.T) {
		cases := []struct {
			name string
			in   int
			want int
		}{
			{"Zero", 0, 1},
			{"Negative", -3, 1},
			{"InRange", 42, 42},
			{"Ceiling", 500, 500},
			{"BeyondCeiling", 501, 500},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if got := ClampPage(tc.in); got != tc.want {
					t.Errorf("ClampPage(%d) = %d, want %d", tc.in, got, tc.want)
				}
			})
		}
	})

	t.Run("ClampTotalPages", func(t *testing.T) {
		if got := ClampTotalPages(12000); got != MaxPages {
			t.Errorf("expected total pages capped at %d, got %d", MaxPages, got)
		}
		if got := ClampTotalPages(7); got != 7 {
			t.Errorf("expected total pages 7 unchanged, got %d", got)
		}
	})
}

func TestTMDBService(t *testing.T) {
	t.Run("NewTMDBService", func(t *testing.T) {
		t.Run("With API Key", func(t *testing.T) {
			svc, err := NewTMDBService(TMDBOpts{APIKey: "test_key"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if svc.Name() != "TMDB" {
				t.Errorf("expected source name TMDB, got %s", svc.Name())
			}

			if svc.baseURL != defaultTMDBBaseURL {
				t.Errorf("expected default base URL, got %s", svc.baseURL)
			}
		})

		t.Run("Missing API Key", func(t *testing.T) {
			if _, err := NewTMDBService(TMDBOpts{}); err == nil {
				t.Error("expected error for missing API key")
			}
		})
	})

	t.Run("FetchPopular", func(t *testing.T) {
		poster := "/abc.jpg"
		mockPage := models.Page{
			Page: 2,
			Results: []models.Movie{
				{ID: 1, Title: "First", PosterPath: &poster, VoteAverage: 7.5},
				{ID: 2, Title: "Second"},
			},
			TotalPages:   900,
			TotalResults: 18000,
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/movie/popular" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.URL.Query().Get("api_key") != "test_key" {
				t.Error("expected api_key query parameter")
			}
			if r.URL.Query().Get("page") != "2" {
				t.Errorf("expected page 2, got %s", r.URL.Query().Get("page"))
			}
			json.NewEncoder(w).Encode(mockPage)
		}))
		defer server.Close()

		svc, err := NewTMDBService(TMDBOpts{APIKey: "test_key", BaseURL: server.URL})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		page, err := svc.FetchPopular(context.Background(), 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(page.Results) != 2 {
			t.Errorf("expected 2 results, got %d", len(page.Results))
		}

		if page.TotalPages != MaxPages {
			t.Errorf("expected total pages clamped to %d, got %d", MaxPages, page.TotalPages)
		}
	})

	t.Run("FetchByQuery", func(t *testing.T) {
		t.Run("With Query", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search/movie" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if r.URL.Query().Get("query") != "dune" {
					t.Errorf("expected query dune, got %s", r.URL.Query().Get("query"))
				}
				json.NewEncoder(w).Encode(models.Page{Page: 1, Results: []models.Movie{{ID: 9, Title: "Dune"}}, TotalPages: 1, TotalResults: 1})
			}))
			defer server.Close()

			svc, _ := NewTMDBService(TMDBOpts{APIKey: "test_key", BaseURL: server.URL})

			page, err := svc.FetchByQuery(context.Background(), "dune", 1)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(page.Results) != 1 || page.Results[0].Title != "Dune" {
				t.Errorf("unexpected results: %+v", page.Results)
			}
		})

		t.Run("Empty Query Falls Back To Popular", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/movie/popular" {
					t.Errorf("expected fallback to /movie/popular, got %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(models.Page{Page: 1, TotalPages: 1})
			}))
			defer server.Close()

			svc, _ := NewTMDBService(TMDBOpts{APIKey: "test_key", BaseURL: server.URL})

			if _, err := svc.FetchByQuery(context.Background(), "", 1); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("FetchDetail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/movie/603" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.Movie{
				ID:      603,
				Title:   "The Matrix",
				Runtime: 136,
				Genres:  []models.Genre{{ID: 28, Name: "Action"}},
			})
		}))
		defer server.Close()

		svc, _ := NewTMDBService(TMDBOpts{APIKey: "test_key", BaseURL: server.URL})

		movie, err := svc.FetchDetail(context.Background(), 603)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if movie.Runtime != 136 {
			t.Errorf("expected runtime 136, got %d", movie.Runtime)
		}

		if len(movie.Genres) != 1 || movie.Genres[0].Name != "Action" {
			t.Errorf("unexpected genres: %+v", movie.Genres)
		}
	})

	t.Run("FetchDetail Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"status_message": "The resource you requested could not be found."})
		}))
		defer server.Close()

		svc, _ := NewTMDBService(TMDBOpts{APIKey: "test_key", BaseURL: server.URL})

		_, err := svc.FetchDetail(context.Background(), 999999999)
		if !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected movie-not-found error, got %v", err)
		}
	})

	t.Run("Error Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"status_message": "Invalid API key"})
		}))
		defer server.Close()

		svc, _ := NewTMDBService(TMDBOpts{APIKey: "bad_key", BaseURL: server.URL})

		_, err := svc.FetchPopular(context.Background(), 1)
		if !errors.Is(err, shared.ErrSourceFetch) {
			t.Errorf("expected source fetch error for 401 response, got %v", err)
		}
	})
}

func TestProxyCatalog(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		p := NewProxyCatalog("", nil)
		if p.baseURL != defaultProxyBaseURL {
			t.Errorf("expected default base URL, got %s", p.baseURL)
		}
	})

	t.Run("FetchByQuery", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/movies" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.URL.Query().Get("query") != "alien" {
				t.Errorf("expected query alien, got %s", r.URL.Query().Get("query"))
			}
			json.NewEncoder(w).Encode(models.Page{Page: 1, Results: []models.Movie{{ID: 348, Title: "Alien"}}, TotalPages: 3, TotalResults: 41})
		}))
		defer server.Close()

		p := NewProxyCatalog(server.URL, nil)

		page, err := p.FetchByQuery(context.Background(), "alien", 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(page.Results) != 1 || page.Results[0].ID != 348 {
			t.Errorf("unexpected results: %+v", page.Results)
		}
	})

	t.Run("FetchDetail Unsupported", func(t *testing.T) {
		p := NewProxyCatalog("http://localhost:0", nil)
		if _, err := p.FetchDetail(context.Background(), 1); err == nil {
			t.Error("expected error for unsupported detail fetch")
		}
	})
}
