package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cineflixx/cfx/internal/catalog"
	"github.com/cineflixx/cfx/internal/models"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// movieURL is the public page for a movie, used by 'movie open'.
const movieURL = "https://www.themoviedb.org/movie/%d"

// Browse lists one page of the popular movies feed.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	source, err := r.requireCatalog()
	if err != nil {
		return err
	}

	page := catalog.ClampPage(int(cmd.Int("page")))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Infof("fetching popular movies, page %v", page)

	result, err := source.FetchPopular(ctx, page)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceFetch, err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Popular Movies (page %d of %d)", result.Page, result.TotalPages))
	return r.writeMovieTable(result.Results)
}

// Search lists one page of search results for a title query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	source, err := r.requireCatalog()
	if err != nil {
		return err
	}

	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	page := catalog.ClampPage(int(cmd.Int("page")))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Infof("searching for %q, page %v", query, page)

	result, err := source.FetchByQuery(ctx, query, page)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceFetch, err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	if len(result.Results) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (page %d of %d)", query, result.Page, result.TotalPages))
	return r.writeMovieTable(result.Results)
}

// MovieView shows the full record for a single movie.
func (r *Runner) MovieView(ctx context.Context, cmd *cli.Command) error {
	source, err := r.requireCatalog()
	if err != nil {
		return err
	}

	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	movie, err := source.FetchDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSourceFetch, err)
	}

	if useJSON {
		return r.writeJSON(movie, pretty)
	}

	r.writePlainHeader(movie.Title)
	r.writePlain("Rating: %.1f\n", movie.VoteAverage)
	if movie.ReleaseDate != "" {
		r.writePlain("Released: %s\n", movie.ReleaseDate)
	}
	if movie.Runtime > 0 {
		r.writePlain("Runtime: %d min\n", movie.Runtime)
	}
	if len(movie.Genres) > 0 {
		names := make([]string, len(movie.Genres))
		for i, genre := range movie.Genres {
			names[i] = genre.Name
		}
		r.writePlain("Genres: %s\n", strings.Join(names, ", "))
	}
	if movie.Overview != "" {
		r.writePlainln("%s", movie.Overview)
	}

	if r.store != nil && r.store.IsFavorite(movie.ID) {
		r.writePlain("♥ In your favorites\n")
	}
	return nil
}

// MovieOpen opens the movie's public page in the default browser.
func (r *Runner) MovieOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	url := fmt.Sprintf(movieURL, id)
	r.logger.Infof("opening %v", url)

	if err := shared.OpenBrowser(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("✓ Opened %s\n", url)
}

func (r *Runner) writeMovieTable(movies []models.Movie) error {
	for _, movie := range movies {
		marker := " "
		if r.store != nil && r.store.IsFavorite(movie.ID) {
			marker = "♥"
		}
		line := fmt.Sprintf("%s %8d  %-42s ★ %.1f", marker, movie.ID, truncate(movie.Title, 42), movie.VoteAverage)
		if movie.ReleaseDate != "" {
			line = fmt.Sprintf("%s  %s", line, movie.ReleaseDate)
		}
		if err := r.writePlain("%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func parseMovieID(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", shared.ErrInvalidArgument, arg)
	}
	return id, nil
}

// truncate shortens s to at most max runes, never splitting a multibyte
// character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
