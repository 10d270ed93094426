package main

import (
	"context"
	"fmt"

	"github.com/cineflixx/cfx/internal/formatter"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the signed-in user's saved favorites.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	favorites := store.Favorites()

	if useJSON {
		return r.writeJSON(favorites, pretty)
	}

	if len(favorites) == 0 {
		return r.writePlain("No favorites saved\n")
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(favorites)))
	return r.writeMovieTable(favorites)
}

// FavoritesAdd fetches a movie's full record and saves it to favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	source, err := r.requireCatalog()
	if err != nil {
		return err
	}

	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if _, ok := store.Identity(); !ok {
		return fmt.Errorf("%w: sign in before saving favorites", shared.ErrNotAuthenticated)
	}

	if store.IsFavorite(id) {
		return r.writePlain("Already in favorites\n")
	}

	movie, err := source.FetchDetail(ctx, id)
	if err != nil {
		return err
	}

	if err := store.AddFavorite(*movie); err != nil {
		return err
	}

	r.logger.Infof("added favorite %v (%v)", movie.Title, movie.ID)
	return r.writePlain("✓ Added %q to favorites\n", movie.Title)
}

// FavoritesRemove removes a movie from favorites by id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if !store.IsFavorite(id) {
		return r.writePlain("Not in favorites\n")
	}

	if err := store.RemoveFavorite(id); err != nil {
		return err
	}

	r.logger.Infof("removed favorite %v", id)
	return r.writePlain("✓ Removed from favorites\n")
}

// FavoritesExport writes the favorites list to a file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	format := cmd.String("format")
	output := cmd.String("output")

	switch format {
	case "csv", "markdown", "md", "text", "txt", "":
	default:
		return fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, format)
	}

	identity, ok := store.Identity()
	if !ok {
		return fmt.Errorf("%w: sign in before exporting favorites", shared.ErrNotAuthenticated)
	}

	favorites := store.Favorites()
	if len(favorites) == 0 {
		return r.writePlain("No favorites to export\n")
	}

	path, err := formatter.WriteExport(identity.Name, favorites, format, output)
	if err != nil {
		return err
	}

	r.logger.Infof("exported %v favorites to %v", len(favorites), path)
	return r.writePlain("✓ Exported %d favorite(s) to %s\n", len(favorites), path)
}
