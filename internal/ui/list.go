package ui

import (
	"fmt"

	"github.com/cineflixx/cfx/internal/models"
)

// movieItem wraps [models.Movie] to implement list.Item.
type movieItem struct {
	movie models.Movie
	fav   bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	if i.fav {
		return fmt.Sprintf("%s %s", i.movie.Title, styles.fav.Render("♥"))
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	desc := fmt.Sprintf("★ %.1f", i.movie.VoteAverage)
	if i.movie.ReleaseDate != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.ReleaseDate)
	}
	return desc
}

// favoriteItem wraps a saved favorite to implement list.Item.
type favoriteItem struct {
	movie models.Movie
}

func (i favoriteItem) FilterValue() string { return i.movie.Title }
func (i favoriteItem) Title() string       { return i.movie.Title }
func (i favoriteItem) Description() string {
	desc := fmt.Sprintf("★ %.1f", i.movie.VoteAverage)
	if i.movie.ReleaseDate != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.ReleaseDate)
	}
	return desc
}
