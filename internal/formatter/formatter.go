// package formatter provides functions to export a favorites list to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cineflixx/cfx/internal/models"
)

func posterPath(movie models.Movie) string {
	if movie.PosterPath == nil {
		return ""
	}
	return *movie.PosterPath
}

// ExportToCSV converts a favorites list to CSV format with columns: ID, Title, Rating, Release Date, Poster Path
func ExportToCSV(owner string, favorites []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Rating", "Release Date", "Poster Path"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range favorites {
		record := []string{
			strconv.Itoa(movie.ID),
			movie.Title,
			strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64),
			movie.ReleaseDate,
			posterPath(movie),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a favorites list to Markdown format
func ExportToMarkdown(owner string, favorites []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Favorites: %s\n\n", owner))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(favorites)))

	buf.WriteString("## Movies\n\n")
	for i, movie := range favorites {
		yearPart := ""
		if movie.ReleaseDate != "" {
			yearPart = fmt.Sprintf(" (%s)", movie.ReleaseDate)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s - %.1f/10\n", i+1, movie.Title, yearPart, movie.VoteAverage))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a favorites list to plain text format
func ExportToText(owner string, favorites []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Favorites: %s\n", owner))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(favorites)))

	for i, movie := range favorites {
		buf.WriteString(fmt.Sprintf("%d. %s [%.1f]\n", i+1, movie.Title, movie.VoteAverage))
	}

	return buf.Bytes(), nil
}

// WriteExport writes the favorites list to path in the requested format.
//
// Supported formats: csv, markdown (md), text (txt). An empty path defaults
// to favorites.{ext} in the working directory.
func WriteExport(owner string, favorites []models.Movie, format, path string) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(owner, favorites)
		ext = "csv"
	case "markdown", "md":
		data, err = ExportToMarkdown(owner, favorites)
		ext = "md"
	case "text", "txt", "":
		data, err = ExportToText(owner, favorites)
		ext = "txt"
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate export: %w", err)
	}

	if path == "" {
		path = "favorites." + ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
