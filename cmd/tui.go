package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cineflixx/cfx/internal/feed"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/cineflixx/cfx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and favorites.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	source, err := r.requireCatalog()
	if err != nil {
		return err
	}
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.UI.LogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	ctrl := feed.NewController(source, fileLogger)
	model := ui.NewModel(ctx, store, source, ctrl)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
