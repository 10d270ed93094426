package main

import (
	"context"
	"errors"
	"os"

	"github.com/cineflixx/cfx/internal/catalog"
	"github.com/cineflixx/cfx/internal/session"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/cineflixx/cfx/internal/storage"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var source catalog.Catalog
	if config.Catalog.APIKey != "" {
		if svc, err := catalog.NewTMDBService(catalog.TMDBOpts{
			BaseURL:  config.Catalog.BaseURL,
			APIKey:   config.Catalog.APIKey,
			Language: config.Catalog.Language,
			RateRPS:  config.Catalog.RateRPS,
		}); err == nil {
			source = svc
		}
	}

	var store *session.Store
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			store = session.NewStore(storage.NewSQLiteKV(db), logger)
			if err := store.Init(); err != nil {
				logger.Warnf("failed to load session state: %v", err)
				store = nil
			}
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: source,
		Store:   store,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "cfx",
		Usage:    "Discover movies and manage your favorites",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
