// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account session",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account and start a session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Sign in with a registered account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:    "whoami",
				Aliases: []string{"status"},
				Usage:   "Show the current session state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// browseCommand lists popular movies.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse popular movies",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number to fetch",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Browse,
	}
}

// searchCommand searches the catalog by title.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search movies by title",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number to fetch",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// movieCommand handles single-movie operations
func movieCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "movie",
		Usage: "Single movie operations",
		Commands: []*cli.Command{
			{
				Name:  "view",
				Usage: "Show details for a movie",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.MovieView,
			},
			{
				Name:  "open",
				Usage: "Open a movie's page in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.MovieOpen,
			},
		},
	}
}

// favoritesCommand handles the signed-in user's favorites list.
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage your favorites",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved favorites",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Save a movie to favorites by id",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a movie from favorites by id",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.FavoritesRemove,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// serveCommand runs the local movies proxy.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local movie catalog proxy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and favorites",
		Action:  r.TUI,
	}
}
