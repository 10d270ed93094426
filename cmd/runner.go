package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cineflixx/cfx/internal/catalog"
	"github.com/cineflixx/cfx/internal/session"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    catalog.Catalog
	store      *session.Store
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    catalog.Catalog
	Store      *session.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, browseCommand, searchCommand, movieCommand, favoritesCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireCatalog returns the catalog source or an error when none is configured.
func (r *Runner) requireCatalog() (catalog.Catalog, error) {
	if r.catalog == nil {
		return nil, fmt.Errorf("%w: catalog source not initialized, set catalog.api_key in config.toml", shared.ErrServiceUnavailable)
	}
	return r.catalog, nil
}

// requireStore returns the session store or an error when the database was never set up.
func (r *Runner) requireStore() (*session.Store, error) {
	if r.store == nil {
		return nil, fmt.Errorf("%w: session store not initialized, run 'cfx setup database' first", shared.ErrServiceUnavailable)
	}
	return r.store, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
