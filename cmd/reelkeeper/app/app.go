// Package app provides the application context and dependency wiring for the
// reelkeeper CLI: configuration, logging, the storage handle, and the lookup
// client, injected into commands through a narrow interface.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/cmd/reelkeeper/cmd"
	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/internal/omdb"
	"github.com/reelkeeper/reelkeeper/pkg/logging"
	"github.com/reelkeeper/reelkeeper/pkg/storage"
)

// App holds the reelkeeper application and its dependencies.
type App struct {
	version string

	config     *Config
	configFlag string
	logger     *zerolog.Logger

	// Storage handle, opened lazily on first use.
	storeOnce sync.Once
	store     storage.Storage
	storeErr  error
}

// New creates an App with configuration loaded from all sources.
func New(version string) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	app := &App{
		version: version,
		config:  config,
	}
	logger := NewLogger(config)
	app.logger = &logger
	return app, nil
}

// Version returns the build version.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Store returns the storage handle, opening the configured backing file on
// first use.
func (a *App) Store() (storage.Storage, error) {
	a.storeOnce.Do(func() {
		a.logger.Debug().Str("file", a.config.File).Msg("opening storage")
		a.store, a.storeErr = storage.Open(a.config.File)
	})
	return a.store, a.storeErr
}

// Lookup returns the OMDb client. The client reports ErrAPIKeyRequired on
// use when no key is configured.
func (a *App) Lookup() *omdb.Client {
	return omdb.New(a.config.OMDbAPIKey)
}

// Format returns the configured output format, auto-detected when unset.
func (a *App) Format() cmdutil.Format {
	format, err := cmdutil.ParseFormat(a.config.Format)
	if err != nil {
		a.logger.Warn().Err(err).Msg("falling back to table output")
		return cmdutil.FormatTable
	}
	return format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor || os.Getenv("NO_COLOR") != ""
}

// SiteTitle returns the configured website title, if any.
func (a *App) SiteTitle() string {
	return a.config.SiteTitle
}

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.createRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ContextWithSignals returns a context cancelled on SIGINT or SIGTERM.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "reelkeeper",
		Short:   "Personal movie collection manager",
		Version: a.version,
		Long: `Reelkeeper manages a personal movie collection stored in a flat
JSON or CSV file. It can enrich new entries from the OMDb lookup API and
derive views over the collection: statistics, fuzzy search, sorting,
filtering, a rating histogram, and a static website.

The storage backend is chosen by file extension: movies.json uses the JSON
format, movies.csv the CSV format. Run without arguments for the
interactive menu.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(c *cobra.Command, _ []string) error {
			// Bare invocation drops into the interactive menu.
			return cmd.RunMenu(c.Context(), a, c.InOrStdin(), c.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFlag, "config", "", "config file (default ~/.reelkeeper.yaml)")
	flags.StringVarP(&a.config.File, "file", "f", a.config.File, "storage file (.json or .csv)")
	flags.StringVarP(&a.config.Format, "output", "o", a.config.Format, "output format: table, json, yaml")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (warnings only)")
	flags.BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")

	rootCmd.SetVersionTemplate("reelkeeper {{.Version}}\n")
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the reelkeeper version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			c.Printf("reelkeeper %s\n", a.version)
		},
	})

	cmd.Register(rootCmd, a)
	return rootCmd
}

// setup runs before every command, after flags are parsed.
func (a *App) setup(c *cobra.Command, _ []string) error {
	if a.configFlag != "" {
		if err := a.reloadConfig(c); err != nil {
			return err
		}
	}
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	return nil
}

// reloadConfig re-reads configuration from an explicitly given config file.
// Values set through flags keep their precedence.
func (a *App) reloadConfig(c *cobra.Command) error {
	os.Setenv("REELKEEPER_CONFIG", a.configFlag)
	loaded, err := LoadConfig()
	if err != nil {
		return err
	}
	a.config.ConfigFile = loaded.ConfigFile
	a.config.OMDbAPIKey = loaded.OMDbAPIKey
	a.config.SiteTitle = loaded.SiteTitle
	if !c.Root().PersistentFlags().Changed("file") {
		a.config.File = loaded.File
	}
	return nil
}
