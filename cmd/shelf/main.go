package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mmcdole/shelf/internal/config"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/log"
	"github.com/mmcdole/shelf/internal/random"
	"github.com/mmcdole/shelf/internal/readinglist"
	"github.com/mmcdole/shelf/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

// app holds what every subcommand shares once configuration is loaded
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	books  *store.BookStore
}

// setup loads configuration, installs the logger and opens the book store
func setup(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	dbPath, err := config.ExpandPath(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	books, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open book store: %w", err)
	}

	logger.Info("starting shelf", "version", Version, "command", cmd.Name(), "store", dbPath)
	return &app{cfg: cfg, logger: logger, books: books}, nil
}

func (a *app) Close() error {
	return a.books.Close()
}

// randomSource returns the configured randomness provider
func (a *app) randomSource() domain.RandomSource {
	if a.cfg.Random.Source == config.RandomSourceLocal {
		return random.Local{}
	}
	return random.NewClient(a.cfg.Random.URL, a.cfg.Random.Timeout, a.logger)
}

// newEngine creates an empty reading list over the book store
func (a *app) newEngine() *readinglist.Engine {
	return readinglist.New(a.books, a.randomSource(), readinglist.Config{
		TTL:           a.cfg.TTL(),
		CacheCapacity: a.cfg.Cache.Capacity,
	}, a.logger)
}

// withApp wraps a RunE body with setup and teardown
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shelf",
		Short:         "A reading list over a book catalog",
		Long:          "shelf keeps a book catalog and an ordered reading list with a circular reading cursor.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "config file (default ~/.config/shelf/config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newBooksCmd(),
		newReadCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shelf %s\n", Version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
