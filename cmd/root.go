package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/theirongolddev/filmdesk/internal/config"
	"github.com/theirongolddev/filmdesk/internal/logging"
	"github.com/theirongolddev/filmdesk/internal/store"
	"github.com/theirongolddev/filmdesk/internal/studio"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagDB      string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "filmdesk",
	Short:         "Film studio ledger",
	Long:          "Track actors, movies and shootings, and keep actor fees within each movie's budget.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

// studioSession is the shared state every data command works with.
type studioSession struct {
	cfg   config.Config
	store *store.Store
	svc   *studio.Service
	log   *slog.Logger
}

func (s *studioSession) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("closing database", "err", err)
	}
}

// loadConfig reads the config and applies the --db flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if flagDB != "" {
		cfg.General.Database = flagDB
	}
	return cfg, nil
}

func logLevel(cfg config.Config) string {
	switch {
	case flagQuiet:
		return "error"
	case flagVerbose:
		return "debug"
	}
	return cfg.General.LogLevel
}

// openStudio is the shared loading path used by all data commands.
// Logs go to stderr so command output stays pipeable.
func openStudio() (*studioSession, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{Level: logLevel(cfg), Output: os.Stderr})
	return openStudioWith(cfg, logger)
}

func openStudioWith(cfg config.Config, logger *slog.Logger) (*studioSession, error) {
	st, err := store.Open(cfg.General.Database, logging.Component(logger, "store"))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.General.Database, err)
	}
	svc := studio.New(st, logging.Component(logger, "studio"))
	return &studioSession{cfg: cfg, store: st, svc: svc, log: logger}, nil
}

// withStudio opens the database, runs fn and closes it again.
func withStudio(fn func(ctx context.Context, s *studioSession) error) error {
	s, err := openStudio()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(context.Background(), s)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// confirm asks a yes/no question unless assumeYes is set.
func confirm(question string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	return ok, nil
}
