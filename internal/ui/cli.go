package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timeblock/internal/config"
	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store      item.Store
	config     *config.Config
	configPath string
	root       *cobra.Command
	now        func() time.Time

	debug     bool // Enable debug logging
	noColor   bool
	ephemeral bool // Keep items in memory only
}

// NewApp creates a new CLI application with the given store and config.
// A nil store is opened lazily from the configured database path.
func NewApp(store item.Store, cfg *config.Config) *App {
	a := &App{
		store:      store,
		config:     cfg,
		configPath: config.DefaultConfigPath(),
		now:        time.Now,
	}

	a.root = &cobra.Command{
		Use:   "timeblock",
		Short: "Time-block your day on a terminal timeline",
		Long: `Timeblock shows a single day as a horizontal timeline.

Double click (or press enter) on empty time to add a one hour block,
on a block to rename it, and drag blocks to move them. Changes are
saved as you go.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.Run(a.store, a.config, tui.RunOptions{Debug: a.debug, NoColor: a.noColor})
		},
	}

	flags := a.root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&a.ephemeral, "ephemeral", false, "Keep items in memory only")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.rmCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timeblock %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the configured store on first use.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	if a.ephemeral {
		a.store = item.NewMemoryStore()
		return nil
	}

	state, err := tui.DetectInitState(a.config, a.configPath)
	if err != nil {
		return err
	}
	store, err := tui.Prepare(a.config, state)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	if err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}
