// Package tui provides the terminal user interface for timeblock.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/timeblock/internal/config"
	"github.com/javiermolinar/timeblock/internal/dispatch"
	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/lifecycle"
	"github.com/javiermolinar/timeblock/internal/timeline"
	"github.com/javiermolinar/timeblock/internal/tui/commands"
	"github.com/javiermolinar/timeblock/internal/tui/theme"
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store     item.Store
	persister *commands.Persister
	config    *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Live state shared with the controllers
	items      *item.Collection
	lifecycle  *lifecycle.Controller
	dispatcher *dispatch.Dispatcher
	adapter    *timeline.Adapter
	marker     *timeline.NowMarker

	// View state
	window   timeline.Window
	cursor   time.Time // snapped, on the base day
	selected int64     // 0 when nothing is selected
	drag     *dragState
	loading  bool

	// Form
	form      textinput.Model
	selectAll bool // the next typed key replaces the prefilled value

	help helpOverlay

	// Terminal dimensions
	width  int
	height int

	statusMsg  string    // Temporary status/error message
	statusErr  bool      // statusMsg is an error
	statusTime time.Time // When to clear message

	now func() time.Time
	err error
}

// ModelOption configures optional Model settings.
type ModelOption func(*Model)

// WithClock sets the clock used for the now marker, tap timing and new ids.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model over store. The items are loaded by Init.
func New(store item.Store, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	m := Model{
		store:   store,
		config:  cfg,
		theme:   t,
		styles:  styles,
		items:   item.NewCollection(),
		help:    newHelpOverlay(styles.OverlayBg),
		loading: true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.lifecycle = lifecycle.New(m.items, lifecycle.WithClock(m.now))
	m.dispatcher = dispatch.New(cfg.TapWindow())
	viewOpts := timeline.NewOptions(0, cfg.Timeline)
	m.adapter = timeline.NewAdapter(m.items, viewOpts)
	m.window = viewOpts.InitialWindow()
	m.marker = timeline.NewNowMarker(m.now())
	m.cursor = m.clampCursor(item.Snap(m.marker.At()))
	if store != nil {
		m.persister = commands.NewPersister(store)
	}

	form := textinput.New()
	form.Placeholder = lifecycle.PlaceholderIdle
	form.CharLimit = 256
	form.Width = 40
	form.Prompt = ""
	form.PlaceholderStyle = styles.PlaceholderStyle
	m.form = form

	return m
}

// Init loads the items and starts the now marker refresh.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.NowTick(m.config.NowRefresh())}
	if m.store != nil {
		cmds = append(cmds, commands.Boot(m.store), m.persister.Listen())
	}
	return tea.Batch(cmds...)
}

// RunOptions controls a TUI session.
type RunOptions struct {
	Debug   bool
	NoColor bool
}

// Run starts the TUI over store and blocks until the user quits. Pending
// writes are flushed before returning; the caller still owns store.
func Run(store item.Store, cfg *config.Config, opts RunOptions) error {
	if err := InitDebugLogger(opts.Debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := New(store, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	if model.persister != nil {
		model.persister.Close()
	}
	if err != nil {
		return fmt.Errorf("running timeline: %w", err)
	}
	return nil
}

// Items returns a snapshot of the live items.
func (m Model) Items() []item.Item {
	return m.items.All()
}
