package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/timeline"
	"github.com/javiermolinar/timeblock/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case commands.BootMsg:
		return m.boot(msg.Result)

	case commands.PersistedMsg:
		// Failures are diagnostic only: the view keeps the change.
		LogPersist(msg.Change, msg.Err)
		if msg.Err != nil {
			LogError("persist", msg.Err)
		}
		if m.persister == nil {
			return m, nil
		}
		return m, m.persister.Listen()

	case commands.NowTickMsg:
		m.marker.Refresh(m.now())
		return m, commands.NowTick(m.config.NowRefresh())

	case commands.TapResetMsg:
		m.dispatcher.ResetTaps(msg.Gen)
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		return m, m.setError(fmt.Sprintf("Error: %v", msg.Err))

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	if m.lifecycle.Active() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize recomputes the view options for the new width. Crossing the
// compact threshold resets the window to the configured one.
func (m *Model) resize(width, height int) {
	wasCompact := m.adapter.Options().Compact
	first := m.width == 0
	m.width = width
	m.height = height

	opts := timeline.NewOptions(width, m.config.Timeline)
	m.adapter.SetOptions(opts)
	if first || opts.Compact != wasCompact {
		m.window = opts.InitialWindow()
	}
	l := m.layout()
	m.window = timeline.FitWindow(m.window, l.laneWidth, m.config.Timeline.MinColumnsPerHour, opts)
	m.form.Width = max(l.laneWidth-30, 10)
	m.keepCursorVisible()
	LogWindow(m.window, "resize")
}

func (m Model) boot(res timeline.BootResult) (tea.Model, tea.Cmd) {
	LogBoot(res)
	m.items.AddAll(res.Items)
	m.loading = false
	for _, err := range res.SaveErrs {
		LogError("seed", err)
	}
	m.selected = m.itemAtCursor()
	if res.Fallback {
		LogError("load", res.LoadErr)
		return m, m.setError("Could not load saved items, showing defaults")
	}
	return m, nil
}

// persist hands an accepted change to the background writer.
func (m Model) persist(c item.Change) {
	if m.persister == nil || c.IsZero() {
		return
	}
	m.persister.Enqueue(c)
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = false
	m.statusTime = m.now().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

func (m *Model) setError(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = true
	m.statusTime = m.now().Add(errorDuration)
	return commands.ClearStatusAfter(errorDuration)
}
