// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/timeline"
)

// BootMsg carries the initial item set.
type BootMsg struct {
	Result timeline.BootResult
}

// PersistedMsg reports the outcome of mirroring one change to the store.
type PersistedMsg struct {
	Change item.Change
	Err    error
}

// NowTickMsg is sent when the now marker should be refreshed.
type NowTickMsg struct {
	Time time.Time
}

// TapResetMsg is the armed reset of the tap counter.
type TapResetMsg struct {
	Gen uint64
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Boot loads the saved items, seeding the defaults into an empty store.
func Boot(store item.Store) tea.Cmd {
	return func() tea.Msg {
		return BootMsg{Result: timeline.Bootstrap(context.Background(), store)}
	}
}

// NowTick schedules the next now marker refresh.
func NowTick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return NowTickMsg{Time: t}
	})
}

// TapReset fires the reset armed by a first tap once the window has passed.
func TapReset(window time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(window, func(time.Time) tea.Msg {
		return TapResetMsg{Gen: gen}
	})
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// CopyText writes text to the system clipboard.
func CopyText(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copy %s: %w", what, err)}
		}
		return StatusMsgCmd{Msg: "Copied " + what + " to clipboard"}
	}
}
