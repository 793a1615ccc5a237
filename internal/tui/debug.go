package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timeblock/internal/dispatch"
	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/lifecycle"
	"github.com/javiermolinar/timeblock/internal/timeline"
)

// DebugLogger logs TUI state, input events, and persistence outcomes to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "timeblock-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}
	// Fixed name in the current directory (easy to find)
	return initDebugLoggerAt(DebugLogPath)
}

func initDebugLoggerAt(logPath string) error {
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%d", msg.Type),
	})
}

// LogMouse logs a mouse event on the timeline together with the time under it.
func LogMouse(msg tea.MouseMsg, at time.Time, onSurface bool) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"x":       msg.X,
		"y":       msg.Y,
		"mouse":   tea.MouseEvent(msg).String(),
		"button":  int(msg.Button),
		"action":  int(msg.Action),
		"surface": onSurface,
	}
	if onSurface {
		data["time"] = item.ClockLabel(at)
	}
	debugLog.log("MOUSE", data)
}

// LogPhaseChange logs a transition of the item lifecycle.
func LogPhaseChange(from, to lifecycle.Phase, reason string) {
	if debugLog == nil || !debugLog.enabled || from == to {
		return
	}
	debugLog.log("PHASE_CHANGE", map[string]any{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	})
}

// LogActivation logs a resolved double click or double tap.
func LogActivation(a dispatch.Activation, source string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"kind":   a.Kind.String(),
		"source": source,
	}
	switch a.Kind {
	case dispatch.KindEdit:
		data["item_id"] = a.ItemID
	case dispatch.KindCreate:
		data["time"] = item.ClockLabel(a.Time)
	}
	debugLog.log("ACTIVATION", data)
}

// LogPersist logs the outcome of mirroring a change to the store.
func LogPersist(c item.Change, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"op":      c.Op.String(),
		"item_id": c.Item.ID,
		"content": truncateStr(c.Item.Content, 30),
		"ok":      err == nil,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	debugLog.log("PERSIST", data)
}

// LogBoot logs how the initial items were obtained.
func LogBoot(res timeline.BootResult) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"items":    len(res.Items),
		"seeded":   res.Seeded,
		"fallback": res.Fallback,
	}
	if res.LoadErr != nil {
		data["load_error"] = res.LoadErr.Error()
	}
	if len(res.SaveErrs) > 0 {
		errs := make([]string, len(res.SaveErrs))
		for i, err := range res.SaveErrs {
			errs[i] = err.Error()
		}
		data["save_errors"] = errs
	}
	debugLog.log("BOOT", data)
}

// LogWindow logs the visible window after a zoom, pan or resize.
func LogWindow(w timeline.Window, reason string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("WINDOW", map[string]any{
		"start":  item.ClockLabel(w.Start),
		"end":    item.ClockLabel(w.End),
		"reason": reason,
	})
}

// LogMarkerSnapBack logs a rejected drag of the now marker.
func LogMarkerSnapBack(dragged, restored time.Time) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MARKER_SNAP_BACK", map[string]any{
		"id":       timeline.NowMarkerID,
		"dragged":  item.ClockLabel(dragged),
		"restored": item.ClockLabel(restored),
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// truncateStr truncates a string to max runes.
func truncateStr(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
