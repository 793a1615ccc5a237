package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timeblock/internal/config"
	"github.com/javiermolinar/timeblock/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Configuration management.

If no config file exists, creates one with default values.
Otherwise, displays the current config. With --edit, prompts for
each value.

Example:
  timeblock config
  timeblock config --edit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(a.configPath, edit, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Edit the configuration interactively")
	return cmd
}

func runConfig(configPath string, edit bool, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)
	if !edit {
		return nil
	}

	fmt.Fprintln(out)
	reader := bufio.NewReader(in)
	tl := &cfg.Timeline
	tl.WindowStart = promptValue(reader, out, "Window start", tl.WindowStart)
	tl.WindowEnd = promptValue(reader, out, "Window end", tl.WindowEnd)
	tl.CompactWindowStart = promptValue(reader, out, "Compact window start", tl.CompactWindowStart)
	tl.CompactWindowEnd = promptValue(reader, out, "Compact window end", tl.CompactWindowEnd)
	tl.CompactWidth = promptInt(reader, out, "Compact width (columns)", tl.CompactWidth)
	tl.DoubleTap = promptBool(reader, out, "Double tap for mouse clicks", tl.DoubleTap)
	tl.TapWindowMS = promptInt(reader, out, "Double tap window (ms)", tl.TapWindowMS)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\n"+formatSuccess("Configuration saved!"))
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	tl := cfg.Timeline
	fmt.Fprintln(out, formatHeader("Current configuration:"))
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[timeline]")
	fmt.Fprintf(out, "  window_start         = %s\n", tl.WindowStart)
	fmt.Fprintf(out, "  window_end           = %s\n", tl.WindowEnd)
	fmt.Fprintf(out, "  compact_window_start = %s\n", tl.CompactWindowStart)
	fmt.Fprintf(out, "  compact_window_end   = %s\n", tl.CompactWindowEnd)
	fmt.Fprintf(out, "  compact_width        = %d\n", tl.CompactWidth)
	fmt.Fprintf(out, "  min_columns_per_hour = %d\n", tl.MinColumnsPerHour)
	fmt.Fprintf(out, "  double_tap           = %t\n", tl.DoubleTap)
	fmt.Fprintf(out, "  tap_window_ms        = %d\n", tl.TapWindowMS)
	fmt.Fprintf(out, "  now_refresh_seconds  = %d\n", tl.NowRefreshSeconds)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path              = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme                = %s\n", cfg.UI.Theme)
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if atEOF(reader) {
			return current
		}
	}
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	for {
		value := strings.ToLower(promptValue(reader, out, label, strconv.FormatBool(current)))
		switch value {
		case "y", "yes", "true":
			return true
		case "n", "no", "false":
			return false
		}
		fmt.Fprintf(out, "  Invalid answer %q. Use y or n\n", value)
		if atEOF(reader) {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if atEOF(reader) {
			return current
		}
	}
}

// atEOF reports whether the input is exhausted.
func atEOF(reader *bufio.Reader) bool {
	_, err := reader.Peek(1)
	return err != nil
}
