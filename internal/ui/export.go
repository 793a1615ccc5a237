package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timeblock/internal/ics"
	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/snapshot"
)

// Export formats.
const (
	formatICS  = "ics"
	formatYAML = "yaml"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		output string
		date   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the day's items",
		Long: `Export the day's items as an iCalendar feed or a YAML snapshot.

The iCalendar feed places the items on --date (default: today).
The YAML snapshot can be read back with "timeblock import".`,
		Example: `  timeblock export --format=yaml --output=day.yaml
  timeblock export --format=ics --date=2026-10-19 > day.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != formatICS && format != formatYAML {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatICS, formatYAML)
			}

			on := a.now()
			if date != "" {
				parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD, got %q", date)
				}
				on = parsed
			}

			day, err := a.loadDay(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				return writeExport(cmd.OutOrStdout(), format, day.All(), on, a.now())
			}

			path, err := resolvePath(output)
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			if err := writeExportFile(f, format, day.All(), on, a.now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", day.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: ics or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&date, "date", "", "Calendar date for ics events (YYYY-MM-DD, default: today)")

	return cmd
}

// writeExportFile writes the export to f and closes it. A failed close is
// a failed export.
func writeExportFile(f io.WriteCloser, format string, items []item.Item, on, stamp time.Time) (err error) {
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()
	return writeExport(f, format, items, on, stamp)
}

func writeExport(w io.Writer, format string, items []item.Item, on, stamp time.Time) error {
	if format == formatICS {
		return ics.Encode(w, items, on, stamp)
	}
	return snapshot.Encode(w, items)
}
