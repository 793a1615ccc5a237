package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timeblock/internal/ics"
	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/snapshot"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import items from a snapshot or calendar",
		Long: `Import items from a YAML snapshot or an iCalendar (.ics) file.

Snapshot items keep their ids and replace items with the same id.
Calendar events become new items; all-day events are skipped.

Example:
  timeblock import day.yaml
  timeblock import ~/Downloads/work.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source file does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			f, err := os.Open(sourcePath)
			if err != nil {
				return fmt.Errorf("opening source file: %w", err)
			}
			defer func() { _ = f.Close() }()

			day, err := a.loadDay(cmd.Context())
			if err != nil {
				return err
			}

			var res importResult
			if isCalendar(sourcePath) {
				res, err = a.importCalendar(cmd.Context(), day, f)
			} else {
				res, err = a.importSnapshot(cmd.Context(), day, f)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items from %s\n", res.imported, sourcePath)
			if res.skipped > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatMuted(fmt.Sprintf("Skipped %d events without a time of day", res.skipped)))
			}
			return nil
		},
	}

	return cmd
}

type importResult struct {
	imported int
	skipped  int
}

func isCalendar(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".ics" || ext == ".ical"
}

// importSnapshot upserts every snapshot item by id.
func (a *App) importSnapshot(ctx context.Context, day *item.Collection, r io.Reader) (importResult, error) {
	items, err := snapshot.Decode(r)
	if err != nil {
		return importResult{}, err
	}

	var res importResult
	for _, it := range items {
		if _, ok := day.Get(it.ID); ok {
			_ = day.Update(it)
		} else if err := day.Add(it); err != nil {
			return res, err
		}
		if err := a.store.Save(ctx, it); err != nil {
			return res, fmt.Errorf("importing item %q: %w", it.Content, err)
		}
		res.imported++
	}
	return res, nil
}

// importCalendar adds each timed event as a new item.
func (a *App) importCalendar(ctx context.Context, day *item.Collection, r io.Reader) (importResult, error) {
	events, skipped, err := ics.Decode(r)
	if err != nil {
		return importResult{}, err
	}

	res := importResult{skipped: skipped}
	for _, ev := range events {
		it, err := ev.Item(day.NextID(a.now()))
		if err != nil {
			res.skipped++
			continue
		}
		if err := day.Add(it); err != nil {
			return res, err
		}
		if err := a.store.Save(ctx, it); err != nil {
			return res, fmt.Errorf("importing event %q: %w", it.Content, err)
		}
		res.imported++
	}
	return res, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
