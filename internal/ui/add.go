package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timeblock/internal/item"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add an item to the timeline",
		Long: `Add an item to the timeline.

Times are snapped to the nearest quarter hour. Without --end the
item lasts one hour.

Example:
  timeblock add "Write documentation" --start=09:00 --end=11:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(start, end)
			if err != nil {
				return err
			}

			day, err := a.loadDay(cmd.Context())
			if err != nil {
				return err
			}

			it, err := item.New(day.NextID(a.now()), args[0], from, to)
			if err != nil {
				return err
			}
			if err := day.Add(it); err != nil {
				return err
			}
			if err := a.store.Save(cmd.Context(), it); err != nil {
				return fmt.Errorf("saving item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d: %s %s-%s\n",
				formatSuccess("Added"),
				it.ID,
				it.Content,
				item.ClockLabel(it.Start),
				item.ClockLabel(it.End),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, default: start + 1h)")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// parseRange parses and snaps a start and optional end clock time.
func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := item.ParseClock(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--start: %w", err)
	}
	from = item.Snap(from)

	to := from.Add(item.DefaultDuration)
	if end != "" {
		if to, err = item.ParseClock(end); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--end: %w", err)
		}
		to = item.Snap(to)
	}
	if to.After(item.DayEnd()) {
		to = item.DayEnd()
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, item.ErrEndBeforeStart
	}
	return from, to, nil
}

func (a *App) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Long: `Remove an item by id. Use "timeblock list --ids" to find ids.

Example:
  timeblock rm 1700000000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			day, err := a.loadDay(cmd.Context())
			if err != nil {
				return err
			}
			it, ok := day.Remove(id)
			if !ok {
				return fmt.Errorf("item %d: %w", id, item.ErrItemNotFound)
			}
			if !it.Editable {
				return fmt.Errorf("item %d: %w", id, item.ErrNotEditable)
			}
			if err := a.store.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d: %s\n", formatSuccess("Removed"), it.ID, it.Content)
			return nil
		},
	}
}
