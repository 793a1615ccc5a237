package ui

import (
	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var (
		showIDs      bool
		showDuration bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the day's items",
		Long: `List every item on the timeline ordered by start time.

The item in progress is highlighted.`,
		Example: `  timeblock list
  timeblock list --ids --duration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.loadDay(cmd.Context())
			if err != nil {
				return err
			}

			PrintAgenda(cmd.OutOrStdout(), day.All(), PrintOpts{
				Now:          a.now(),
				ShowIDs:      showIDs,
				ShowDuration: showDuration,
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show item ids")
	cmd.Flags().BoolVar(&showDuration, "duration", false, "Show item durations")

	return cmd
}
