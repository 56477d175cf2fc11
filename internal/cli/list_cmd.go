package cli

import (
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func addViewFlags(cmd *cobra.Command, search *string, filter *filterFlag) {
	cmd.Flags().StringVarP(search, "search", "s", "", "case-insensitive title search")
	cmd.Flags().VarP(filter, "filter", "f", "filter: all, istqb or automation")
}

func newListCmd(app *App) *cobra.Command {
	var search string
	filter := newFilterFlag()

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List roadmap days as a table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			units := app.Roadmap.FilteredView(search, filter.mode)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUnitList(units))
			return nil
		},
	}
	addViewFlags(cmd, &search, filter)
	return cmd
}

func newBoardCmd(app *App) *cobra.Command {
	var search string
	filter := newFilterFlag()

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show days grouped into status columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := app.Roadmap.GroupedByStatus(search, filter.mode)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoard(board))
			return nil
		},
	}
	addViewFlags(cmd, &search, filter)
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show DAY",
		Short: "Show one day with its checklist and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			u, err := app.Roadmap.Get(day)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUnitDetail(u))
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show overall and ISTQB progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(app.Roadmap.Stats()))
			return nil
		},
	}
}
