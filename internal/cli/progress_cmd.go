package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/spf13/cobra"
)

// lookupDay parses a day argument and resolves it against the roadmap.
func lookupDay(app *App, arg string) (domain.Unit, error) {
	day, err := parseDay(arg)
	if err != nil {
		return domain.Unit{}, err
	}
	return app.Roadmap.Get(day)
}

func noSuchItem(u domain.Unit, itemID string) error {
	return fmt.Errorf("no checklist item %q on day %d", itemID, u.Index)
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status DAY [not_started|in_progress|done]",
		Short: "Override the status of a day",
		Long: `Set the status of a day directly. The override holds until the next
checklist change, which derives the status again. Omit the status in a
terminal to pick it from a list.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := lookupDay(app, args[0])
			if err != nil {
				return err
			}

			var status domain.Status
			switch {
			case len(args) == 2:
				if status, err = domain.ParseStatus(args[1]); err != nil {
					return err
				}
			case app.interactive():
				if err := statusForm(u.Index, u.Status, &status).Run(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("status is required (not_started, in_progress or done)")
			}

			if _, err := app.Roadmap.SetStatus(cmd.Context(), u.Index, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", formatter.DayLabel(u.Index), formatter.StatusPill(status))
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check DAY ITEM_ID",
		Short: "Toggle a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := lookupDay(app, args[0])
			if err != nil {
				return err
			}
			changed, err := app.Roadmap.ToggleItem(cmd.Context(), u.Index, args[1])
			if err != nil {
				return err
			}
			if !changed {
				return noSuchItem(u, args[1])
			}
			return printProgress(cmd, app, u.Index)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add DAY TEXT...",
		Short: "Add a checklist item to a day",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := lookupDay(app, args[0])
			if err != nil {
				return err
			}
			item, added, err := app.Roadmap.AddItem(cmd.Context(), u.Index, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !added {
				return fmt.Errorf("checklist item text: %w", errBlankInput)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", item.Text, formatter.Dim(item.ID))
			return printProgress(cmd, app, u.Index)
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm DAY ITEM_ID",
		Aliases: []string{"remove"},
		Short:   "Delete a checklist item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := lookupDay(app, args[0])
			if err != nil {
				return err
			}
			removed, err := app.Roadmap.RemoveItem(cmd.Context(), u.Index, args[1])
			if err != nil {
				return err
			}
			if !removed {
				return noSuchItem(u, args[1])
			}
			return printProgress(cmd, app, u.Index)
		},
	}
}

func newNotesCmd(app *App) *cobra.Command {
	var clearNotes bool

	cmd := &cobra.Command{
		Use:   "notes DAY [TEXT...]",
		Short: "Show, replace or clear the notes of a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := lookupDay(app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 && !clearNotes {
				if strings.TrimSpace(u.Notes) == "" {
					fmt.Fprintln(out, formatter.Dim("No notes."))
					return nil
				}
				fmt.Fprintln(out, u.Notes)
				return nil
			}

			text := ""
			if !clearNotes {
				text = strings.Join(args[1:], " ")
			}
			if _, err := app.Roadmap.SetNotes(cmd.Context(), u.Index, text); err != nil {
				return err
			}
			fmt.Fprintf(out, "Notes saved for %s.\n", formatter.DayLabel(u.Index))
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearNotes, "clear", false, "remove the notes")
	return cmd
}

func newTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "time DAY HOURS",
		Short: "Record hours spent on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := lookupDay(app, args[0])
			if err != nil {
				return err
			}
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil || hours < 0 {
				return fmt.Errorf("invalid hours %q: expected a non-negative number", args[1])
			}
			if _, err := app.Roadmap.SetTimeSpent(cmd.Context(), u.Index, hours); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s time spent: %s\n", formatter.DayLabel(u.Index), formatter.FormatHours(&hours))
			return nil
		},
	}
}

func newConfidenceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confidence DAY LEVEL",
		Short: "Record a 0-5 confidence level for a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := lookupDay(app, args[0])
			if err != nil {
				return err
			}
			level, err := strconv.Atoi(args[1])
			if err != nil || level < 0 || level > 5 {
				return fmt.Errorf("invalid confidence %q: expected 0 to 5", args[1])
			}
			if _, err := app.Roadmap.SetConfidence(cmd.Context(), u.Index, level); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s confidence: %s\n", formatter.DayLabel(u.Index), formatter.FormatConfidence(&level))
			return nil
		},
	}
}

// printProgress prints the checklist summary line after a checklist change.
func printProgress(cmd *cobra.Command, app *App, day int) error {
	u, err := app.Roadmap.Get(day)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
		formatter.DayLabel(u.Index),
		formatter.StatusPill(u.Status),
		formatter.Dim(fmt.Sprintf("%d/%d items done", u.CompletedItems(), len(u.Checklist))),
	)
	return nil
}
