package cli

import (
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/intelligence"
	"github.com/spf13/cobra"
)

const answerWidth = 100

func newAskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask the AI study partner about a day",
	}

	cmd.AddCommand(
		newAskActionCmd(app, intelligence.ActionExplain, "explain DAY", "Explain the topic of a day"),
		newAskActionCmd(app, intelligence.ActionQuiz, "quiz DAY", "Generate three mock exam questions"),
		newAskActionCmd(app, intelligence.ActionCode, "code DAY", "Show a Playwright code example (automation days)"),
		newAskTaskCmd(app),
	)
	return cmd
}

func newAskActionCmd(app *App, action intelligence.Action, use, short string) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, app, action, args[0], "", reveal)
		},
	}
	if action == intelligence.ActionQuiz {
		cmd.Flags().BoolVar(&reveal, "reveal", false, "show the correct answers")
	}
	return cmd
}

func newAskTaskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "task DAY ITEM_ID",
		Short: "Explain how to complete one checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, app, intelligence.ActionExplainTask, args[0], args[1], false)
		},
	}
}

// runAsk calls the study partner under a stderr spinner and prints the
// rendered answer. Failed generations are printed and returned as errors so
// the exit code reflects them.
func runAsk(cmd *cobra.Command, app *App, action intelligence.Action, dayArg, itemID string, reveal bool) error {
	if app.Partner == nil {
		return fmt.Errorf("study partner is not configured")
	}
	u, err := lookupDay(app, dayArg)
	if err != nil {
		return err
	}

	stop := formatter.StartSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Asking about %s...", formatter.DayLabel(u.Index)))
	answer := app.askAction(action, itemID)(cmd.Context(), u)
	stop()

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnswer(answer, reveal, answerWidth))
	if answer.State == intelligence.AnswerError {
		return answer.Err
	}
	return nil
}
