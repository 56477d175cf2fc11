package cli

import (
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands and the TUI.
type App struct {
	Roadmap     service.RoadmapService
	Credentials service.CredentialService
	Partner     StudyPartner

	// IsInteractive reports whether stdin is a terminal; the bare root
	// command launches the dashboard only then.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "roadmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "roadmap",
		Short: "60-day QA study roadmap with an AI study partner",
		Long: `roadmap tracks a 60-day plan through ISTQB foundations, Playwright
automation and a final project. Run without arguments in a terminal to open
the dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUnitList(app.Roadmap.FilteredView("", domain.FilterAll)))
			return nil
		},
	}

	root.AddCommand(
		newListCmd(app),
		newBoardCmd(app),
		newShowCmd(app),
		newStatsCmd(app),
		newStatusCmd(app),
		newCheckCmd(app),
		newAddCmd(app),
		newRemoveCmd(app),
		newNotesCmd(app),
		newTimeCmd(app),
		newConfidenceCmd(app),
		newAskCmd(app),
		newKeyCmd(app),
	)

	return root
}
