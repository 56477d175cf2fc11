package cli

import (
	"strings"

	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/spf13/cobra"
)

func newKeyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
	}
	cmd.AddCommand(
		newKeySetCmd(app),
		newKeyShowCmd(app),
		newKeyClearCmd(app),
	)
	return cmd
}

func newKeySetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set [KEY]",
		Short: "Save the API key (prompts without echo when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value string
			switch {
			case len(args) == 1:
				value = args[0]
			case app.interactive():
				if err := credentialForm(&value).Run(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("API key is required")
			}

			if err := app.Credentials.Set(cmd.Context(), value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key saved %s\n", formatter.Dim(service.MaskCredential(strings.TrimSpace(value))))
			return nil
		},
	}
}

func newKeyShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved API key, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := app.Credentials.Credential(cmd.Context())
			if err != nil {
				return err
			}
			if key == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No API key saved. Run `roadmap key set`."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), service.MaskCredential(key))
			return nil
		},
	}
}

func newKeyClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the saved API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Credentials.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
			return nil
		},
	}
}
