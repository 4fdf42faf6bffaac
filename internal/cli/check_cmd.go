package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sprintsense/internal/cli/formatter"
)

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the Azure DevOps connection and AI availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			failed := false

			if app.Gateway == nil {
				failed = true
				fmt.Fprintf(out, "%s Azure DevOps: %v\n", formatter.StyleRed.Render("✖"), app.ConfigError)
			} else if err := app.Gateway.TestConnection(ctx); err != nil {
				failed = true
				fmt.Fprintf(out, "%s Azure DevOps: %v\n", formatter.StyleRed.Render("✖"), err)
			} else {
				fmt.Fprintf(out, "%s Azure DevOps connection OK\n", formatter.StyleGreen.Render("✔"))
			}

			switch {
			case app.LLM == nil:
				fmt.Fprintf(out, "%s AI disabled (set SPRINTSENSE_GROQ_API_KEY to enable)\n", formatter.Dim("○"))
			case app.LLM.Available(ctx):
				fmt.Fprintf(out, "%s AI endpoint reachable\n", formatter.StyleGreen.Render("✔"))
			default:
				failed = true
				fmt.Fprintf(out, "%s AI endpoint not reachable or key rejected\n", formatter.StyleRed.Render("✖"))
			}

			if failed {
				return fmt.Errorf("check failed")
			}
			return nil
		},
	}

	return cmd
}
