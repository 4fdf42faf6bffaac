package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"sprintsense/internal/cli/formatter"
	"sprintsense/internal/service"
)

func newInsightsCmd(app *App) *cobra.Command {
	var user string
	var fix bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "insights [work-item-id...]",
		Short: "Validate work items and optionally fix what is missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireConnection(); err != nil {
				return err
			}

			ids := make([]int, 0, len(args))
			for _, a := range args {
				id, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("invalid work item id %q", a)
				}
				ids = append(ids, id)
			}

			if user == "" {
				user = app.DefaultUser
			}

			out := cmd.OutOrStdout()
			req := service.InsightsRequest{User: user, IDs: ids, AutoFix: fix}

			// Interactive fixes get a preview pass and a confirmation
			// before anything is written back.
			preview := fix && app.interactive() && !yes
			if preview {
				req.AutoFix = false
			}

			report, err := scanWithSpinner(app, req)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatInsights(report))

			if !preview || report.ItemsWithIssues == 0 {
				return nil
			}

			confirmed := false
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Apply fixes to %d work items?", report.ItemsWithIssues)).
					Value(&confirmed),
			))
			if err := form.Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(out, formatter.Dim("Nothing changed."))
				return nil
			}

			req.AutoFix = true
			fixed, err := scanWithSpinner(app, req)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatInsights(fixed))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Scan items assigned to this user (defaults to the configured user)")
	cmd.Flags().BoolVar(&fix, "fix", false, "Write synthesized defaults back to Azure DevOps")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply fixes without confirmation")

	return cmd
}

func scanWithSpinner(app *App, req service.InsightsRequest) (*service.InsightsReport, error) {
	stop := func() {}
	if app.interactive() {
		stop = formatter.StartSpinner("Scanning work items...")
	}
	report, err := app.Insights.Scan(context.Background(), req)
	stop()
	return report, err
}
