package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"sprintsense/internal/cli/formatter"
)

func newEvaluateCmd(app *App) *cobra.Command {
	var apply bool
	var assign string
	var yes bool

	cmd := &cobra.Command{
		Use:   "evaluate <work-item-id>",
		Short: "Review a story's existing child tasks with AI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireConnection(); err != nil {
				return err
			}
			if app.Evaluation == nil {
				return fmt.Errorf("AI features are disabled: set SPRINTSENSE_GROQ_API_KEY")
			}

			storyID, err := parseWorkItemID(args[0])
			if err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner("Evaluating tasks...")
			}
			report, err := app.Evaluation.Evaluate(context.Background(), storyID)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatEvaluation(report))

			suggested := report.Evaluation.NewTasks
			if !apply || len(suggested) == 0 {
				return nil
			}

			if !yes {
				if !app.interactive() {
					fmt.Fprintln(out, formatter.Dim("Re-run with --yes to create the suggested tasks."))
					return nil
				}
				confirmed := false
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Create %d suggested tasks?", len(suggested))).
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, formatter.Dim("Nothing created."))
					return nil
				}
			}

			created, err := app.Evaluation.CreateSuggested(context.Background(), report, suggested, assign)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatCreateReport(created))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "create-suggested", false, "Create the tasks the evaluation suggests adding")
	cmd.Flags().StringVar(&assign, "assign", "", "Assign created tasks to this user (default: the story's assignee)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Create suggested tasks without confirmation")

	return cmd
}
