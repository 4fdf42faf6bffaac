package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"sprintsense/internal/cli/formatter"
	"sprintsense/internal/intelligence"
	"sprintsense/internal/service"
)

func newBreakdownCmd(app *App) *cobra.Command {
	var level string
	var days int
	var force bool
	var assign string
	var yes bool

	cmd := &cobra.Command{
		Use:   "breakdown <work-item-id>",
		Short: "Generate child tasks for a work item with AI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireConnection(); err != nil {
				return err
			}
			if app.Breakdown == nil {
				return fmt.Errorf("AI features are disabled: set SPRINTSENSE_GROQ_API_KEY")
			}

			storyID, err := parseWorkItemID(args[0])
			if err != nil {
				return err
			}

			if level == "" {
				level = app.DefaultLevel
			}
			if level == "" {
				level = string(intelligence.LevelMid)
			}
			lvl, err := intelligence.ParseExperienceLevel(level)
			if err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner("Generating task breakdown...")
			}
			plan, err := app.Breakdown.Plan(context.Background(), storyID, lvl, days, force)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if !yes && app.interactive() {
				confirmed, err := reviewBreakdown(plan)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(out, formatter.Dim("Nothing created."))
					return nil
				}
			} else {
				fmt.Fprint(out, formatter.FormatBreakdownPlan(plan))
				if !yes {
					fmt.Fprintln(out, formatter.Dim("Re-run with --yes to create these tasks."))
					return nil
				}
			}

			report, err := app.Breakdown.Create(context.Background(), plan, assign)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatCreateReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Developer experience level: fresher, junior, mid or senior")
	cmd.Flags().IntVar(&days, "days", 0, "Days available to complete the story (default: planned window, else 5)")
	cmd.Flags().BoolVar(&force, "force", false, "Generate even when the story already has child tasks")
	cmd.Flags().StringVar(&assign, "assign", "", "Assign created tasks to this user (default: the story's assignee)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Create all generated tasks without review")

	return cmd
}

// reviewBreakdown lets the user toggle tasks and confirm creation. It
// mutates the plan's Selected flags in place.
func reviewBreakdown(plan *service.BreakdownPlan) (bool, error) {
	options := make([]huh.Option[int], len(plan.Tasks))
	picked := make([]int, 0, len(plan.Tasks))
	for i, t := range plan.Tasks {
		label := fmt.Sprintf("%s (%s, %s)", t.Title, formatter.FormatHours(t.Hours), t.Activity)
		options[i] = huh.NewOption(label, i).Selected(t.Selected)
		if t.Selected {
			picked = append(picked, i)
		}
	}

	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(fmt.Sprintf("Tasks for #%d %s", plan.Story.ID, plan.Story.Title)).
				Options(options...).
				Value(&picked),
			huh.NewConfirm().
				Title("Create the selected tasks?").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}

	selected := make(map[int]bool, len(picked))
	for _, i := range picked {
		selected[i] = true
	}
	for i := range plan.Tasks {
		plan.Tasks[i].Selected = selected[i]
	}

	return confirmed && len(picked) > 0, nil
}
