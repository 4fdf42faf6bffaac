package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sprintsense/internal/cli/formatter"
	"sprintsense/internal/domain"
)

func newHistoryCmd(app *App) *cobra.Command {
	var kind string
	var item int
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past assistant runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var recs []*domain.RunRecord
			var err error
			switch {
			case item != 0:
				recs, err = app.History.ForWorkItem(ctx, item)
			case kind != "":
				k := domain.RunKind(kind)
				switch k {
				case domain.RunBreakdown, domain.RunEvaluation, domain.RunInsights:
				default:
					return fmt.Errorf("unknown run kind %q (want breakdown, evaluation or insights)", kind)
				}
				recs, err = app.History.ByKind(ctx, k, limit)
			default:
				recs, err = app.History.Recent(ctx, limit)
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(recs))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by run kind: breakdown, evaluation or insights")
	cmd.Flags().IntVar(&item, "item", 0, "Show runs for a single work item id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum runs to show (default 20)")

	return cmd
}
