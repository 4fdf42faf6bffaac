package cli

import (
	"github.com/spf13/cobra"

	"sprintsense/internal/llm"
	"sprintsense/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
// The AI-backed services are nil when no API key is configured.
type App struct {
	Insights   service.InsightsService
	Breakdown  service.BreakdownFlow
	Evaluation service.EvaluationFlow
	History    service.HistoryService
	Gateway    service.Gateway
	LLM        llm.Client

	// Defaults from configuration, used when flags are omitted.
	DefaultUser  string
	DefaultLevel string

	// ConfigError holds the reason the Azure DevOps connection could not
	// be configured; commands that need it report this instead of a nil
	// service panic.
	ConfigError error

	// IsInteractive reports whether stdin is a terminal; interactive
	// review forms are skipped when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) requireConnection() error {
	if a.ConfigError != nil {
		return a.ConfigError
	}
	return nil
}

// NewRootCmd creates the top-level "sprintsense" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "sprintsense",
		Short:         "Backlog assistant for Azure DevOps work items",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newInsightsCmd(app),
		newBreakdownCmd(app),
		newEvaluateCmd(app),
		newHistoryCmd(app),
		newCheckCmd(app),
	)

	return root
}
