package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"sprintsense/internal/azdo"
	"sprintsense/internal/cli"
	"sprintsense/internal/config"
	"sprintsense/internal/db"
	"sprintsense/internal/intelligence"
	"sprintsense/internal/llm"
	"sprintsense/internal/repository"
	"sprintsense/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open the local run history database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	runRepo := repository.NewSQLiteRunRepo(database)

	app := &cli.App{
		History:      service.NewHistoryService(runRepo),
		DefaultUser:  cfg.User,
		DefaultLevel: cfg.Level,
	}

	// Wire Azure DevOps only when the connection is configured; history
	// stays usable without it.
	if err := cfg.Validate(); err != nil {
		app.ConfigError = err
	} else {
		gateway := azdo.NewClient(azdo.Config{
			Organization: cfg.Organization,
			Project:      cfg.Project,
			PAT:          cfg.PAT,
		})
		app.Gateway = gateway
		app.Insights = service.NewInsightsService(gateway, runRepo)

		// AI-backed flows only when an API key is present
		llmCfg := llm.LoadConfig()
		if llmCfg.Enabled {
			var observer llm.Observer = llm.NoopObserver{}
			if llmCfg.LogCalls {
				observer = llm.NewLogObserver(os.Stderr)
			}
			llmClient := llm.NewGroqClient(llmCfg, observer)

			app.LLM = llmClient
			app.Breakdown = service.NewBreakdownFlow(gateway, intelligence.NewBreakdownService(llmClient), runRepo)
			app.Evaluation = service.NewEvaluationFlow(gateway, intelligence.NewEvaluationService(llmClient), runRepo)
		}
	}

	// Detect interactive terminal for review forms and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
