package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-manager/internal/db"
	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/observability"
	"github.com/jonathan/talent-manager/internal/orchestrator"
)

var autonomousCommand = &cobra.Command{
	Use:   "autonomous",
	Short: "Run the autonomous content loop",
	Long: `Starts the orchestrator: it periodically researches trending topics
for each managed talent, plans content, and executes due jobs through the
full pipeline until interrupted.

Talents are taken from the database when one is configured; --talents adds
ad-hoc name:specialization pairs on top.`,
	RunE: autonomousCmd,
}

var (
	autonomousConfigPath    string
	autonomousTalents       []string
	autonomousMaxConcurrent int
	autonomousIntervalMin   int
	autonomousDays          int
	autonomousVerbose       bool
)

func init() {
	autonomousCommand.Flags().StringVar(&autonomousConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	autonomousCommand.Flags().StringSliceVar(&autonomousTalents, "talents", nil, "Talents to manage as name:specialization pairs (e.g. alex:tech_education)")
	autonomousCommand.Flags().IntVar(&autonomousMaxConcurrent, "max-concurrent", 0, "Maximum jobs executing at once")
	autonomousCommand.Flags().IntVar(&autonomousIntervalMin, "research-interval", 0, "Minutes between research passes per talent")
	autonomousCommand.Flags().IntVarP(&autonomousDays, "days", "d", 0, "Planning horizon in days")
	autonomousCommand.Flags().BoolVarP(&autonomousVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(autonomousCommand)
}

func autonomousCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveConfig(autonomousConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-concurrent") {
		cfg.MaxConcurrentJobs = autonomousMaxConcurrent
	}
	if cmd.Flags().Changed("research-interval") {
		cfg.ResearchIntervalMin = autonomousIntervalMin
	}
	if cmd.Flags().Changed("days") {
		cfg.PlanDaysAhead = autonomousDays
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = autonomousVerbose
	}
	logging.Configure(cfg.Verbose)

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
	}

	p, cleanup, err := buildPipeline(ctx, cfg, registry, database)
	if err != nil {
		return err
	}
	defer cleanup()

	orch := orchestrator.New(registry, p, orchestrator.Options{
		ResearchPollInterval: time.Duration(cfg.ResearchIntervalMin) * time.Minute,
		MaxConcurrentJobs:    cfg.MaxConcurrentJobs,
		PlanDaysAhead:        cfg.PlanDaysAhead,
	})

	registered := 0
	if database != nil {
		talents, err := database.ListTalents(ctx)
		if err != nil {
			return fmt.Errorf("failed to list talents: %w", err)
		}
		for _, t := range talents {
			if err := orch.RegisterTalent(t.Name, t.Specialization); err != nil {
				return err
			}
			registered++
		}
	}
	for _, pair := range autonomousTalents {
		name, tag, _ := strings.Cut(pair, ":")
		if err := orch.RegisterTalent(name, tag); err != nil {
			return fmt.Errorf("invalid --talents entry %q: %w", pair, err)
		}
		registered++
	}
	if registered == 0 {
		return fmt.Errorf("no talents to manage (register some with create-talent or pass --talents)")
	}

	fmt.Printf("Autonomous mode started with %d talent(s). Press Ctrl+C to stop.\n", registered)
	if err := orch.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintOrchestratorStatus(orch.Status())
	fmt.Println("Autonomous mode stopped.")
	return nil
}
