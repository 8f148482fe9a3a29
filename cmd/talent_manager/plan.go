package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/observability"
	"github.com/jonathan/talent-manager/internal/research"
	"github.com/jonathan/talent-manager/internal/strategy"
)

var planCommand = &cobra.Command{
	Use:   "plan",
	Short: "Plan a content strategy for a talent",
	Long: `Researches trending topics, selects the best ones with category and
source diversity, and builds a prioritized content plan with a posting
schedule.`,
	RunE: planCmd,
}

var (
	planConfigPath     string
	planTalent         string
	planSpecialization string
	planDays           int
	planLimit          int
	planJSON           bool
	planVerbose        bool
)

func init() {
	planCommand.Flags().StringVar(&planConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	planCommand.Flags().StringVarP(&planTalent, "talent", "t", "", "Talent name the plan is for (required)")
	planCommand.Flags().StringVarP(&planSpecialization, "specialization", "s", "tech_education", "Specialization tag")
	planCommand.Flags().IntVarP(&planDays, "days", "d", 0, "Planning horizon in days")
	planCommand.Flags().IntVarP(&planLimit, "limit", "l", 20, "Maximum topics to research")
	planCommand.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON instead of formatted output")
	planCommand.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = planCommand.MarkFlagRequired("talent")

	rootCmd.AddCommand(planCommand)
}

func planCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(planConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("days") {
		cfg.PlanDaysAhead = planDays
	}
	if cfg.PlanDaysAhead == 0 {
		cfg.PlanDaysAhead = 7
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = planVerbose
	}
	logging.Configure(cfg.Verbose)

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	profile, ok := registry.Lookup(planSpecialization)
	if !ok {
		return fmt.Errorf("unknown specialization %q (known: %s)",
			planSpecialization, strings.Join(registry.Tags(), ", "))
	}

	fmt.Printf("Step 1/2: Researching trending topics for %s...\n", planSpecialization)
	topics, err := research.NewAggregator(profile).ResearchTrendingTopics(ctx, planLimit)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	fmt.Printf("Step 2/2: Planning content strategy for %s...\n", planTalent)
	plan := strategy.NewPlanner(planTalent, profile).PlanContentStrategy(topics, cfg.PlanDaysAhead)

	if planJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(plan)
	}
	observability.NewPrinter(os.Stdout).PrintStrategyPlan(plan)
	return nil
}
