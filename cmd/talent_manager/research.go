package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/observability"
	"github.com/jonathan/talent-manager/internal/research"
)

var researchCommand = &cobra.Command{
	Use:   "research",
	Short: "Research trending topics for a specialization",
	Long: `Fetches trending topics from Reddit, Hacker News, Dev.to, and the
specialization's blog feeds, scores them for content potential, and prints
the ranked results.`,
	RunE: researchCmd,
}

var (
	researchConfigPath     string
	researchSpecialization string
	researchLimit          int
	researchVerbose        bool
)

func init() {
	researchCommand.Flags().StringVar(&researchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	researchCommand.Flags().StringVarP(&researchSpecialization, "specialization", "s", "tech_education", "Specialization tag to research for")
	researchCommand.Flags().IntVarP(&researchLimit, "limit", "l", 20, "Maximum topics to return")
	researchCommand.Flags().BoolVarP(&researchVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(researchCommand)
}

func researchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(researchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = researchVerbose
	}
	logging.Configure(cfg.Verbose)

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	profile, ok := registry.Lookup(researchSpecialization)
	if !ok {
		return fmt.Errorf("unknown specialization %q (known: %s)",
			researchSpecialization, strings.Join(registry.Tags(), ", "))
	}

	fmt.Printf("Researching trending topics for %s...\n", researchSpecialization)
	topics, err := research.NewAggregator(profile).ResearchTrendingTopics(ctx, researchLimit)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintTopics(topics)
	return nil
}
