package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-manager/internal/db"
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show talents and recent content",
	RunE:  statusCmd,
}

var (
	statusConfigPath  string
	statusTalent      string
	statusStatus      string
	statusLimit       int
	statusDatabaseURL string
)

func init() {
	statusCommand.Flags().StringVar(&statusConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	statusCommand.Flags().StringVarP(&statusTalent, "talent", "t", "", "Only show content for this talent")
	statusCommand.Flags().StringVar(&statusStatus, "status", "", "Only show content with this status (generated, uploaded, failed)")
	statusCommand.Flags().IntVarP(&statusLimit, "limit", "l", 20, "Maximum content records to show")
	statusCommand.Flags().StringVar(&statusDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(statusCommand)
}

func statusCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(statusConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = statusDatabaseURL
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	filters := db.ContentRecordFilters{Status: statusStatus, Limit: statusLimit}
	if statusTalent != "" {
		talent, err := database.GetTalentByName(ctx, statusTalent)
		if err != nil {
			return fmt.Errorf("failed to look up talent: %w", err)
		}
		if talent == nil {
			return fmt.Errorf("talent %q not found", statusTalent)
		}
		filters.TalentID = talent.ID
	} else {
		talents, err := database.ListTalents(ctx)
		if err != nil {
			return fmt.Errorf("failed to list talents: %w", err)
		}
		fmt.Printf("Talents: %d\n", len(talents))
		for _, t := range talents {
			fmt.Printf("  %-20s %s\n", t.Name, t.Specialization)
		}

		stats, err := database.ContentStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to load content stats: %w", err)
		}
		if len(stats) > 0 {
			fmt.Println("Content by status:")
			for _, status := range []string{db.ContentStatusUploaded, db.ContentStatusGenerated, db.ContentStatusFailed} {
				if n, ok := stats[status]; ok {
					fmt.Printf("  %-10s %d\n", status, n)
				}
			}
		}
		fmt.Println()
	}

	records, err := database.ListContentRecords(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list content records: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No content records found.")
		return nil
	}

	fmt.Printf("Recent content (%d):\n", len(records))
	for _, r := range records {
		line := fmt.Sprintf("  [%-9s] %s", r.Status, r.Title)
		if r.YouTubeURL != nil && *r.YouTubeURL != "" {
			line += " " + *r.YouTubeURL
		}
		if r.ErrorMessage != nil && *r.ErrorMessage != "" {
			line += " error: " + *r.ErrorMessage
		}
		fmt.Printf("%s (%s)\n", line, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
