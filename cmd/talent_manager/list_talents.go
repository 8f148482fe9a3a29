package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listTalentsCommand = &cobra.Command{
	Use:   "list-talents",
	Short: "List registered AI talents",
	RunE:  listTalentsCmd,
}

var (
	listTalentsConfigPath  string
	listTalentsDatabaseURL string
)

func init() {
	listTalentsCommand.Flags().StringVar(&listTalentsConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	listTalentsCommand.Flags().StringVar(&listTalentsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(listTalentsCommand)
}

func listTalentsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(listTalentsConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = listTalentsDatabaseURL
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	talents, err := database.ListTalents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list talents: %w", err)
	}
	if len(talents) == 0 {
		fmt.Println("No talents registered yet. Use create-talent to add one.")
		return nil
	}

	for _, t := range talents {
		voice := "(default voice)"
		if t.VoiceID != nil && *t.VoiceID != "" {
			voice = *t.VoiceID
		}
		fmt.Printf("%-20s %-20s voice=%s created=%s\n",
			t.Name, t.Specialization, voice, t.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
