package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-manager/internal/logging"
)

var createTalentCommand = &cobra.Command{
	Use:   "create-talent",
	Short: "Create or update an AI talent",
	Long: `Registers an AI talent with a specialization and optional TTS voice.
Running it again for the same name updates the specialization and voice.

Requires a PostgreSQL database (DATABASE_URL or --db-url).`,
	RunE: createTalentCmd,
}

var (
	createTalentConfigPath     string
	createTalentName           string
	createTalentSpecialization string
	createTalentVoiceID        string
	createTalentDatabaseURL    string
)

func init() {
	createTalentCommand.Flags().StringVar(&createTalentConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	createTalentCommand.Flags().StringVarP(&createTalentName, "name", "n", "", "Talent name (required)")
	createTalentCommand.Flags().StringVarP(&createTalentSpecialization, "specialization", "s", "tech_education", "Specialization tag")
	createTalentCommand.Flags().StringVar(&createTalentVoiceID, "voice-id", "", "ElevenLabs voice ID for this talent")
	createTalentCommand.Flags().StringVar(&createTalentDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	_ = createTalentCommand.MarkFlagRequired("name")

	rootCmd.AddCommand(createTalentCommand)
}

func createTalentCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(createTalentConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = createTalentDatabaseURL
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	if _, ok := registry.Lookup(createTalentSpecialization); !ok {
		logging.Warn("unknown specialization, the general profile will be used",
			"specialization", createTalentSpecialization,
			"known", strings.Join(registry.Tags(), ", "))
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	talent, err := database.UpsertTalent(ctx, createTalentName, createTalentSpecialization, createTalentVoiceID)
	if err != nil {
		return fmt.Errorf("failed to save talent: %w", err)
	}

	fmt.Printf("Talent %q saved (id %s, specialization %s)\n", talent.Name, talent.ID, talent.Specialization)
	return nil
}
