package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-manager/internal/db"
	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/observability"
	"github.com/jonathan/talent-manager/internal/types"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Generate one piece of content for a talent",
	Long: `Runs the full content pipeline for a single topic: script writing,
metadata extraction, speech synthesis, and video assembly, with an optional
YouTube upload at the end.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: generateCmd,
}

var (
	generateConfigPath  string
	generateTalent      string
	generateTopic       string
	generateType        string
	generateUpload      bool
	generateOutputDir   string
	generateDatabaseURL string
	generateVerbose     bool
)

func init() {
	generateCommand.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCommand.Flags().StringVarP(&generateTalent, "talent", "t", "", "Talent name (required)")
	generateCommand.Flags().StringVar(&generateTopic, "topic", "", "Topic to create content about (required)")
	generateCommand.Flags().StringVar(&generateType, "type", string(types.LongForm), "Content type: short_form or long_form")
	generateCommand.Flags().BoolVar(&generateUpload, "upload", false, "Upload the finished video to YouTube")
	generateCommand.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "", "Directory for generated audio and video files")
	generateCommand.Flags().StringVar(&generateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	generateCommand.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = generateCommand.MarkFlagRequired("talent")
	_ = generateCommand.MarkFlagRequired("topic")

	rootCmd.AddCommand(generateCommand)
}

func generateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(generateConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = generateOutputDir
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = generateDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = generateVerbose
	}
	logging.Configure(cfg.Verbose)

	contentType := types.ContentType(generateType)
	if contentType != types.ShortForm && contentType != types.LongForm {
		return fmt.Errorf("invalid content type %q (use %s or %s)",
			generateType, types.ShortForm, types.LongForm)
	}
	if generateUpload && cfg.YouTubeCredentials == "" {
		return fmt.Errorf("upload requested but no YouTube credentials configured")
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	// The database is optional here; without it, runs are not recorded and
	// the default voice is used.
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

	result, err := p.CreateContent(ctx, types.ContentRequest{
		TalentName:  generateTalent,
		Topic:       generateTopic,
		ContentType: contentType,
		AutoUpload:  generateUpload,
	})
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintContentResult(result)
	if !result.Success {
		return fmt.Errorf("content creation failed: %s", result.Error)
	}
	return nil
}
